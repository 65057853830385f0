package clog

import (
	"github.com/apex/log"
)

var clogger = NewContextLogger(log.Log.(*log.Logger))

func SetLevel(ctx string, level log.Level) error {
	return clogger.SetLevel(ctx, level)
}

func SetLevelFromString(ctx, s string) error {
	return clogger.SetLevelFromString(ctx, s)
}

func ClearLevel(ctx string) {
	clogger.ClearLevel(ctx)
}

func Levels() map[string]string {
	return clogger.Levels()
}

func UsingCtx(ctx string) *log.Entry {
	return clogger.UsingCtx(ctx)
}

func Global() *log.Entry {
	return clogger.Global()
}
