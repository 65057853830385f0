package clog

import (
	"fmt"
	"sync"

	"github.com/apex/log"
)

// Logging contexts used across the service. Each one tags entries with
// ctx=<name> so the upstream client, the cache and the HTTP layer can be told
// apart in a single log stream.
const (
	GlobalCtx  = "global"
	GNewsCtx   = "gnews"
	CacheCtx   = "cache"
	HTTPCtx    = "http"
	ArchiveCtx = "archive"
)

var knownContexts = []string{GlobalCtx, GNewsCtx, CacheCtx, HTTPCtx, ArchiveCtx}

// ContextLogger hands out entries bound to a named context. A context given
// its own level gets its own *log.Logger, which writes through whatever
// handler the global logger has at the time of the call.
type ContextLogger struct {
	GlobalLogger   *log.Logger
	ContextLoggers sync.Map
}

func NewContextLogger(logger *log.Logger) *ContextLogger {
	return &ContextLogger{GlobalLogger: logger}
}

// SetLevel sets the minimum level for ctx. GlobalCtx sets the level of the
// shared logger, which every context without its own level follows.
func (l *ContextLogger) SetLevel(ctx string, level log.Level) error {
	if !IsKnownContext(ctx) {
		return fmt.Errorf("no such logging context %s", ctx)
	}

	if ctx == GlobalCtx {
		l.GlobalLogger.Level = level
		return nil
	}

	l.ContextLoggers.Store(ctx, &log.Logger{
		Handler: log.HandlerFunc(l.handleWithGlobal),
		Level:   level,
	})

	return nil
}

func (l *ContextLogger) SetLevelFromString(ctx, s string) error {
	level, err := log.ParseLevel(s)
	if err != nil {
		return err
	}

	return l.SetLevel(ctx, level)
}

// ClearLevel makes ctx follow the global level again.
func (l *ContextLogger) ClearLevel(ctx string) {
	l.ContextLoggers.Delete(ctx)
}

// Levels returns the contexts that have their own level.
func (l *ContextLogger) Levels() map[string]string {
	levels := make(map[string]string)
	l.ContextLoggers.Range(func(key, value any) bool {
		levels[key.(string)] = value.(*log.Logger).Level.String()
		return true
	})
	return levels
}

func (l *ContextLogger) UsingCtx(ctx string) *log.Entry {
	logger := l.getContextLogger(ctx)
	if logger == nil {
		return l.GlobalLogger.WithField("ctx", ctx)
	}
	return logger.WithField("ctx", ctx)
}

func (l *ContextLogger) Global() *log.Entry {
	return l.UsingCtx(GlobalCtx)
}

func (l *ContextLogger) getContextLogger(ctx string) *log.Logger {
	logger, ok := l.ContextLoggers.Load(ctx)
	if !ok {
		return nil
	}

	return logger.(*log.Logger)
}

func (l *ContextLogger) handleWithGlobal(e *log.Entry) error {
	return l.GlobalLogger.Handler.HandleLog(e)
}

func IsKnownContext(ctx string) bool {
	for _, known := range knownContexts {
		if ctx == known {
			return true
		}
	}

	return false
}
