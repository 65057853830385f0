package webapi

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/news-assignment/newsapi/pkg/clog"
	"github.com/pkg/errors"
)

const inheritLevel = "inherit"

// LogController lets an operator change the log level and destination of a
// running server.
type LogController struct {
	mu              sync.Mutex
	CurrentLogLevel string `json:"current_log_level"`
	CurrentLogFile  string `json:"current_log_file"`

	// ContextLevels lists the contexts that don't follow the global level.
	ContextLevels map[string]string `json:"context_levels,omitempty"`

	currentHandler *clog.Handler
	openFile       func(path string) (io.WriteCloser, error)
}

// NewLogController installs a clog handler writing to stdout at level and
// returns a controller managing it.
func NewLogController(level log.Level) *LogController {
	handler := clog.NewHandler(os.Stdout)
	log.SetHandler(handler)
	log.SetLevel(level)

	return &LogController{
		CurrentLogLevel: level.String(),
		CurrentLogFile:  "stdout",
		currentHandler:  handler,
		openFile: func(path string) (io.WriteCloser, error) {
			return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		},
	}
}

func (c *LogController) ShowCurrentLogging(ctx echo.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ContextLevels = clog.Levels()
	return ctx.JSON(http.StatusOK, c)
}

// SetLogging accepts {"log_level": ..., "log_output": ..., "context": ...};
// each may be omitted. Without a context the level is the global one. A
// context's level may be "inherit" to make it follow the global level again.
// The output is shared by all contexts. Nothing changes unless every part
// is valid.
func (c *LogController) SetLogging(ctx echo.Context) error {
	var req struct {
		LogLevel  string `json:"log_level"`
		LogOutput string `json:"log_output"`
		Context   string `json:"context"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	logCtx := req.Context
	if logCtx == "" {
		logCtx = clog.GlobalCtx
	}

	if !clog.IsKnownContext(logCtx) {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Unknown logging context %s", logCtx))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	inherit := logCtx != clog.GlobalCtx && req.LogLevel == inheritLevel

	var level log.Level
	if req.LogLevel != "" && !inherit {
		var err error
		if level, err = log.ParseLevel(req.LogLevel); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.Wrapf(err, "Invalid log level %s", req.LogLevel).Error())
		}
	}

	if req.LogOutput != "" {
		if err := c.setLoggingOutput(req.LogOutput); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	switch {
	case inherit:
		clog.ClearLevel(logCtx)
	case req.LogLevel != "":
		if err := clog.SetLevel(logCtx, level); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if logCtx == clog.GlobalCtx {
			c.CurrentLogLevel = level.String()
		}
	}

	c.ContextLevels = clog.Levels()
	clog.Global().Infof("Logging set to level %s, output %s, context levels %v", c.CurrentLogLevel, c.CurrentLogFile, c.ContextLevels)

	return ctx.JSON(http.StatusOK, c)
}

func (c *LogController) setLoggingOutput(logOutput string) error {
	var w io.Writer
	switch logOutput {
	case "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := c.openFile(logOutput)
		if err != nil {
			return errors.Wrapf(err, "Failed to open log output %s", logOutput)
		}
		w = f
	}

	// SetOutput closes the previous writer when it was a file.
	c.currentHandler.SetOutput(w)
	c.CurrentLogFile = logOutput

	return nil
}
