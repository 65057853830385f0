package webapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/news-assignment/newsapi/pkg/clog"
)

// ValidationDetail describes one rejected request parameter.
type ValidationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func (d *ValidationDetail) Error() string {
	return strings.Join(d.Loc, ".") + ": " + d.Msg
}

// validationFailed turns echo binding errors plus any extra checks into a 422
// listing every problem, or returns nil when there are none.
func validationFailed(bindErrs []error, details ...*ValidationDetail) error {
	var all []ValidationDetail

	for _, err := range bindErrs {
		var vd *ValidationDetail
		if errors.As(err, &vd) {
			all = append(all, *vd)
			continue
		}

		var be *echo.BindingError
		if !errors.As(err, &be) {
			all = append(all, ValidationDetail{Loc: []string{"query"}, Msg: err.Error(), Type: "value_error"})
			continue
		}

		detail := ValidationDetail{Loc: []string{"query", be.Field}, Type: "value_error", Msg: fmt.Sprint(be.Message)}
		if len(be.Values) == 0 {
			detail.Type, detail.Msg = "missing", "Field required"
		}
		all = append(all, detail)
	}

	for _, d := range details {
		if d != nil {
			all = append(all, *d)
		}
	}

	if len(all) == 0 {
		return nil
	}

	return echo.NewHTTPError(http.StatusUnprocessableEntity, all)
}

// checkRange validates an already bound integer query parameter.
func checkRange(name string, value, low, high int) *ValidationDetail {
	switch {
	case value < low:
		return &ValidationDetail{
			Loc:  []string{"query", name},
			Msg:  fmt.Sprintf("Input should be greater than or equal to %d", low),
			Type: "greater_than_equal",
		}
	case value > high:
		return &ValidationDetail{
			Loc:  []string{"query", name},
			Msg:  fmt.Sprintf("Input should be less than or equal to %d", high),
			Type: "less_than_equal",
		}
	default:
		return nil
	}
}

// serviceError reports a failed news operation as a 500 carrying the error
// message, the way every news endpoint surfaces upstream problems.
func serviceError(err error) error {
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
}

// HTTPErrorHandler renders every error as {"detail": ...}.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		he = &echo.HTTPError{Code: http.StatusInternalServerError, Message: err.Error(), Internal: err}
	}

	if he.Code >= http.StatusInternalServerError {
		clog.UsingCtx(clog.HTTPCtx).WithField("path", c.Path()).Errorf("%d: %v", he.Code, he.Message)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, map[string]interface{}{"detail": he.Message})
	}

	if err != nil {
		clog.UsingCtx(clog.HTTPCtx).Errorf("Unable to write error response: %s", err)
	}
}
