package gnews

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

var ErrGNewsAPI = errors.New("gnews api")

// ErrorResponse is the JSON body GNews sends with a failed call. Older
// responses carry a single message, current ones a list of errors.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func (e ErrorResponse) detail() string {
	switch {
	case e.Message != "":
		return e.Message
	case len(e.Errors) != 0:
		return e.Errors[0]
	default:
		return "Unknown error"
	}
}

// Error is returned for every failed GNews call. Message is what gets
// reported back to API callers; StatusCode is 0 unless GNews answered.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrGNewsAPI}
	}

	return []error{ErrGNewsAPI, e.Err}
}

func ToErrorFromResponse(resp *resty.Response) error {
	msg := fmt.Sprintf("GNews API Error: %d", resp.StatusCode())

	var errorResponse ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errorResponse); err == nil {
		msg += " - " + errorResponse.detail()
	}

	return &Error{StatusCode: resp.StatusCode(), Message: msg}
}

func networkError(err error) error {
	return &Error{Message: fmt.Sprintf("Network error: Unable to reach GNews API - %s", err), Err: err}
}

func requestError(err error) error {
	return &Error{Message: fmt.Sprintf("Request error: %s", err), Err: err}
}
