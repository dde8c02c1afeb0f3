package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedResponse = errors.New("malformed server response")
)

// APIError is a non-2xx response. The backend reports validation problems as
// {"message": string|[]string, "errors": {field: string|[]string}}.
type APIError struct {
	Status  int
	Message []string
	Errors  map[string][]string
}

func (e *APIError) Error() string {
	if msg := e.FirstMessage(); msg != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// Is makes errors.Is(err, ErrUnauthorized) hold for a 401 APIError.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// FirstMessage returns the first top-level message, or "".
func (e *APIError) FirstMessage() string {
	if len(e.Message) == 0 {
		return ""
	}
	return e.Message[0]
}

// Field returns the first error code reported for name, or "".
func (e *APIError) Field(name string) string {
	if v := e.Errors[name]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// FirstFieldError returns the first reported field error, taking fields in
// name order. Both are "" when the response names no field.
func (e *APIError) FirstFieldError() (field, msg string) {
	names := make([]string, 0, len(e.Errors))
	for name, msgs := range e.Errors {
		if len(msgs) > 0 && msgs[0] != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", ""
	}
	sort.Strings(names)
	return names[0], e.Errors[names[0]][0]
}

// stringList decodes either a JSON string or an array of strings.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = nil
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*l = stringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

type errorBody struct {
	Message stringList            `json:"message"`
	Errors  map[string]stringList `json:"errors"`
}

// newAPIError builds an APIError from a response body. Undecodable bodies
// yield an error carrying only the status.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var eb errorBody
	if len(strings.TrimSpace(string(body))) == 0 || json.Unmarshal(body, &eb) != nil {
		return apiErr
	}

	apiErr.Message = eb.Message
	if len(eb.Errors) > 0 {
		apiErr.Errors = make(map[string][]string, len(eb.Errors))
		for k, v := range eb.Errors {
			apiErr.Errors[k] = v
		}
	}
	return apiErr
}
