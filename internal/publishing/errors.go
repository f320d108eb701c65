package publishing

import (
	"encoding/json"
	"fmt"
)

// HTTPError is a non-2xx response from the Publishing API, with the
// structured error body decoded when one was sent.
type HTTPError struct {
	StatusCode int
	Code       int
	Message    string
	Fields     map[string][]string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("publishing api: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("publishing api: unexpected status %d", e.StatusCode)
}

type errorBody struct {
	Error struct {
		Code    int                 `json:"code"`
		Message string              `json:"message"`
		Fields  map[string][]string `json:"fields"`
	} `json:"error"`
}

func newHTTPError(statusCode int, body []byte) *HTTPError {
	httpErr := &HTTPError{StatusCode: statusCode}

	var decoded errorBody
	if err := json.Unmarshal(body, &decoded); err == nil {
		httpErr.Code = decoded.Error.Code
		httpErr.Message = decoded.Error.Message
		httpErr.Fields = decoded.Error.Fields
	}

	return httpErr
}
