package wizard

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Result is the response of a creation endpoint.
// On Success, ID identifies the created resource.
type Result struct {
	Success bool           `json:"success"`
	ID      string         `json:"id,omitempty"`
	Error   *ResponseError `json:"error,omitempty"`
}

// ResponseError is the error payload of a failed creation.
// On the wire it is either a plain string message or an object of
// field -> message pairs.
type ResponseError struct {
	Message string
	Fields  map[string]string
}

// Failed builds a failed Result carrying a plain message.
func Failed(message string) Result {
	return Result{Error: &ResponseError{Message: message}}
}

// FailedFields builds a failed Result carrying structured field errors.
func FailedFields(fields map[string]string) Result {
	return Result{Error: &ResponseError{Fields: fields}}
}

// Succeeded builds a successful Result for the created id.
func Succeeded(id string) Result {
	return Result{Success: true, ID: id}
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%d invalid fields", len(e.Fields))
}

// MarshalJSON encodes the error as a string when only Message is set,
// and as an object otherwise.
func (e ResponseError) MarshalJSON() ([]byte, error) {
	if len(e.Fields) == 0 {
		return json.Marshal(e.Message)
	}
	return json.Marshal(e.Fields)
}

// UnmarshalJSON accepts a string message or an object of field errors.
// Object values that are not strings are kept in their JSON form.
func (e *ResponseError) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &e.Message)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("error payload must be a string or an object: %w", err)
	}

	e.Fields = make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			e.Fields[k] = s
			continue
		}
		e.Fields[k] = string(v)
	}
	return nil
}
