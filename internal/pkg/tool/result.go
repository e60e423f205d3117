package tool

import (
	"fmt"

	"github.com/kiosk404/pokedex/pkg/utils/json"
)

// ErrorInfo is the failure side of a Result.
type ErrorInfo struct {
	Message string `json:"error"`
}

// Result is either OK data or an Err. On the wire both collapse to one flat
// JSON value: the data itself, or {"error": message}.
type Result struct {
	OK  any
	Err *ErrorInfo
}

func OK(v any) Result {
	return Result{OK: v}
}

func Errorf(format string, args ...any) Result {
	return Result{Err: &ErrorInfo{Message: fmt.Sprintf(format, args...)}}
}

func (r Result) IsError() bool {
	return r.Err != nil
}

// MarshalJSON emits the flat wire form so Results nest inside other payloads.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(r.Err)
	}
	return json.Marshal(r.OK)
}

// Wire is the text placed in a tool message.
func (r Result) Wire() string {
	s, err := json.MarshalString(r)
	if err != nil {
		s, _ = json.MarshalString(ErrorInfo{Message: fmt.Sprintf("unserializable tool result: %v", err)})
	}
	return s
}
