// Package errorx provides errors that carry a registered business code.
package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// Coder describes a registered error code.
type Coder interface {
	// Code returns the business code.
	Code() int
	// HTTPStatus returns the status written to HTTP clients.
	HTTPStatus() int
	// String returns the public, client-safe message.
	String() string
	// Reference returns a documentation link, possibly empty.
	Reference() string
}

// ErrUnknown is the code used for errors that carry no registered code.
const ErrUnknown = 1

type defaultCoder struct {
	code int
	http int
	msg  string
	ref  string
}

func (c defaultCoder) Code() int         { return c.code }
func (c defaultCoder) HTTPStatus() int   { return c.http }
func (c defaultCoder) String() string    { return c.msg }
func (c defaultCoder) Reference() string { return c.ref }

var (
	unknownCoder Coder = defaultCoder{code: ErrUnknown, http: http.StatusInternalServerError, msg: "An internal server error occurred"}

	codes   = map[int]Coder{}
	codeMux sync.RWMutex
)

// Register adds or replaces a coder.
func Register(coder Coder) {
	if coder.Code() == ErrUnknown {
		panic("code 1 is reserved for unknown errors")
	}
	codeMux.Lock()
	defer codeMux.Unlock()
	codes[coder.Code()] = coder
}

// MustRegister adds a coder and panics if the code is already taken.
func MustRegister(coder Coder) {
	if coder.Code() == ErrUnknown {
		panic("code 1 is reserved for unknown errors")
	}
	codeMux.Lock()
	defer codeMux.Unlock()
	if _, ok := codes[coder.Code()]; ok {
		panic(fmt.Sprintf("code %d already registered", coder.Code()))
	}
	codes[coder.Code()] = coder
}

// withCode is an error annotated with a business code.
type withCode struct {
	err   error
	code  int
	cause error
}

func (w *withCode) Error() string {
	if w.cause != nil {
		return fmt.Sprintf("%s: %s", w.err.Error(), w.cause.Error())
	}
	return w.err.Error()
}

func (w *withCode) Unwrap() error { return w.cause }

// Code returns the attached business code.
func (w *withCode) Code() int { return w.code }

// WithCode creates a new coded error.
func WithCode(code int, format string, args ...any) error {
	return &withCode{err: fmt.Errorf(format, args...), code: code}
}

// WrapC wraps err with a code and a message. A nil err yields nil.
func WrapC(err error, code int, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &withCode{err: fmt.Errorf(format, args...), code: code, cause: err}
}

// ParseCoder returns the coder of the outermost coded error in err's chain.
// Errors without a code, or with an unregistered one, map to the unknown coder.
func ParseCoder(err error) Coder {
	if err == nil {
		return nil
	}
	var wc *withCode
	if !errors.As(err, &wc) {
		return unknownCoder
	}
	codeMux.RLock()
	defer codeMux.RUnlock()
	if coder, ok := codes[wc.code]; ok {
		return coder
	}
	return unknownCoder
}

// IsCode reports whether any error in err's chain carries code.
func IsCode(err error, code int) bool {
	for err != nil {
		var wc *withCode
		if !errors.As(err, &wc) {
			return false
		}
		if wc.code == code {
			return true
		}
		err = wc.cause
	}
	return false
}
