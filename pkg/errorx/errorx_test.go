package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testNotFound = 990001
	testInternal = 990002
)

func init() {
	MustRegister(defaultCoder{code: testNotFound, http: http.StatusNotFound, msg: "not found"})
	MustRegister(defaultCoder{code: testInternal, http: http.StatusInternalServerError, msg: "internal"})
}

func TestParseCoder(t *testing.T) {
	base := errors.New("sql: no rows")

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantHTTP int
	}{
		{"coded", WithCode(testNotFound, "pokemon %q", "missingno"), testNotFound, http.StatusNotFound},
		{"wrapped", WrapC(base, testInternal, "query"), testInternal, http.StatusInternalServerError},
		{"wrapped twice keeps outer", WrapC(WithCode(testNotFound, "inner"), testInternal, "outer"), testInternal, http.StatusInternalServerError},
		{"behind fmt wrap", fmt.Errorf("ctx: %w", WithCode(testNotFound, "x")), testNotFound, http.StatusNotFound},
		{"plain", base, ErrUnknown, http.StatusInternalServerError},
		{"unregistered", WithCode(123456, "x"), ErrUnknown, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coder := ParseCoder(tt.err)
			assert.Equal(t, tt.wantCode, coder.Code())
			assert.Equal(t, tt.wantHTTP, coder.HTTPStatus())
		})
	}
	assert.Nil(t, ParseCoder(nil))
}

func TestWrapC(t *testing.T) {
	base := errors.New("boom")
	err := WrapC(base, testInternal, "load %d", 7)

	assert.EqualError(t, err, "load 7: boom")
	assert.ErrorIs(t, err, base)
	assert.Nil(t, WrapC(nil, testInternal, "noop"))
}

func TestIsCode(t *testing.T) {
	err := WrapC(WithCode(testNotFound, "inner"), testInternal, "outer")
	assert.True(t, IsCode(err, testInternal))
	assert.True(t, IsCode(err, testNotFound))
	assert.False(t, IsCode(err, 42))
	assert.False(t, IsCode(errors.New("plain"), testNotFound))
}

func TestMustRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		MustRegister(defaultCoder{code: testNotFound, http: http.StatusNotFound, msg: "dup"})
	})
}
