package v1

import (
	"net/http"

	"github.com/kiosk404/pokedex/pkg/errorx"
)

// Agent handler error codes.
// Code format: 1XXYYZ
//   - 1:  module prefix
//   - XX: 20 = pokeagent
//   - YY: resource group (00=common, 01=chat)
//   - Z:  sequential error number

const (
	// Common request errors (1200xx).
	ErrBind       = 120001
	ErrValidation = 120002

	// Chat errors (1201xx).
	ErrAgentUnavailable = 120101
	ErrMessageEmpty     = 120102
)

func init() {
	errorx.MustRegister(newCoder(ErrBind, http.StatusBadRequest, "Request body binding failed"))
	errorx.MustRegister(newCoder(ErrValidation, http.StatusBadRequest, "Request validation failed"))

	errorx.MustRegister(newCoder(ErrAgentUnavailable, http.StatusServiceUnavailable, "Agente não inicializado corretamente no servidor."))
	errorx.MustRegister(newCoder(ErrMessageEmpty, http.StatusBadRequest, "Message must not be empty"))
}

type coder struct {
	code int
	http int
	msg  string
}

func newCoder(code, httpStatus int, msg string) *coder {
	return &coder{code: code, http: httpStatus, msg: msg}
}

func (c *coder) Code() int         { return c.code }
func (c *coder) HTTPStatus() int   { return c.http }
func (c *coder) String() string    { return c.msg }
func (c *coder) Reference() string { return "" }
