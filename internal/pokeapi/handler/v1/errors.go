package v1

import (
	"net/http"

	"github.com/kiosk404/pokedex/pkg/errorx"
)

// Catalog API error codes.
// Code format: 1XXYYZ
//   - 1:  module prefix
//   - XX: 10 = pokeapi
//   - YY: resource group (00=common, 01=pokemon, 02=ranking)
//   - Z:  sequential error number

const (
	// Common request errors (1100xx).
	ErrBind       = 110001
	ErrValidation = 110002

	// Pokemon errors (1101xx).
	ErrPokemonNotFound = 110101
	ErrPokemonGet      = 110102
	ErrPokemonList     = 110103

	// Ranking errors (1102xx).
	ErrRanking = 110201
)

// MsgPokemonNotFound is the public body message of a 404.
const MsgPokemonNotFound = "Pokémon não encontrado!"

func init() {
	errorx.MustRegister(newCoder(ErrBind, http.StatusBadRequest, "Request binding failed"))
	errorx.MustRegister(newCoder(ErrValidation, http.StatusUnprocessableEntity, "Request validation failed"))

	errorx.MustRegister(newCoder(ErrPokemonNotFound, http.StatusNotFound, MsgPokemonNotFound))
	errorx.MustRegister(newCoder(ErrPokemonGet, http.StatusInternalServerError, "Failed to get pokemon"))
	errorx.MustRegister(newCoder(ErrPokemonList, http.StatusInternalServerError, "Failed to list pokemons"))

	errorx.MustRegister(newCoder(ErrRanking, http.StatusInternalServerError, "Failed to compute ranking"))
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
