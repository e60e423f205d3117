// Package pokedex holds the catalog tools offered to the assistant model.
package pokedex

import (
	"context"

	"github.com/kiosk404/pokedex/internal/pkg/tool"
)

// Backend answers catalog lookups. Domain failures such as an unknown
// creature come back as error Results, never as Go errors.
type Backend interface {
	GetPokemon(ctx context.Context, nameOrID string) tool.Result
	ListByType(ctx context.Context, typeName string) tool.Result
	TopByStat(ctx context.Context, stat string, n int) tool.Result
}

// Fixed payload messages shown to the model.
const (
	MsgNotFound      = "Recurso não encontrado."
	MsgTimeout       = "Tempo limite de conexão excedido."
	MsgUnexpected    = "Erro interno inesperado."
	msgAPIError      = "Erro da API: %d"
	msgConnectFailed = "Falha na conexão: %v"
)
