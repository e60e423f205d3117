package logger

import (
	"context"

	"github.com/google/uuid"
)

const FieldCorrelationID = "correlation_id"

type correlationKey struct{}

// WithCorrelationID stores id in ctx so every Ctx* log line carries it.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the id stored in ctx or "".
func CorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// NewCorrelationID generates a fresh identifier.
func NewCorrelationID() string {
	return uuid.New().String()
}
