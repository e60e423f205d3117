package core

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiosk404/pokedex/pkg/errorx"
	"github.com/kiosk404/pokedex/pkg/logger"
)

// ErrResponse defines the return messages when an error occurred.
// Message only ever carries the public message registered for Code.
type ErrResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Reference string `json:"reference,omitempty"`
}

// WriteResponse writes data as JSON on success, or the registered public error otherwise.
// The internal error text is logged with the request's correlation id and never sent.
func WriteResponse(c *gin.Context, err error, data any) {
	if err != nil {
		coder := errorx.ParseCoder(err)
		logger.CtxError(c.Request.Context(), "[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(coder.HTTPStatus(), ErrResponse{
			Code:      coder.Code(),
			Message:   coder.String(),
			Reference: coder.Reference(),
		})
		return
	}

	c.JSON(http.StatusOK, data)
}
