package core

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kiosk404/pokedex/pkg/errorx"
	"github.com/stretchr/testify/assert"
)

type testCoder struct{}

func (testCoder) Code() int         { return 990101 }
func (testCoder) HTTPStatus() int   { return http.StatusNotFound }
func (testCoder) String() string    { return "Pokémon não encontrado!" }
func (testCoder) Reference() string { return "" }

func init() {
	gin.SetMode(gin.TestMode)
	errorx.MustRegister(testCoder{})
}

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	handler(c)
	return w
}

func TestWriteResponse(t *testing.T) {
	t.Run("data", func(t *testing.T) {
		w := serve(func(c *gin.Context) { WriteResponse(c, nil, []string{"bulbasaur"}) })
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `["bulbasaur"]`, w.Body.String())
	})

	t.Run("coded error", func(t *testing.T) {
		w := serve(func(c *gin.Context) {
			WriteResponse(c, errorx.WithCode(990101, "pokemon %q", "missingno"), nil)
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"code":990101,"message":"Pokémon não encontrado!"}`, w.Body.String())
	})

	t.Run("internal text never leaks", func(t *testing.T) {
		w := serve(func(c *gin.Context) {
			WriteResponse(c, errors.New("pq: password authentication failed"), nil)
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
	})
}
