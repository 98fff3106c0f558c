package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, HTTPError) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, err)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespond_BusinessKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ErrInvalidInput("invalid_id", "Id inválido."), http.StatusBadRequest},
		{ErrNotFound("tutor_not_found", "Tutor não encontrado."), http.StatusNotFound},
		{ErrConflict("already_inactive", "Já inativo."), http.StatusConflict},
		{ErrUnauthorized("invalid_credentials", "Credenciais inválidas."), http.StatusUnauthorized},
		{ErrForbidden("forbidden", "Acesso negado."), http.StatusForbidden},
	}

	for _, tc := range cases {
		w, body := respond(t, tc.err)
		assert.Equal(t, tc.status, w.Code)
		assert.Equal(t, tc.err.Error(), body.Code)
	}
}

func TestRespond_WrappedBusinessError(t *testing.T) {
	err := fmt.Errorf("deactivate: %w", ErrConflict("has_open_visits", "Possui atendimentos."))

	w, body := respond(t, err)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "has_open_visits", body.Code)
	assert.True(t, IsBusiness(err, "has_open_visits"))
}

func TestRespond_InternalDoesNotLeak(t *testing.T) {
	w, body := respond(t, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal_error", body.Code)
	assert.NotContains(t, body.Message, "10.0.0.5")
}
