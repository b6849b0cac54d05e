package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/CamiloTello002/Talent-Trade/internal/domain/apperr"
)

func perform(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	respondError(c, nil, err)
	return w
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"authentication", apperr.Authentication("invalid credentials"), http.StatusUnauthorized},
		{"authorization", apperr.Authorization("email is already registered"), http.StatusForbidden},
		{"bad request", apperr.BadRequest("trade not found"), http.StatusBadRequest},
		{"not found", apperr.NotFound("user not found"), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := perform(t, tc.err)
			require.Equal(t, tc.status, w.Code)

			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.False(t, body.Success)
			require.Equal(t, tc.err.Error(), body.Message)
		})
	}
}

func TestRespondErrorHidesInternals(t *testing.T) {
	w := perform(t, errors.New("pq: connection refused"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "connection refused")
	require.Contains(t, w.Body.String(), "internal error")
}
