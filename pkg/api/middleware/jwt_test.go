package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jordanlanch/leadmanager/pkg/auth"
	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func runJWT(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTMiddleware(testSecret)(func(c echo.Context) error {
		return c.String(http.StatusOK, UserID(c))
	})
	require.NoError(t, handler(c))
	return rec, c
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	token, err := auth.GenerateJWT("user-7", "admin@example.com", "Admin", testSecret, 1)
	require.NoError(t, err)

	rec, c := runJWT(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-7", rec.Body.String())
	assert.Equal(t, "admin@example.com", c.Get(ContextUserEmail))
	assert.Equal(t, token, c.Get(ContextToken))
}

func TestJWTMiddleware_Rejections(t *testing.T) {
	otherToken, err := auth.GenerateJWT("user-7", "admin@example.com", "Admin", "other-secret", 1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", "missing_token"},
		{"no bearer prefix", "Token abc", "invalid_token_format"},
		{"empty token", "Bearer ", "invalid_token_format"},
		{"garbage token", "Bearer abc.def.ghi", "invalid_token"},
		{"wrong secret", "Bearer " + otherToken, "invalid_token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := runJWT(t, tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}
