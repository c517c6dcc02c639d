package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// registerRouter uses a nil DB: every case here must fail validation before
// touching persistence.
func registerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", RegisterHandler(nil))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterHandlerValidation(t *testing.T) {
	r := registerRouter()

	tests := []struct {
		name string
		body string
	}{
		{"missing fields", `{}`},
		{"numeric username", `{"username": "user123", "email": "a@b.co", "password": "longenough"}`},
		{"short password", `{"username": "alice", "email": "a@b.co", "password": "short"}`},
		{"long password", `{"username": "alice", "email": "a@b.co", "password": "waytoolongforthisfield"}`},
		{"bad email", `{"username": "alice", "email": "nope", "password": "longenough"}`},
		{"bad user type", `{"username": "alice", "email": "a@b.co", "password": "longenough", "user_type": "admin"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, r, "/auth/register", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "invalid-request", body["code"])
		})
	}
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, isValidUsername("Alice"))
	assert.False(t, isValidUsername("alice1"))
	assert.False(t, isValidUsername("al ice"))
	assert.False(t, isValidUsername(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.False(t, isValidPassword("seven77"))
	assert.True(t, isValidPassword("eight888"))
	assert.True(t, isValidPassword("fifteen15chars!"))
	assert.False(t, isValidPassword("sixteen16charss!"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, isValidEmail("user@example.com"))
	assert.False(t, isValidEmail("user@example"))
	assert.False(t, isValidEmail("userexample.com"))
	assert.False(t, isValidEmail(""))
}

func TestIsDuplicateKey(t *testing.T) {
	t.Run("gorm sentinel", func(t *testing.T) {
		assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))
	})
	t.Run("mysql duplicate entry", func(t *testing.T) {
		err := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'username'"}
		assert.True(t, isDuplicateKey(fmt.Errorf("create user: %w", err)))
	})
	t.Run("other mysql error", func(t *testing.T) {
		assert.False(t, isDuplicateKey(&mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}))
	})
	t.Run("plain error", func(t *testing.T) {
		assert.False(t, isDuplicateKey(errors.New("connection refused")))
	})
}
