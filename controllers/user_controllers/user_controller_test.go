package user_controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripguide/api/models/shared_models"
	"github.com/tripguide/api/models/user_models"
)

func newUserTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	controller := NewUserController(nil)

	r := gin.New()
	r.POST("/api/auth/register", controller.Register)
	r.POST("/api/auth/login", controller.Login)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterValidation(t *testing.T) {
	r := newUserTestRouter()

	t.Run("MissingFields", func(t *testing.T) {
		w := postJSON(t, r, "/api/auth/register", map[string]any{
			"firstName": "Asha",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		w := postJSON(t, r, "/api/auth/register", map[string]any{
			"firstName": "Asha",
			"lastName":  "Verma",
			"email":     "not-an-email",
			"phone":     "+91 99999 11111",
			"country":   "India",
			"password":  "secret123",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		w := postJSON(t, r, "/api/auth/register", map[string]any{
			"firstName": "Asha",
			"lastName":  "Verma",
			"email":     "asha@example.com",
			"phone":     "+91 99999 11111",
			"country":   "India",
			"password":  "abc",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// stubAuth plants an authenticated user straight into the request context so
// handler paths can be exercised without a database.
func stubAuth(user *user_models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", user.ID.String())
		c.Set("authenticated_user", user)
		c.Next()
	}
}

// A profile request naming a user that cannot exist resolves to 404 before
// any ownership check, even for a plain user asking about someone else.
func TestGetProfileUnknownTargetIs404(t *testing.T) {
	gin.SetMode(gin.TestMode)

	actor := &user_models.User{
		ID:    uuid.New(),
		Email: "asha@example.com",
		Role:  shared_models.RoleUser,
	}

	controller := NewUserController(nil)
	r := gin.New()
	r.GET("/api/auth/profile/:userId", stubAuth(actor), controller.GetProfile)

	req, _ := http.NewRequest("GET", "/api/auth/profile/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
	assert.NotContains(t, w.Body.String(), "Access denied")
}

func TestLoginValidation(t *testing.T) {
	r := newUserTestRouter()

	t.Run("MissingBody", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/api/auth/login", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		w := postJSON(t, r, "/api/auth/login", map[string]any{
			"email":    "nope",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
