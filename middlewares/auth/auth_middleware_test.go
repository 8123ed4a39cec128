package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripguide/api/models/user_models"
)

// The middleware rejects requests without a verifiable token before it ever
// touches the database, so a nil pool is enough to cover those paths.
func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", AuthMiddleware(nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	r := newAuthTestRouter()

	req, _ := http.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token, authorization denied")
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	r := newAuthTestRouter()

	cases := []string{
		"Bearer",
		"Basic dXNlcjpwYXNz",
		"Bearer not.a.valid.token",
	}

	for _, header := range cases {
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header=%q", header)
	}
}

func TestCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Absent", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		_, ok := CurrentUser(c)
		assert.False(t, ok)
	})

	t.Run("Present", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		u := &user_models.User{FirstName: "Asha"}
		c.Set(userContextKey, u)

		got, ok := CurrentUser(c)
		require.True(t, ok)
		assert.Equal(t, u, got)
	})
}
