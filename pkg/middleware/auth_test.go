package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(testSecret))
	router.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	router.GET("/admin", AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func get(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidToken(t *testing.T) {
	router := newAuthRouter()
	userID := primitive.NewObjectID().Hex()
	token := signToken(t, testSecret, jwt.MapClaims{"sub": userID})

	w := get(router, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID)
}

func TestAuth_MissingHeader(t *testing.T) {
	router := newAuthRouter()
	w := get(router, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	router := newAuthRouter()
	token := signToken(t, "other-secret", jwt.MapClaims{"sub": primitive.NewObjectID().Hex()})

	w := get(router, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedSubject(t *testing.T) {
	router := newAuthRouter()
	token := signToken(t, testSecret, jwt.MapClaims{"sub": "not-an-object-id"})

	w := get(router, "/me", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnly(t *testing.T) {
	router := newAuthRouter()
	userID := primitive.NewObjectID().Hex()

	w := get(router, "/admin", signToken(t, testSecret, jwt.MapClaims{"sub": userID}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = get(router, "/admin", signToken(t, testSecret, jwt.MapClaims{"sub": userID, "admin": true}))
	assert.Equal(t, http.StatusOK, w.Code)
}
