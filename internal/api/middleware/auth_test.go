package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace-indexer/internal/api/middleware"
	"github.com/feral-file/ff-marketplace-indexer/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func generateKey(t *testing.T) (*rsa.PrivateKey, string) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	return key, string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

func sign(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestAuthenticate(t *testing.T) {
	key, publicPEM := generateKey(t)
	otherKey, _ := generateKey(t)

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey: publicPEM,
		APIKeys:      []string{"", "key-1"},
	})
	require.NoError(t, err)

	valid := sign(t, key, jwt.RegisteredClaims{
		Subject:   "operator",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	expired := sign(t, key, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	notYet := sign(t, key, jwt.RegisteredClaims{
		NotBefore: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	foreign := sign(t, otherKey, jwt.RegisteredClaims{Subject: "operator"})

	tests := []struct {
		name        string
		header      string
		wantType    string
		wantSubject string
		wantErr     bool
	}{
		{name: "valid jwt", header: "Bearer " + valid, wantType: middleware.AuthTypeJWT, wantSubject: "operator"},
		{name: "lowercase scheme", header: "bearer " + valid, wantType: middleware.AuthTypeJWT, wantSubject: "operator"},
		{name: "api key", header: "ApiKey key-1", wantType: middleware.AuthTypeAPIKey},
		{name: "expired jwt", header: "Bearer " + expired, wantErr: true},
		{name: "jwt not yet valid", header: "Bearer " + notYet, wantErr: true},
		{name: "jwt signed by another key", header: "Bearer " + foreign, wantErr: true},
		{name: "unknown api key", header: "ApiKey key-2", wantErr: true},
		{name: "empty api key", header: "ApiKey ", wantErr: true},
		{name: "missing header", header: "", wantErr: true},
		{name: "no scheme", header: "key-1", wantErr: true},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := auth.Authenticate(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, result.AuthType)
			assert.Equal(t, tt.wantSubject, result.AuthSubject)
		})
	}
}

func TestAuthenticate_NothingConfigured(t *testing.T) {
	key, _ := generateKey(t)

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{})
	require.NoError(t, err)

	_, err = auth.Authenticate("Bearer " + sign(t, key, jwt.RegisteredClaims{}))
	assert.ErrorContains(t, err, "not configured")

	_, err = auth.Authenticate("ApiKey anything")
	assert.ErrorContains(t, err, "no API keys configured")
}

func TestNewAuthenticator_InvalidKey(t *testing.T) {
	_, err := middleware.NewAuthenticator(middleware.AuthConfig{JWTPublicKey: "-----BEGIN PUBLIC KEY-----\nAAAA\n-----END PUBLIC KEY-----\n"})
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{APIKeys: []string{"key-1"}})
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.GET("/admin", middleware.Auth(auth), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("auth_type"))
	})
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	t.Run("authorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "ApiKey key-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, middleware.AuthTypeAPIKey, rec.Body.String())
	})

	t.Run("rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
	})

	t.Run("panic recovered", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"internal_error"`)
	})
}
