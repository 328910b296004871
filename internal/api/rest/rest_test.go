package rest_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace-indexer/internal/api/middleware"
	"github.com/feral-file/ff-marketplace-indexer/internal/api/rest"
	"github.com/feral-file/ff-marketplace-indexer/internal/logger"
	"github.com/feral-file/ff-marketplace-indexer/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestSetupRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := mocks.NewMockAPIHandler(ctrl)

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{APIKeys: []string{"key-1"}})
	require.NoError(t, err)

	router := gin.New()
	rest.SetupRoutes(router, handler, auth, prometheus.NewRegistry())

	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	tests := []struct {
		method string
		path   string
		admin  bool
		expect func() *gomock.Call
	}{
		{http.MethodGet, "/health", false, func() *gomock.Call { return handler.EXPECT().HealthCheck(gomock.Any()) }},
		{http.MethodGet, "/api/v1/sync/status", false, func() *gomock.Call { return handler.EXPECT().GetSyncStatus(gomock.Any()) }},
		{http.MethodGet, "/api/v1/sync/checkpoints", false, func() *gomock.Call { return handler.EXPECT().ListCheckpoints(gomock.Any()) }},
		{http.MethodPost, "/api/v1/sync/scan", true, func() *gomock.Call { return handler.EXPECT().TriggerScan(gomock.Any()) }},
		{http.MethodPost, "/api/v1/tokens/metadata/refresh", true, func() *gomock.Call { return handler.EXPECT().RefreshTokenMetadata(gomock.Any()) }},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			tt.expect().Do(ok).Times(1)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.admin {
				req.Header.Set("Authorization", "ApiKey key-1")
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusNoContent, rec.Code)

			if tt.admin {
				// Without credentials the handler is never reached
				rec = httptest.NewRecorder()
				router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
				assert.Equal(t, http.StatusUnauthorized, rec.Code)
			}
		})
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
