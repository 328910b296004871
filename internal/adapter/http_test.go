package adapter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace-indexer/internal/adapter"
)

func newTestHTTPClient() adapter.HTTPClient {
	return adapter.NewHTTPClient(adapter.HTTPClientConfig{
		Timeout:         5 * time.Second,
		InitialInterval: 10 * time.Millisecond,
		MaxInterval:     20 * time.Millisecond,
		MaxElapsedTime:  2 * time.Second,
	})
}

func TestHTTPClient_RetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"name":"Token #1"}`))
	}))
	defer srv.Close()

	var out struct {
		Name string `json:"name"`
	}
	err := newTestHTTPClient().Get(context.Background(), srv.URL, &out)
	require.NoError(t, err)
	assert.Equal(t, "Token #1", out.Name)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPClient_NotFoundIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestHTTPClient().GetBytes(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code 404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPClient_GetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("raw"))
	}))
	defer srv.Close()

	body, err := newTestHTTPClient().GetBytes(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("raw"), body)
}

func TestJSON_Canonicalize(t *testing.T) {
	j := adapter.NewJSON()
	a, err := j.Canonicalize([]byte(`{"b": 1, "a": "x"}`))
	require.NoError(t, err)
	b, err := j.Canonicalize([]byte(`{"a":"x","b":1}`))
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, `{"a":"x","b":1}`, string(a))
}
