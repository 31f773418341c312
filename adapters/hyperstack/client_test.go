package hyperstack

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListInstances(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/core/virtual-machines", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("api_key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true,"message":"ok","instances":[
			{"id":7,"name":"train-head","status":"ACTIVE","flavor":{"name":"n3-A100x1"},"environment":{"name":"default-CANADA-1"}}
		]}`))
	}))
	defer srv.Close()

	c := NewClient("secret", WithBaseURL(srv.URL+"/v1/"))
	instances, err := c.ListInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Equal(t, "train-head", instances[0].Name)
	assert.Equal(t, "n3-A100x1", instances[0].Flavor.Name)
}

func TestListInstancesEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":true,"instances":[]}`))
	}))
	defer srv.Close()

	instances, err := NewClient("k", WithBaseURL(srv.URL)).ListInstances(context.Background())
	require.NoError(t, err)
	assert.Empty(t, instances)
}

func TestListInstancesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":false,"message":"invalid api key"}`))
	}))
	defer srv.Close()

	_, err := NewClient("k", WithBaseURL(srv.URL)).ListInstances(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid api key", apiErr.Message)
	assert.False(t, IsConnectivityError(err))
}

func TestConnectionRefusedIsConnectivityError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient("k", WithBaseURL(url)).ListInstances(context.Background())
	require.Error(t, err)
	assert.True(t, IsConnectivityError(err))
}

func TestTimeoutIsConnectivityError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient("k", WithBaseURL(srv.URL), WithTimeout(50*time.Millisecond)).ListInstances(context.Background())
	require.Error(t, err)
	assert.True(t, IsConnectivityError(err))
}

func TestCancelledContextIsNotConnectivityError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient("k", WithBaseURL("http://127.0.0.1:1")).ListInstances(ctx)
	require.Error(t, err)
	assert.False(t, IsConnectivityError(err))
}

func TestNewClientFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api_key")
	require.NoError(t, os.WriteFile(path, []byte("  secret\n"), 0600))

	c, err := NewClientFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", c.apiKey)

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0600))
	_, err = NewClientFromFile(empty)
	assert.Error(t, err)

	_, err = NewClientFromFile(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/.hyperstack/api_key")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".hyperstack", "api_key"), got)

	got, err = ExpandPath("/etc/key")
	require.NoError(t, err)
	assert.Equal(t, "/etc/key", got)
}
