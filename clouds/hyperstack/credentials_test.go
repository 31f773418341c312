package hyperstack

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hsapi "cloud-adapter/adapters/hyperstack"
	"cloud-adapter/core/types"
	"cloud-adapter/internal/errors"
)

func writeKey(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "api_key")
	require.NoError(t, os.WriteFile(path, []byte("secret\n"), 0600))
	return path
}

func listerFor(l *fakeLister) Option {
	return WithListerFactory(func(string) (InstanceLister, error) { return l, nil })
}

func TestCheckCredentialsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_key")
	lister := &fakeLister{}
	c := newTestCloud(&fakeCatalog{}, WithAPIKeyPath(path), listerFor(lister))

	state, err := c.CheckCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.CredentialsMissing, state.Status)
	assert.False(t, state.OK())
	assert.Contains(t, state.Message, hsapi.APIKeysURL)
	assert.Contains(t, state.Message, path)
	assert.Zero(t, lister.calls)
}

func TestCheckCredentialsValid(t *testing.T) {
	tests := []struct {
		name      string
		instances []hsapi.Instance
	}{
		{"no instances", nil},
		{"one instance", []hsapi.Instance{{ID: 1, Name: "train-head", Status: "ACTIVE"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := &fakeLister{instances: tt.instances}
			c := newTestCloud(&fakeCatalog{}, WithAPIKeyPath(writeKey(t)), listerFor(lister))

			state, err := c.CheckCredentials(context.Background())
			require.NoError(t, err)
			assert.Equal(t, types.ValidCredentials(), state)
			assert.Equal(t, 1, lister.calls)
		})
	}
}

func TestCheckCredentialsNetworkUnreachable(t *testing.T) {
	lister := &fakeLister{err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}}
	c := newTestCloud(&fakeCatalog{}, WithAPIKeyPath(writeKey(t)), listerFor(lister))

	state, err := c.CheckCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.CredentialsNetworkUnreachable, state.Status)
	assert.Contains(t, state.Message, "check your network connection and try again")
}

func TestCheckCredentialsAPIErrorIsReturned(t *testing.T) {
	lister := &fakeLister{err: &hsapi.APIError{StatusCode: http.StatusUnauthorized, Message: "invalid api key"}}
	c := newTestCloud(&fakeCatalog{}, WithAPIKeyPath(writeKey(t)), listerFor(lister))

	_, err := c.CheckCredentials(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeCredentials))
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestCheckCredentialsAgainstLiveServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("api_key"))
		_, _ = w.Write([]byte(`{"status":true,"instances":[]}`))
	}))
	defer srv.Close()

	c := newTestCloud(&fakeCatalog{},
		WithAPIKeyPath(writeKey(t)),
		WithAPIClientOptions(hsapi.WithBaseURL(srv.URL)),
	)
	state, err := c.CheckCredentials(context.Background())
	require.NoError(t, err)
	assert.True(t, state.OK())

	storage, err := c.CheckStorageCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, state, storage)

	srv.Close()
	state, err = c.CheckCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.CredentialsNetworkUnreachable, state.Status)
}

func TestCredentialFileMounts(t *testing.T) {
	c := newTestCloud(&fakeCatalog{})
	assert.Equal(t, map[string]string{"~/.hyperstack/api_key": "~/.hyperstack/api_key"}, c.CredentialFileMounts())
}
