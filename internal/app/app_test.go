package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloud-adapter/core/types"
	"cloud-adapter/internal/config"
)

func TestNewWithEmbeddedCatalog(t *testing.T) {
	a, err := New(config.Default())
	require.NoError(t, err)

	p, err := a.Registry.Lookup(types.ProviderHyperstack)
	require.NoError(t, err)
	assert.Same(t, a.Hyperstack, p)
	assert.True(t, a.Catalog.InstanceTypeExists("n3-A100x1"))
}

func TestNewWithCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
offering "tiny" {
  vcpus      = 2
  memory_gib = 8
  price      = 0.01
  regions    = ["US-1"]
}
`), 0644))

	cfg := config.Default()
	cfg.Catalog.Path = path
	a, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"tiny"}, a.Catalog.InstanceTypes())

	cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.hcl")
	_, err = New(cfg)
	assert.Error(t, err)
}
