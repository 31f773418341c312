// Package app wires configuration, catalog and cloud adapters together.
// The CLI and the server build the same dispatch table through New.
package app

import (
	"go.uber.org/zap"

	hsapi "cloud-adapter/adapters/hyperstack"
	"cloud-adapter/clouds"
	"cloud-adapter/clouds/hyperstack"
	"cloud-adapter/core/catalog"
	"cloud-adapter/core/types"
	"cloud-adapter/internal/config"
	"cloud-adapter/internal/logging"
)

// App holds the process-wide, read-only adapter state
type App struct {
	Config     *config.Config
	Catalog    *catalog.Catalog
	Hyperstack *hyperstack.Cloud
	Registry   *clouds.Registry
}

// New builds the catalog and every adapter from cfg
func New(cfg *config.Config) (*App, error) {
	cat, err := LoadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	hs := hyperstack.New(cat,
		hyperstack.WithAPIKeyPath(cfg.Hyperstack.APIKeyPath),
		hyperstack.WithAPIClientOptions(
			hsapi.WithBaseURL(cfg.Hyperstack.APIURL),
			hsapi.WithTimeout(cfg.Hyperstack.RequestTimeout()),
		),
	)

	registry, err := clouds.NewRegistry(hs)
	if err != nil {
		return nil, err
	}

	stats := cat.Stats()
	logging.Debug("adapters ready",
		zap.Stringers("clouds", registry.Names()),
		zap.Int("offerings", stats.Offerings),
		zap.Int("instance_types", stats.InstanceTypes),
	)

	return &App{
		Config:     cfg,
		Catalog:    cat,
		Hyperstack: hs,
		Registry:   registry,
	}, nil
}

// LoadCatalog reads the configured catalog file, or the embedded one
func LoadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.Path == "" {
		return catalog.DefaultHyperstack()
	}
	return catalog.LoadFile(types.ProviderHyperstack, cfg.Path)
}
