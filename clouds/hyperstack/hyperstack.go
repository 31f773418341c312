// Package hyperstack implements the Hyperstack GPU cloud adapter.
//
// Hyperstack bills accelerators as part of the instance type, has no zones
// and sells no spot capacity. The adapter resolves abstract requests against
// an injected catalog and validates credentials with a single live API call.
package hyperstack

import (
	"context"

	"go.uber.org/zap"

	hsapi "cloud-adapter/adapters/hyperstack"
	"cloud-adapter/clouds"
	"cloud-adapter/core/catalog"
	"cloud-adapter/core/types"
	"cloud-adapter/internal/logging"
)

const displayName = "Hyperstack"

// InstanceLister is the one compute API capability the adapter uses
type InstanceLister interface {
	ListInstances(ctx context.Context) ([]hsapi.Instance, error)
}

// ListerFactory builds an InstanceLister from the credential file
type ListerFactory func(apiKeyPath string) (InstanceLister, error)

// Cloud is the Hyperstack adapter. It holds no mutable state and is safe
// for concurrent use.
type Cloud struct {
	catalog    catalog.Client
	apiKeyPath string
	newLister  ListerFactory
	logger     *zap.Logger
}

// Option configures a Cloud
type Option func(*Cloud)

// WithAPIKeyPath overrides the credential file location
func WithAPIKeyPath(path string) Option {
	return func(c *Cloud) { c.apiKeyPath = path }
}

// WithAPIClientOptions configures the compute API client used for the
// credential probe
func WithAPIClientOptions(opts ...hsapi.ClientOption) Option {
	return func(c *Cloud) {
		c.newLister = func(path string) (InstanceLister, error) {
			return hsapi.NewClientFromFile(path, opts...)
		}
	}
}

// WithListerFactory replaces how the compute API client is built
func WithListerFactory(f ListerFactory) Option {
	return func(c *Cloud) { c.newLister = f }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cloud) { c.logger = logger }
}

// New creates the adapter over cat
func New(cat catalog.Client, opts ...Option) *Cloud {
	c := &Cloud{
		catalog:    cat,
		apiKeyPath: hsapi.APIKeyPath,
		newLister: func(path string) (InstanceLister, error) {
			return hsapi.NewClientFromFile(path)
		},
		logger: logging.Named("hyperstack"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements clouds.CloudProvider
func (c *Cloud) Name() types.Provider {
	return types.ProviderHyperstack
}

// String returns the display name
func (c *Cloud) String() string {
	return displayName
}

var _ clouds.CloudProvider = (*Cloud)(nil)
