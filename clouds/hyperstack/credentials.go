package hyperstack

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	hsapi "cloud-adapter/adapters/hyperstack"
	"cloud-adapter/core/types"
	"cloud-adapter/internal/errors"
)

// CheckCredentials implements clouds.CloudProvider. The key file must exist
// and one ListInstances call must reach the API. An empty instance list is
// valid. API failures other than connectivity are returned as errors.
func (c *Cloud) CheckCredentials(ctx context.Context) (types.CredentialState, error) {
	path, err := hsapi.ExpandPath(c.apiKeyPath)
	if err != nil {
		return types.CredentialState{}, err
	}

	if _, err := os.Stat(path); err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			return types.CredentialState{}, errors.Wrapf(errors.TypeCredentials, err, "stat %s", c.apiKeyPath)
		}
		c.logger.Debug("api key file missing", zap.String("path", path))
		return types.MissingCredentials(fmt.Sprintf(
			"Failed to access %s with credentials. To configure credentials, go to:\n"+
				"    %s\n"+
				"to generate an API key and add it to %s",
			displayName, hsapi.APIKeysURL, c.apiKeyPath)), nil
	}

	lister, err := c.newLister(path)
	if err != nil {
		return types.CredentialState{}, errors.Wrapf(errors.TypeCredentials, err, "load api key from %s", c.apiKeyPath)
	}

	instances, err := lister.ListInstances(ctx)
	if err != nil {
		if hsapi.IsConnectivityError(err) {
			c.logger.Debug("compute api unreachable", zap.Error(err))
			return types.UnreachableCredentials(fmt.Sprintf(
				"Failed to verify %s credentials: could not reach the compute API (%v). "+
					"Please check your network connection and try again.", displayName, err)), nil
		}
		return types.CredentialState{}, errors.Wrapf(errors.TypeCredentials, err, "verify %s credentials", displayName)
	}

	c.logger.Debug("credentials valid", zap.Int("instances", len(instances)))
	return types.ValidCredentials(), nil
}

// CheckStorageCredentials implements clouds.CloudProvider. Hyperstack uses
// one key for compute and storage.
func (c *Cloud) CheckStorageCredentials(ctx context.Context) (types.CredentialState, error) {
	return c.CheckCredentials(ctx)
}

// CredentialFileMounts maps remote paths to the local files a worker needs
func (c *Cloud) CredentialFileMounts() map[string]string {
	return map[string]string{c.apiKeyPath: c.apiKeyPath}
}
