package commands

import (
	"fmt"

	"github.com/marmos91/hdfsprep/internal/cli/prompt"
	"github.com/marmos91/hdfsprep/pkg/catalog"
	"github.com/marmos91/hdfsprep/pkg/config"
	"github.com/marmos91/hdfsprep/pkg/onefs"
)

// newClient validates the merged cluster settings and builds a zone-scoped
// client, prompting for the password when none was supplied.
func newClient() (*onefs.Client, error) {
	if err := config.ValidateCluster(&cfg.Cluster); err != nil {
		return nil, err
	}

	password := cfg.Cluster.Password
	if password == "" {
		p, err := prompt.Password(fmt.Sprintf("Password for %s@%s", cfg.Cluster.Username, cfg.Cluster.Address))
		if err != nil {
			return nil, err
		}
		password = p
	}

	return onefs.New(onefs.Config{
		Address:   cfg.Cluster.Address,
		Username:  cfg.Cluster.Username,
		Password:  password,
		Zone:      cfg.Cluster.Zone,
		VerifySSL: cfg.Cluster.VerifySSL,
		Timeout:   cfg.Cluster.Timeout,
	}), nil
}

// buildManifest assembles the validated manifest for a distribution: the base
// catalog, zone-specific additions, and the optional cluster-name suffix.
func buildManifest(dist, suffix string) (*catalog.Manifest, error) {
	manifest, err := catalog.EntriesFor(dist)
	if err != nil {
		return nil, err
	}

	manifest = manifest.ForZone(cfg.Cluster.Zone)

	if suffix != "" {
		manifest = manifest.WithSuffix(catalog.NormalizeSuffix(suffix))
	}

	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("manifest for %s is inconsistent: %w", dist, err)
	}
	return manifest, nil
}
