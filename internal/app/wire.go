package app

import (
	"errors"
	"fmt"

	"ristkey/internal/directory"
	"ristkey/internal/domain"
	"ristkey/internal/httpclient"
	"ristkey/internal/services/identity"
	"ristkey/internal/store"
)

// ErrNoDirectory is returned by Wire.RequireDirectory when no URL was configured.
var ErrNoDirectory = errors.New("directory URL required (--relay)")

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	IDs       domain.IdentityService
	Records   domain.KeyRecordStore
	Directory domain.DirectoryClient // nil without a RelayURL
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	identityStore := store.NewIdentityFileStore(cfg.Home)
	recordStore := store.NewKeyRecordFileStore(cfg.Home)

	w := &Wire{
		IDs:     identity.New(identityStore),
		Records: recordStore,
	}
	if cfg.RelayURL == "" {
		return w, nil
	}

	hcfg := cfg.HTTP
	if hcfg == (httpclient.Config{}) {
		hcfg = httpclient.DefaultConfig()
	}
	hcfg.APIKey = cfg.APIKey
	hcfg.Logger = cfg.Logger
	hc, err := httpclient.New(hcfg)
	if err != nil {
		return nil, fmt.Errorf("http client: %w", err)
	}
	w.Directory = directory.NewClient(cfg.RelayURL, hc)
	return w, nil
}

// RequireDirectory returns the directory client or ErrNoDirectory.
func (w *Wire) RequireDirectory() (domain.DirectoryClient, error) {
	if w.Directory == nil {
		return nil, ErrNoDirectory
	}
	return w.Directory, nil
}
