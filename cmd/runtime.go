package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/tatuanfpt/ghusers/config"
	"github.com/tatuanfpt/ghusers/internal/ghclient"
	"github.com/tatuanfpt/ghusers/internal/log"
	"github.com/tatuanfpt/ghusers/internal/service"
	"github.com/tatuanfpt/ghusers/internal/store"
)

// runtime bundles the configured collaborators a command needs.
type runtime struct {
	cfg    *config.Config
	db     *store.DB
	client *ghclient.Client
}

// setup loads configuration, applies flag overrides, and opens the
// local store and the API client. The returned cleanup closes the
// store.
func setup(ctx context.Context, opts *Options) (*runtime, func(), error) {
	log.Initialize(opts.Verbosity, os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	// Flags beat config file and environment.
	if opts.PageSize > 0 {
		cfg.PageSize = opts.PageSize
	}
	if opts.Format != "" {
		cfg.Format = opts.Format
	}
	if opts.DBPath != "" {
		cfg.DBPath = opts.DBPath
	}
	if opts.Token != "" {
		cfg.Token = opts.Token
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = store.DefaultPath()
		if err != nil {
			return nil, nil, fmt.Errorf("locating local store: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}

	rt := &runtime{
		cfg:    cfg,
		db:     db,
		client: ghclient.NewClient(ctx, cfg.Token),
	}
	cleanup := func() { _ = db.Close() }
	return rt, cleanup, nil
}

// lastError drains a service event channel and returns the most
// recent error, if any. Non-interactive commands call this after
// their blocking operations complete.
func lastError(ch <-chan service.Event) error {
	var last error
	for {
		select {
		case e := <-ch:
			if ee, ok := e.(service.ErrorEvent); ok {
				last = ee.Err
			}
		default:
			return last
		}
	}
}
