package ghclient

import (
	"context"

	"github.com/tatuanfpt/ghusers/internal/model"
)

// UserFetcher defines the remote side of the user pipeline.
// This interface enables substituting a fake in unit tests.
type UserFetcher interface {
	// ListUsers returns the page of users with IDs greater than since.
	ListUsers(ctx context.Context, perPage int, since int64) ([]model.UserSummary, error)

	// GetUserDetail returns the enriched record for one login.
	GetUserDetail(ctx context.Context, login string) (model.UserDetail, error)
}

// Ensure Client implements UserFetcher.
var _ UserFetcher = (*Client)(nil)
