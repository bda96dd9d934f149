// Package store persists fetched users locally so the browser starts
// from the previous session's list and detail lookups can be served
// without a network round trip.
package store

import (
	"context"
	"fmt"

	"github.com/tatuanfpt/ghusers/internal/model"
)

// UserStore defines the persistence operations the services need.
// This interface enables substituting an in-memory fake in unit tests.
type UserStore interface {
	// SaveUsers appends summaries in the given order. Saving an empty
	// slice is a no-op.
	SaveUsers(ctx context.Context, users []model.UserSummary) error

	// Users returns all persisted summaries in insertion order.
	Users(ctx context.Context) ([]model.UserSummary, error)

	// SaveUserDetail stores one detail record keyed by login,
	// replacing any previous record for that login.
	SaveUserDetail(ctx context.Context, detail model.UserDetail) error

	// UserDetail returns the record for login, or (nil, nil) when no
	// usable record exists.
	UserDetail(ctx context.Context, login string) (*model.UserDetail, error)

	// Clear removes all persisted summaries and details.
	Clear(ctx context.Context) error
}

// StorageError wraps a repository read or write failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
