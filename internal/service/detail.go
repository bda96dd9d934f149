package service

import (
	"context"
	"sync"

	"github.com/tatuanfpt/ghusers/internal/ghclient"
	"github.com/tatuanfpt/ghusers/internal/log"
	"github.com/tatuanfpt/ghusers/internal/model"
	"github.com/tatuanfpt/ghusers/internal/store"
)

// locationFallback is shown when an account never set a location.
const locationFallback = "N/A"

// UserDetailService resolves one user's enriched record, preferring
// the local store over the network. A cached record is authoritative:
// there is no TTL and no background refresh.
type UserDetailService struct {
	fetcher ghclient.UserFetcher
	store   store.UserStore
	events  chan Event

	mu      sync.Mutex
	current *model.UserDetail
}

// NewUserDetailService builds a detail service over the given fetcher
// and store.
func NewUserDetailService(fetcher ghclient.UserFetcher, st store.UserStore) *UserDetailService {
	return &UserDetailService{
		fetcher: fetcher,
		store:   st,
		events:  make(chan Event, eventBuffer),
	}
}

// Events returns the channel UpdatedEvent and ErrorEvent are
// delivered on. The channel is buffered and never closed.
func (s *UserDetailService) Events() <-chan Event {
	return s.events
}

// FetchUserDetail resolves login. A cache hit sets the current record
// and returns without a network call. A miss goes to the network; on
// success the record becomes current and is persisted, on failure the
// previous current record survives and one ErrorEvent fires.
//
// Like FetchUsers, the call blocks until resolution finishes.
func (s *UserDetailService) FetchUserDetail(ctx context.Context, login string) {
	cached, err := s.store.UserDetail(ctx, login)
	if err != nil {
		// A broken cache read degrades to a network fetch.
		log.Warn("detail cache read failed", "login", login, "error", err)
	}
	if cached != nil {
		log.Info("user detail served from cache", "login", login)
		s.setCurrent(cached)
		emit(s.events, UpdatedEvent{})
		return
	}

	s.fetchFresh(ctx, login)
}

// RefreshUserDetail skips the cache read and always asks the network,
// overwriting the cached record on success.
func (s *UserDetailService) RefreshUserDetail(ctx context.Context, login string) {
	s.fetchFresh(ctx, login)
}

func (s *UserDetailService) fetchFresh(ctx context.Context, login string) {
	detail, err := s.fetcher.GetUserDetail(ctx, login)
	if err != nil {
		log.Warn("user detail fetch failed", "login", login, "error", err)
		emit(s.events, ErrorEvent{Err: err})
		return
	}

	s.setCurrent(&detail)

	if err := s.store.SaveUserDetail(ctx, detail); err != nil {
		// The record stays current even when caching it fails.
		log.Warn("could not cache user detail", "login", login, "error", err)
		emit(s.events, ErrorEvent{Err: err})
	}

	emit(s.events, UpdatedEvent{})
}

func (s *UserDetailService) setCurrent(d *model.UserDetail) {
	s.mu.Lock()
	s.current = d
	s.mu.Unlock()
}

// Detail returns a copy of the current record and whether one is set.
func (s *UserDetailService) Detail() (model.UserDetail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return model.UserDetail{}, false
	}
	return *s.current, true
}

// Login returns the current record's login, or "" when nothing is
// loaded.
func (s *UserDetailService) Login() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Login
}

// Location returns the current record's location, or "N/A" when the
// record is absent or has none.
func (s *UserDetailService) Location() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.Location == nil {
		return locationFallback
	}
	return *s.current.Location
}

// Followers returns the current record's follower count, or 0.
func (s *UserDetailService) Followers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	return s.current.Followers
}

// Following returns the current record's following count, or 0.
func (s *UserDetailService) Following() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	return s.current.Following
}

// AvatarURL returns the current record's avatar URL, or "".
func (s *UserDetailService) AvatarURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.AvatarURL
}

// HTMLURL returns the current record's profile URL, or "".
func (s *UserDetailService) HTMLURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.HTMLURL
}
