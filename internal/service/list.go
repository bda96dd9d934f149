package service

import (
	"context"
	"strings"
	"sync"

	"github.com/tatuanfpt/ghusers/internal/ghclient"
	"github.com/tatuanfpt/ghusers/internal/log"
	"github.com/tatuanfpt/ghusers/internal/model"
	"github.com/tatuanfpt/ghusers/internal/store"
)

// defaultPageSize matches GitHub's default page size for /users.
const defaultPageSize = 20

// UserListService owns the in-memory user list. It hydrates from the
// local store, extends the list with paged network fetches, keeps a
// login substring filter over it, and guards against overlapping
// fetches.
//
// All state lives behind one mutex; completions arriving from the
// fetch goroutine mutate nothing without holding it.
type UserListService struct {
	fetcher ghclient.UserFetcher
	store   store.UserStore
	events  chan Event

	mu         sync.Mutex
	users      []model.UserSummary
	filtered   []model.UserSummary
	searchText string
	fetching   bool
	cursor     int64
	pageSize   int
}

// ListOption configures a UserListService.
type ListOption func(*UserListService)

// WithPageSize overrides the default page size of 20.
func WithPageSize(n int) ListOption {
	return func(s *UserListService) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// NewUserListService builds the list and hydrates it from the store:
// cached users load in persisted order, the cursor moves to the last
// cached ID, and an UpdatedEvent fires when anything was loaded.
//
// Construction never touches the network. The first page fetch is an
// explicit caller action, so a UI can decide when (and whether) to go
// online.
func NewUserListService(ctx context.Context, fetcher ghclient.UserFetcher, st store.UserStore, opts ...ListOption) *UserListService {
	s := &UserListService{
		fetcher:  fetcher,
		store:    st,
		events:   make(chan Event, eventBuffer),
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	cached, err := st.Users(ctx)
	if err != nil {
		log.Warn("could not load cached users", "error", err)
		emit(s.events, ErrorEvent{Err: err})
		return s
	}

	if len(cached) > 0 {
		s.users = cached
		s.cursor = cached[len(cached)-1].ID
		s.refilterLocked()
		log.Info("hydrated user list from cache", "count", len(cached), "cursor", s.cursor)
		emit(s.events, UpdatedEvent{})
	}

	return s
}

// Events returns the channel UpdatedEvent and ErrorEvent are
// delivered on. The channel is buffered and never closed.
func (s *UserListService) Events() <-chan Event {
	return s.events
}

// FetchUsers requests the page after the current cursor and appends
// it. A call that arrives while another fetch is outstanding is a
// silent no-op; that guard is what keeps completions ordered without
// per-request generation tokens.
//
// The call blocks until the round trip finishes, so presentation
// layers run it off their event loop (the TUI wraps it in a command).
func (s *UserListService) FetchUsers(ctx context.Context) {
	s.mu.Lock()
	if s.fetching {
		s.mu.Unlock()
		return
	}
	s.fetching = true
	perPage, since := s.pageSize, s.cursor
	s.mu.Unlock()

	page, err := s.fetcher.ListUsers(ctx, perPage, since)
	if err != nil {
		s.mu.Lock()
		s.fetching = false
		s.mu.Unlock()
		log.Warn("user page fetch failed", "since", since, "error", err)
		emit(s.events, ErrorEvent{Err: err})
		return
	}

	s.mu.Lock()
	s.fetching = false
	// Pages are appended as received; overlapping IDs from a re-read
	// page are kept, matching the persisted order exactly.
	s.users = append(s.users, page...)
	if len(page) > 0 {
		s.cursor = page[len(page)-1].ID
	}
	s.refilterLocked()
	s.mu.Unlock()

	if err := s.store.SaveUsers(ctx, page); err != nil {
		// The in-memory list keeps the page even when caching fails;
		// the store lags until the next successful save.
		log.Warn("could not cache users", "count", len(page), "error", err)
		emit(s.events, ErrorEvent{Err: err})
	}

	emit(s.events, UpdatedEvent{})
}

// LoadMoreUsers is the infinite-scroll trigger. It is an alias for
// FetchUsers; the re-entrancy guard makes repeated triggers cheap.
func (s *UserListService) LoadMoreUsers(ctx context.Context) {
	s.FetchUsers(ctx)
}

// SetSearchText stores text and recomputes the filtered view: users
// whose login contains text case-insensitively. Empty text restores
// the unfiltered list. Pure and synchronous.
func (s *UserListService) SetSearchText(text string) {
	s.mu.Lock()
	s.searchText = text
	s.refilterLocked()
	s.mu.Unlock()

	emit(s.events, UpdatedEvent{})
}

// refilterLocked recomputes filtered from users and searchText.
// Callers must hold s.mu (or have exclusive access during construction).
func (s *UserListService) refilterLocked() {
	if s.searchText == "" {
		s.filtered = s.users
		return
	}

	needle := strings.ToLower(s.searchText)
	filtered := make([]model.UserSummary, 0, len(s.users))
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Login), needle) {
			filtered = append(filtered, u)
		}
	}
	s.filtered = filtered
}

// Count returns the number of visible users: the filtered view while
// a search is active, the full list otherwise.
func (s *UserListService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searchText != "" {
		return len(s.filtered)
	}
	return len(s.users)
}

// UserAt returns the visible user at index, drawn from the same
// sequence Count counts. An out-of-range index is a caller bug and
// panics.
func (s *UserListService) UserAt(index int) model.UserSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searchText != "" {
		return s.filtered[index]
	}
	return s.users[index]
}

// VisibleUsers returns a snapshot of the users Count/UserAt expose.
func (s *UserListService) VisibleUsers() []model.UserSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.users
	if s.searchText != "" {
		src = s.filtered
	}
	out := make([]model.UserSummary, len(src))
	copy(out, src)
	return out
}

// IsFetching reports whether a list fetch is in flight.
func (s *UserListService) IsFetching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetching
}

// Cursor returns the last-seen user ID used as the next page offset.
func (s *UserListService) Cursor() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// SearchText returns the current filter text.
func (s *UserListService) SearchText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchText
}
