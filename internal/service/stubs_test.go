package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tatuanfpt/ghusers/internal/ghclient"
	"github.com/tatuanfpt/ghusers/internal/model"
)

// fetcherStub implements ghclient.UserFetcher. ListUsers serves queued
// pages in order; setting release makes it block until the channel is
// closed so tests can hold a fetch in flight.
type fetcherStub struct {
	mu          sync.Mutex
	pages       [][]model.UserSummary
	listErr     error
	listCalls   int
	lastPerPage int
	lastSince   int64
	started     chan struct{}
	release     chan struct{}

	details     map[string]model.UserDetail
	detailErr   error
	detailCalls int
}

func (f *fetcherStub) ListUsers(_ context.Context, perPage int, since int64) ([]model.UserSummary, error) {
	f.mu.Lock()
	f.listCalls++
	f.lastPerPage = perPage
	f.lastSince = since
	started, release, err := f.started, f.release, f.listErr
	var page []model.UserSummary
	if len(f.pages) > 0 {
		page = f.pages[0]
		f.pages = f.pages[1:]
	}
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (f *fetcherStub) GetUserDetail(_ context.Context, login string) (model.UserDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls++
	if f.detailErr != nil {
		return model.UserDetail{}, f.detailErr
	}
	d, ok := f.details[login]
	if !ok {
		return model.UserDetail{}, &ghclient.TransportError{Err: errors.New("404 not found")}
	}
	return d, nil
}

func (f *fetcherStub) ListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fetcherStub) DetailCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detailCalls
}

// storeStub implements store.UserStore in memory and records writes.
type storeStub struct {
	mu            sync.Mutex
	users         []model.UserSummary
	savedPages    [][]model.UserSummary
	details       map[string]model.UserDetail
	usersErr      error
	saveErr       error
	detailReadErr error
	detailSaveErr error
}

func newStoreStub() *storeStub {
	return &storeStub{details: make(map[string]model.UserDetail)}
}

func (s *storeStub) SaveUsers(_ context.Context, users []model.UserSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	if len(users) == 0 {
		return nil
	}
	s.savedPages = append(s.savedPages, users)
	s.users = append(s.users, users...)
	return nil
}

func (s *storeStub) Users(_ context.Context) ([]model.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.usersErr != nil {
		return nil, s.usersErr
	}
	out := make([]model.UserSummary, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *storeStub) SaveUserDetail(_ context.Context, detail model.UserDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detailSaveErr != nil {
		return s.detailSaveErr
	}
	s.details[detail.Login] = detail
	return nil
}

func (s *storeStub) UserDetail(_ context.Context, login string) (*model.UserDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detailReadErr != nil {
		return nil, s.detailReadErr
	}
	d, ok := s.details[login]
	if !ok {
		return nil, nil
	}
	copy := d
	return &copy, nil
}

func (s *storeStub) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = nil
	s.savedPages = nil
	s.details = make(map[string]model.UserDetail)
	return nil
}

func (s *storeStub) SavedPages() [][]model.UserSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]model.UserSummary(nil), s.savedPages...)
}

func (s *storeStub) SavedDetail(login string) (model.UserDetail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.details[login]
	return d, ok
}

// drainEvents empties an event channel and tallies what was seen.
func drainEvents(ch <-chan Event) (updated int, errs []error) {
	for {
		select {
		case e := <-ch:
			switch e := e.(type) {
			case UpdatedEvent:
				updated++
			case ErrorEvent:
				errs = append(errs, e.Err)
			}
		default:
			return updated, errs
		}
	}
}

// waitUntil polls cond until it holds or the deadline passes.
func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func summaries(ids ...int64) []model.UserSummary {
	out := make([]model.UserSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.UserSummary{
			ID:    id,
			Login: string(rune('a' + id - 1)),
		})
	}
	return out
}
