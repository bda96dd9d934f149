package service

import (
	"context"
	"errors"
	"testing"

	"github.com/tatuanfpt/ghusers/internal/ghclient"
	"github.com/tatuanfpt/ghusers/internal/model"
	"github.com/tatuanfpt/ghusers/internal/store"
)

func TestDetailAccessorDefaults(t *testing.T) {
	svc := NewUserDetailService(&fetcherStub{}, newStoreStub())

	if got := svc.Login(); got != "" {
		t.Errorf("Login() = %q, want empty", got)
	}
	if got := svc.Location(); got != "N/A" {
		t.Errorf("Location() = %q, want N/A", got)
	}
	if got := svc.Followers(); got != 0 {
		t.Errorf("Followers() = %d, want 0", got)
	}
	if got := svc.Following(); got != 0 {
		t.Errorf("Following() = %d, want 0", got)
	}
	if got := svc.AvatarURL(); got != "" {
		t.Errorf("AvatarURL() = %q, want empty", got)
	}
	if got := svc.HTMLURL(); got != "" {
		t.Errorf("HTMLURL() = %q, want empty", got)
	}
	if _, ok := svc.Detail(); ok {
		t.Error("Detail() reported a record on a fresh service")
	}
}

func TestFetchUserDetailServesCacheWithoutNetwork(t *testing.T) {
	ctx := context.Background()
	loc := "Berlin"
	st := newStoreStub()
	st.details["alice"] = model.UserDetail{
		Login:     "alice",
		HTMLURL:   "https://github.com/alice",
		Location:  &loc,
		Followers: 12,
		Following: 3,
	}
	ff := &fetcherStub{}
	svc := NewUserDetailService(ff, st)

	svc.FetchUserDetail(ctx, "alice")

	if got := ff.DetailCalls(); got != 0 {
		t.Errorf("network called %d times for a cached login, want 0", got)
	}
	if got := svc.Login(); got != "alice" {
		t.Errorf("Login() = %q, want alice", got)
	}
	if got := svc.Location(); got != "Berlin" {
		t.Errorf("Location() = %q, want Berlin", got)
	}
	if got := svc.Followers(); got != 12 {
		t.Errorf("Followers() = %d, want 12", got)
	}

	updated, errs := drainEvents(svc.Events())
	if updated != 1 || len(errs) != 0 {
		t.Errorf("got %d updated / %v errors, want 1 / none", updated, errs)
	}
}

func TestFetchUserDetailFetchesThenCaches(t *testing.T) {
	ctx := context.Background()
	st := newStoreStub()
	ff := &fetcherStub{details: map[string]model.UserDetail{
		"bob": {Login: "bob", Followers: 7, Following: 1, HTMLURL: "https://github.com/bob"},
	}}
	svc := NewUserDetailService(ff, st)

	svc.FetchUserDetail(ctx, "bob")

	if got := ff.DetailCalls(); got != 1 {
		t.Fatalf("network called %d times, want 1", got)
	}
	saved, ok := st.SavedDetail("bob")
	if !ok {
		t.Fatal("detail was not persisted")
	}
	if saved.Followers != 7 {
		t.Errorf("persisted Followers = %d, want 7", saved.Followers)
	}

	updated, errs := drainEvents(svc.Events())
	if updated != 1 || len(errs) != 0 {
		t.Errorf("got %d updated / %v errors, want 1 / none", updated, errs)
	}

	// The second fetch for the same login is served from the cache.
	svc.FetchUserDetail(ctx, "bob")
	if got := ff.DetailCalls(); got != 1 {
		t.Errorf("network called %d times after cached refetch, want still 1", got)
	}
}

func TestFetchUserDetailFailureKeepsCurrent(t *testing.T) {
	ctx := context.Background()
	st := newStoreStub()
	st.details["alice"] = model.UserDetail{Login: "alice", Followers: 12}
	ff := &fetcherStub{detailErr: &ghclient.TransportError{Err: errors.New("boom")}}
	svc := NewUserDetailService(ff, st)

	svc.FetchUserDetail(ctx, "alice")
	drainEvents(svc.Events())

	// A later miss that fails on the network leaves alice current.
	svc.FetchUserDetail(ctx, "nobody")

	if got := svc.Login(); got != "alice" {
		t.Errorf("Login() = %q, want alice to survive the failure", got)
	}
	updated, errs := drainEvents(svc.Events())
	if updated != 0 {
		t.Errorf("got %d updated events, want 0", updated)
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want exactly 1", len(errs))
	}
	var transportErr *ghclient.TransportError
	if !errors.As(errs[0], &transportErr) {
		t.Errorf("error = %T, want *ghclient.TransportError", errs[0])
	}
}

func TestFetchUserDetailCacheReadFailureFallsBackToNetwork(t *testing.T) {
	ctx := context.Background()
	st := newStoreStub()
	st.detailReadErr = &store.StorageError{Op: "fetch user detail", Err: errors.New("corrupt")}
	ff := &fetcherStub{details: map[string]model.UserDetail{
		"bob": {Login: "bob"},
	}}
	svc := NewUserDetailService(ff, st)

	svc.FetchUserDetail(ctx, "bob")

	if got := ff.DetailCalls(); got != 1 {
		t.Errorf("network called %d times, want 1", got)
	}
	if got := svc.Login(); got != "bob" {
		t.Errorf("Login() = %q, want bob", got)
	}
}

func TestFetchUserDetailCacheWriteFailureKeepsCurrent(t *testing.T) {
	ctx := context.Background()
	st := newStoreStub()
	st.detailSaveErr = &store.StorageError{Op: "save user detail", Err: errors.New("disk full")}
	ff := &fetcherStub{details: map[string]model.UserDetail{
		"bob": {Login: "bob", Followers: 7},
	}}
	svc := NewUserDetailService(ff, st)

	svc.FetchUserDetail(ctx, "bob")

	if got := svc.Login(); got != "bob" {
		t.Errorf("Login() = %q, want bob despite the write failure", got)
	}
	updated, errs := drainEvents(svc.Events())
	if updated != 1 {
		t.Errorf("got %d updated events, want 1", updated)
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	var storageErr *store.StorageError
	if !errors.As(errs[0], &storageErr) {
		t.Errorf("error = %T, want *store.StorageError", errs[0])
	}
}

func TestRefreshUserDetailBypassesCacheRead(t *testing.T) {
	ctx := context.Background()
	st := newStoreStub()
	st.details["alice"] = model.UserDetail{Login: "alice", Followers: 12}
	ff := &fetcherStub{details: map[string]model.UserDetail{
		"alice": {Login: "alice", Followers: 99},
	}}
	svc := NewUserDetailService(ff, st)

	svc.RefreshUserDetail(ctx, "alice")

	if got := ff.DetailCalls(); got != 1 {
		t.Errorf("network called %d times, want 1", got)
	}
	if got := svc.Followers(); got != 99 {
		t.Errorf("Followers() = %d, want refreshed 99", got)
	}
	saved, _ := st.SavedDetail("alice")
	if saved.Followers != 99 {
		t.Errorf("persisted Followers = %d, want 99", saved.Followers)
	}
}
