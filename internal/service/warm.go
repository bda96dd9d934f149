package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/tatuanfpt/ghusers/internal/ghclient"
	"github.com/tatuanfpt/ghusers/internal/log"
	"github.com/tatuanfpt/ghusers/internal/store"
	"golang.org/x/sync/errgroup"
)

// WarmDetails fills the detail cache for the given logins. Logins that
// already have a cached record are skipped; misses are fetched with at
// most workers concurrent requests and persisted. Returns the number
// of records fetched from the network.
//
// The first failure cancels the remaining fetches; records persisted
// before the failure stay cached.
func WarmDetails(ctx context.Context, fetcher ghclient.UserFetcher, st store.UserStore, logins []string, workers int) (int, error) {
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var fetched atomic.Int64
	for _, login := range logins {
		login := login
		g.Go(func() error {
			cached, err := st.UserDetail(ctx, login)
			if err != nil {
				log.Warn("detail cache read failed", "login", login, "error", err)
			}
			if cached != nil {
				return nil
			}

			detail, err := fetcher.GetUserDetail(ctx, login)
			if err != nil {
				return fmt.Errorf("warming %s: %w", login, err)
			}
			if err := st.SaveUserDetail(ctx, detail); err != nil {
				return fmt.Errorf("warming %s: %w", login, err)
			}

			fetched.Add(1)
			return nil
		})
	}

	err := g.Wait()
	log.Info("warmed detail cache", "fetched", fetched.Load(), "requested", len(logins))
	return int(fetched.Load()), err
}
