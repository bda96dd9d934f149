// Package ghclient wraps the GitHub REST API for user listing and lookup.
package ghclient

import (
	"context"
	"net/http"
	"os"

	gh "github.com/google/go-github/v57/github"
	"github.com/tatuanfpt/ghusers/internal/log"
	"github.com/tatuanfpt/ghusers/internal/model"
	"golang.org/x/oauth2"
)

// Client talks to api.github.com. A token is optional: the public
// /users endpoints answer unauthenticated requests at a much lower
// rate limit, so anonymous browsing still works.
type Client struct {
	client *gh.Client
}

// NewClient creates a GitHub client. An empty token falls back to the
// GITHUB_TOKEN environment variable; if that is empty too the client
// is anonymous.
func NewClient(ctx context.Context, token string) *Client {
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		hc = oauth2.NewClient(ctx, ts)
	}

	return &Client{client: gh.NewClient(hc)}
}

// ListUsers fetches one page of GET /users?per_page={perPage}&since={since}.
// Results arrive in ascending ID order; an empty page means the cursor
// is past the last user GitHub will list.
func (c *Client) ListUsers(ctx context.Context, perPage int, since int64) ([]model.UserSummary, error) {
	opts := &gh.UserListOptions{
		Since:       since,
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	ghUsers, _, err := c.client.Users.ListAll(ctx, opts)
	if err != nil {
		return nil, wrapAPIError(err)
	}

	users := make([]model.UserSummary, 0, len(ghUsers))
	for _, u := range ghUsers {
		users = append(users, toSummary(u))
	}

	log.Debug("listed users", "count", len(users), "since", since)
	return users, nil
}

// GetUserDetail fetches GET /users/{login}.
func (c *Client) GetUserDetail(ctx context.Context, login string) (model.UserDetail, error) {
	u, _, err := c.client.Users.Get(ctx, login)
	if err != nil {
		return model.UserDetail{}, wrapAPIError(err)
	}

	log.Debug("fetched user detail", "login", login)
	return toDetail(u), nil
}

func toSummary(u *gh.User) model.UserSummary {
	return model.UserSummary{
		ID:        u.GetID(),
		Login:     u.GetLogin(),
		AvatarURL: u.GetAvatarURL(),
		HTMLURL:   u.GetHTMLURL(),
	}
}

func toDetail(u *gh.User) model.UserDetail {
	return model.UserDetail{
		Login:     u.GetLogin(),
		AvatarURL: u.GetAvatarURL(),
		HTMLURL:   u.GetHTMLURL(),
		Location:  u.Location,
		Followers: u.GetFollowers(),
		Following: u.GetFollowing(),
	}
}
