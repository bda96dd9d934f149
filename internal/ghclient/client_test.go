package ghclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	gh "github.com/google/go-github/v57/github"
)

func TestToSummary(t *testing.T) {
	u := &gh.User{
		ID:        gh.Int64(583231),
		Login:     gh.String("octocat"),
		AvatarURL: gh.String("https://avatars.githubusercontent.com/u/583231?v=4"),
		HTMLURL:   gh.String("https://github.com/octocat"),
	}

	got := toSummary(u)
	if got.ID != 583231 {
		t.Errorf("ID = %d, want 583231", got.ID)
	}
	if got.Login != "octocat" {
		t.Errorf("Login = %q, want octocat", got.Login)
	}
	if got.AvatarURL == "" || got.HTMLURL == "" {
		t.Error("expected URLs to be mapped")
	}
}

func TestToDetail(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		u := &gh.User{
			Login:     gh.String("octocat"),
			AvatarURL: gh.String("https://avatars.githubusercontent.com/u/583231?v=4"),
			HTMLURL:   gh.String("https://github.com/octocat"),
			Location:  gh.String("San Francisco"),
			Followers: gh.Int(8000),
			Following: gh.Int(9),
		}

		got := toDetail(u)
		if got.Login != "octocat" {
			t.Errorf("Login = %q", got.Login)
		}
		if got.Location == nil || *got.Location != "San Francisco" {
			t.Errorf("Location = %v, want San Francisco", got.Location)
		}
		if got.Followers != 8000 || got.Following != 9 {
			t.Errorf("counts = %d/%d, want 8000/9", got.Followers, got.Following)
		}
	})

	t.Run("missing location stays nil", func(t *testing.T) {
		got := toDetail(&gh.User{Login: gh.String("ghost")})
		if got.Location != nil {
			t.Errorf("Location = %q, want nil", *got.Location)
		}
	})
}

func TestWrapAPIError(t *testing.T) {
	t.Run("json errors become DecodingError", func(t *testing.T) {
		var syntaxErr error = &json.SyntaxError{}
		err := wrapAPIError(fmt.Errorf("reading body: %w", syntaxErr))

		var decodeErr *DecodingError
		if !errors.As(err, &decodeErr) {
			t.Fatalf("expected DecodingError, got %T", err)
		}
	})

	t.Run("everything else becomes TransportError", func(t *testing.T) {
		err := wrapAPIError(errors.New("connection refused"))

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("expected TransportError, got %T", err)
		}
		if transportErr.Error() == "" {
			t.Error("expected a human-readable message")
		}
	})
}
