// Package model defines the GitHub user records exchanged between the
// API client, the local store, and the presentation layer.
package model

// UserSummary is one row of the paged /users listing. ID is the
// identity key and doubles as the pagination cursor: the next page is
// requested with since = last ID.
type UserSummary struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// UserDetail is the enriched record behind /users/{login}, keyed by
// login. Location is a pointer because GitHub omits it for accounts
// that never set one.
type UserDetail struct {
	Login     string  `json:"login"`
	AvatarURL string  `json:"avatar_url"`
	HTMLURL   string  `json:"html_url"`
	Location  *string `json:"location,omitempty"`
	Followers int     `json:"followers"`
	Following int     `json:"following"`
}
