// Package service owns the fetch/cache/merge/search pipeline: it
// coordinates the GitHub client and the local store and exposes the
// resulting state to presentation layers through accessors and an
// event channel.
package service

// Event is delivered on a service's Events channel whenever its
// observable state may have changed.
type Event interface {
	isEvent()
}

// UpdatedEvent signals that list or detail state changed; consumers
// re-read the accessors rather than receiving a payload.
type UpdatedEvent struct{}

func (UpdatedEvent) isEvent() {}

// ErrorEvent carries a failed operation's error. Err is one of
// *ghclient.TransportError, *ghclient.DecodingError, or
// *store.StorageError; most consumers just render Err.Error().
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) isEvent() {}

// Message returns the human-readable description of the failure.
func (e ErrorEvent) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

const eventBuffer = 32

// emit is a non-blocking send: a slow or absent consumer must never
// stall a fetch completion.
func emit(ch chan Event, e Event) {
	select {
	case ch <- e:
	default:
	}
}
