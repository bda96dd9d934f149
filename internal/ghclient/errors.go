package ghclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

// TransportError wraps network and API-level failures: connection
// errors, non-2xx responses, malformed request URLs.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("github: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodingError wraps a response body that did not match the expected
// payload shape.
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("github: decoding response: %v", e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }

// wrapAPIError classifies an error from go-github into the taxonomy
// the presentation layer can branch on.
func wrapAPIError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &DecodingError{Err: err}
	}
	return &TransportError{Err: err}
}
