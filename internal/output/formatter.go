// Package output renders users and details for non-interactive runs.
package output

import (
	"fmt"
	"io"

	"github.com/tatuanfpt/ghusers/internal/model"
)

// Formatter renders a user list or a single detail record.
type Formatter interface {
	FormatUsers(w io.Writer, users []model.UserSummary) error
	FormatDetail(w io.Writer, detail model.UserDetail) error
}

// NewFormatter returns the formatter for a format name.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "", "table":
		return &TableFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table or json)", format)
	}
}
