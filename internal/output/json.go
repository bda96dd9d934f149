package output

import (
	"encoding/json"
	"io"

	"github.com/tatuanfpt/ghusers/internal/model"
)

// JSONFormatter emits records with the GitHub wire field names.
type JSONFormatter struct{}

// FormatUsers writes the list as a JSON array.
func (f *JSONFormatter) FormatUsers(w io.Writer, users []model.UserSummary) error {
	if users == nil {
		users = []model.UserSummary{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(users)
}

// FormatDetail writes one detail record as a JSON object.
func (f *JSONFormatter) FormatDetail(w io.Writer, detail model.UserDetail) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(detail)
}
