package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/tatuanfpt/ghusers/internal/format"
	"github.com/tatuanfpt/ghusers/internal/model"
	"golang.org/x/term"
)

// maxLoginWidth caps the login column so one long name does not blow
// up the table.
const maxLoginWidth = 40

var headerColor = color.New(color.FgCyan, color.Bold)

// TableFormatter renders an aligned terminal table.
type TableFormatter struct{}

// hyperlink wraps text in an OSC 8 terminal hyperlink when stdout is
// a terminal; plain text otherwise.
func hyperlink(text, url string) string {
	if url == "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// FormatUsers writes one row per user: LOGIN, ID, PROFILE.
func (f *TableFormatter) FormatUsers(w io.Writer, users []model.UserSummary) error {
	if len(users) == 0 {
		_, err := fmt.Fprintln(w, "No users.")
		return err
	}

	loginWidth := len("LOGIN")
	for _, u := range users {
		if width := format.DisplayWidth(u.Login); width > loginWidth {
			loginWidth = width
		}
	}
	if loginWidth > maxLoginWidth {
		loginWidth = maxLoginWidth
	}

	idWidth := len("ID")
	for _, u := range users {
		if width := len(fmt.Sprintf("%d", u.ID)); width > idWidth {
			idWidth = width
		}
	}

	if _, err := fmt.Fprintf(w, "%s  %s  %s\n",
		headerColor.Sprint(format.PadRight("LOGIN", loginWidth)),
		headerColor.Sprint(format.PadRight("ID", idWidth)),
		headerColor.Sprint("PROFILE")); err != nil {
		return err
	}

	for _, u := range users {
		login := format.PadRight(format.Truncate(u.Login, loginWidth), loginWidth)
		id := format.PadRight(fmt.Sprintf("%d", u.ID), idWidth)
		if _, err := fmt.Fprintf(w, "%s  %s  %s\n",
			hyperlink(login, u.HTMLURL), id, u.HTMLURL); err != nil {
			return err
		}
	}

	return nil
}

// FormatDetail writes the detail record as label/value lines.
func (f *TableFormatter) FormatDetail(w io.Writer, detail model.UserDetail) error {
	location := "N/A"
	if detail.Location != nil {
		location = *detail.Location
	}

	rows := []struct {
		label string
		value string
	}{
		{"Login", detail.Login},
		{"Location", location},
		{"Followers", fmt.Sprintf("%d", detail.Followers)},
		{"Following", fmt.Sprintf("%d", detail.Following)},
		{"Profile", detail.HTMLURL},
		{"Avatar", detail.AvatarURL},
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s %s\n",
			headerColor.Sprint(format.PadRight(row.label+":", 11)), row.value); err != nil {
			return err
		}
	}

	return nil
}
