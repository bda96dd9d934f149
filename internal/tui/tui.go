package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatuanfpt/ghusers/internal/service"
	"golang.org/x/term"
)

// Run starts the browse UI and blocks until the user quits.
func Run(ctx context.Context, list *service.UserListService, detail *service.UserDetailService) error {
	p := tea.NewProgram(New(ctx, list, detail), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ShouldUseTUI returns true if the interactive UI should be used
// based on the environment.
func ShouldUseTUI() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}

	ciVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"JENKINS_URL",
		"TRAVIS",
		"CIRCLECI",
		"GITLAB_CI",
		"BUILDKITE",
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return false
		}
	}

	return true
}
