// Package tui implements the interactive user browser: a scrolling
// list with live login filtering, infinite pagination, and a
// cache-first detail pane.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatuanfpt/ghusers/internal/format"
	"github.com/tatuanfpt/ghusers/internal/service"
)

// pane identifies the active view.
type pane int

const (
	paneList pane = iota
	paneDetail
)

// fetchAhead is how close the cursor may get to the bottom before the
// next page is requested.
const fetchAhead = 5

// Model is the Bubble Tea model for the browse UI. All list and
// detail state lives in the services; the model only tracks cursor,
// viewport, and which pane is showing.
type Model struct {
	ctx    context.Context
	list   *service.UserListService
	detail *service.UserDetailService

	search textinput.Model
	spin   spinner.Model

	pane          pane
	cursor        int
	offset        int
	searching     bool
	loadingDetail bool
	errMsg        string
	windowWidth   int
	windowHeight  int
	quitting      bool
}

// New creates the browse model over the given services.
func New(ctx context.Context, list *service.UserListService, detail *service.UserDetailService) Model {
	ti := textinput.New()
	ti.Placeholder = "filter by login"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		ctx:          ctx,
		list:         list,
		detail:       detail,
		search:       ti,
		spin:         sp,
		windowWidth:  80,
		windowHeight: 24,
	}
}

// Messages bridging service events and blocking calls into the
// program loop.
type (
	listEventMsg   struct{ event service.Event }
	detailEventMsg struct{ event service.Event }
	fetchDoneMsg   struct{}
	detailDoneMsg  struct{}
)

func waitForListEvent(ch <-chan service.Event) tea.Cmd {
	return func() tea.Msg {
		return listEventMsg{event: <-ch}
	}
}

func waitForDetailEvent(ch <-chan service.Event) tea.Cmd {
	return func() tea.Msg {
		return detailEventMsg{event: <-ch}
	}
}

// fetchMore runs the blocking page fetch off the program loop. The
// service's re-entrancy guard makes duplicate triggers harmless.
func (m Model) fetchMore() tea.Cmd {
	ctx, list := m.ctx, m.list
	return func() tea.Msg {
		list.FetchUsers(ctx)
		return fetchDoneMsg{}
	}
}

func (m Model) openDetail(login string) tea.Cmd {
	ctx, detail := m.ctx, m.detail
	return func() tea.Msg {
		detail.FetchUserDetail(ctx, login)
		return detailDoneMsg{}
	}
}

// Init implements tea.Model. The first page fetch is kicked off here;
// anything the store hydrated is already visible.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		waitForListEvent(m.list.Events()),
		waitForDetailEvent(m.detail.Events()),
		m.fetchMore(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.clampCursor()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case listEventMsg:
		switch ev := msg.event.(type) {
		case service.UpdatedEvent:
			m.errMsg = ""
			m.clampCursor()
		case service.ErrorEvent:
			m.errMsg = ev.Message()
		}
		return m, waitForListEvent(m.list.Events())

	case detailEventMsg:
		switch ev := msg.event.(type) {
		case service.UpdatedEvent:
			m.errMsg = ""
			m.loadingDetail = false
			m.pane = paneDetail
		case service.ErrorEvent:
			m.errMsg = ev.Message()
			m.loadingDetail = false
		}
		return m, waitForDetailEvent(m.detail.Events())

	case fetchDoneMsg, detailDoneMsg:
		return m, nil
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.updateSearchKeys(msg)
	}
	if m.pane == paneDetail {
		return m.updateDetailKeys(msg)
	}
	return m.updateListKeys(msg)
}

func (m Model) updateSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.list.SetSearchText("")
		m.clampCursor()
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.list.SetSearchText(m.search.Value())
	m.cursor = 0
	m.offset = 0
	return m, cmd
}

func (m Model) updateDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "esc", "backspace":
		m.pane = paneList
	}
	return m, nil
}

func (m Model) updateListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollIntoView()
		return m, nil

	case "down", "j":
		if m.cursor < m.list.Count()-1 {
			m.cursor++
		}
		m.scrollIntoView()
		return m, m.maybeFetchMore()

	case "g", "home":
		m.cursor = 0
		m.scrollIntoView()
		return m, nil

	case "G", "end":
		if n := m.list.Count(); n > 0 {
			m.cursor = n - 1
		}
		m.scrollIntoView()
		return m, m.maybeFetchMore()

	case "/":
		m.searching = true
		return m, m.search.Focus()

	case "r":
		return m, m.fetchMore()

	case "enter":
		if m.cursor < m.list.Count() {
			m.loadingDetail = true
			return m, m.openDetail(m.list.UserAt(m.cursor).Login)
		}
		return m, nil
	}

	return m, nil
}

// maybeFetchMore triggers the next page when the cursor is near the
// bottom of the unfiltered list.
func (m Model) maybeFetchMore() tea.Cmd {
	if m.list.IsFetching() {
		return nil
	}
	if m.cursor >= m.list.Count()-fetchAhead {
		return m.fetchMore()
	}
	return nil
}

// visibleRows is how many list rows fit under the chrome.
func (m Model) visibleRows() int {
	rows := m.windowHeight - 6
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) clampCursor() {
	n := m.list.Count()
	if n == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	m.scrollIntoView()
}

func (m *Model) scrollIntoView() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.pane == paneDetail {
		return m.detailView()
	}
	return m.listView()
}

func (m Model) listView() string {
	var b strings.Builder

	title := titleStyle.Render("GitHub Users")
	status := dimStyle.Render(fmt.Sprintf("%d loaded", m.list.Count()))
	if m.list.IsFetching() {
		status = m.spin.View() + dimStyle.Render("fetching...")
	} else if m.loadingDetail {
		status = m.spin.View() + dimStyle.Render("loading detail...")
	}
	b.WriteString(title + "  " + status + "\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View() + "\n")
	} else {
		b.WriteString("\n")
	}

	count := m.list.Count()
	if count == 0 {
		if m.list.IsFetching() {
			b.WriteString(dimStyle.Render("  loading users...") + "\n")
		} else {
			b.WriteString(dimStyle.Render("  no users") + "\n")
		}
	}

	loginWidth := m.windowWidth / 2
	if loginWidth > 40 {
		loginWidth = 40
	}
	end := m.offset + m.visibleRows()
	if end > count {
		end = count
	}
	for i := m.offset; i < end; i++ {
		u := m.list.UserAt(i)
		line := fmt.Sprintf(" %s %s",
			format.PadRight(format.Truncate(u.Login, loginWidth), loginWidth),
			dimStyle.Render(fmt.Sprintf("#%d", u.ID)))
		if i == m.cursor {
			b.WriteString(cursorRowStyle.Render("▸"+line) + "\n")
		} else {
			b.WriteString(rowStyle.Render(" "+line) + "\n")
		}
	}

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("error: "+m.errMsg) + "\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ move · enter detail · / filter · r fetch · q quit"))

	return b.String()
}

func (m Model) detailView() string {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(detailLabelStyle.Render(label) + rowStyle.Render(value) + "\n")
	}

	b.WriteString(titleStyle.Render(m.detail.Login()) + "\n\n")
	row("Location", m.detail.Location())
	row("Followers", fmt.Sprintf("%d", m.detail.Followers()))
	row("Following", fmt.Sprintf("%d", m.detail.Following()))
	row("Profile", m.detail.HTMLURL())
	row("Avatar", m.detail.AvatarURL())

	out := detailBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
	if m.errMsg != "" {
		out += "\n" + errorStyle.Render("error: "+m.errMsg)
	}
	out += "\n" + helpStyle.Render("esc back · q quit")
	return out
}
