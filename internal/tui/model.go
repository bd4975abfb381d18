// Package tui is the interactive post browser.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zfogg/blogfront/pkg/async"
	"github.com/zfogg/blogfront/pkg/model"
	"github.com/zfogg/blogfront/pkg/service"
	"github.com/zfogg/blogfront/pkg/store"
	"github.com/zfogg/blogfront/pkg/store/favorites"
	"github.com/zfogg/blogfront/pkg/store/likes"
	"github.com/zfogg/blogfront/pkg/store/notify"
	"github.com/zfogg/blogfront/pkg/store/preview"
	"github.com/zfogg/blogfront/pkg/store/ui"
)

// Screen is the active page of the browser.
type Screen int

const (
	ScreenList Screen = iota
	ScreenDetail
	ScreenSearch
	ScreenFavorites
)

// PostLoader fetches listing pages and single posts.
type PostLoader interface {
	FetchPage(ctx context.Context, page, group int) *async.Task[service.Page]
	FetchByID(ctx context.Context, id int) *async.Task[model.Post]
}

// Searcher runs searches.
type Searcher interface {
	SetQuery(text string)
	Submit(ctx context.Context, query string) *async.Task[[]model.Post]
}

// Sessions signs the user out.
type Sessions interface {
	Logout(showNotification bool)
}

// Deps are the collaborators the browser drives.
type Deps struct {
	Store    *store.Store
	Posts    PostLoader
	Search   Searcher
	Sessions Sessions
	// Copy writes to the system clipboard; defaults to clipboard.WriteAll.
	Copy func(string) error
}

// settledMsg reports a finished background task.
type settledMsg struct{ err error }

// expireMsg removes a toast whose time is up.
type expireMsg struct{ id string }

// Model is the bubbletea model of the browser.
type Model struct {
	deps Deps
	ctx  context.Context

	width  int
	height int

	screen   Screen
	back     Screen
	cursor   int
	showHelp bool

	scheduled map[string]bool
	tick      func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

// New creates the browser. ctx bounds every request it issues.
func New(ctx context.Context, deps Deps) *Model {
	if deps.Copy == nil {
		deps.Copy = clipboard.WriteAll
	}
	return &Model{
		deps:      deps,
		ctx:       ctx,
		scheduled: make(map[string]bool),
		tick:      tea.Tick,
	}
}

// Run starts the browser full screen and blocks until it quits.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(New(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) state() store.State {
	return m.deps.Store.State()
}

func await[T any](t *async.Task[T]) tea.Cmd {
	return func() tea.Msg {
		_, err := t.Wait()
		return settledMsg{err: err}
	}
}

// Init loads the first page.
func (m *Model) Init() tea.Cmd {
	return m.loadPage(1)
}

func (m *Model) loadPage(page int) tea.Cmd {
	return await(m.deps.Posts.FetchPage(m.ctx, page, 0))
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case settledMsg:
		m.clampCursor()
	case expireMsg:
		delete(m.scheduled, msg.id)
		m.deps.Store.Dispatch(notify.Remove{ID: msg.id})
	}

	return m, tea.Batch(cmd, m.scheduleToasts())
}

// scheduleToasts starts one tick per newly queued notification.
func (m *Model) scheduleToasts() tea.Cmd {
	var cmds []tea.Cmd
	for _, n := range m.state().Notify.Notifications {
		if n.Duration <= 0 || m.scheduled[n.ID] {
			continue
		}
		m.scheduled[n.ID] = true
		id := n.ID
		cmds = append(cmds, m.tick(n.Duration, func(time.Time) tea.Msg {
			return expireMsg{id: id}
		}))
	}
	return tea.Batch(cmds...)
}

// rows are the posts on the current screen.
func (m *Model) rows() []store.PostView {
	s := m.state()
	switch m.screen {
	case ScreenSearch:
		return viewsOf(s, s.Search.Results)
	case ScreenFavorites:
		return viewsOf(s, store.FavoritePosts(s))
	default:
		return store.Views(s)
	}
}

func viewsOf(s store.State, list []model.Post) []store.PostView {
	out := make([]store.PostView, 0, len(list))
	for _, p := range list {
		out = append(out, store.ViewOf(s, p))
	}
	return out
}

func (m *Model) selected() (store.PostView, bool) {
	if m.screen == ScreenDetail {
		if cur := m.state().Posts.Current; cur != nil {
			return store.ViewOf(m.state(), *cur), true
		}
		return store.PostView{}, false
	}
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return store.PostView{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := len(m.rows()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	s := m.state()
	switch {
	case m.showHelp:
		if msg.Type == tea.KeyEsc || msg.String() == "?" {
			m.showHelp = false
		}
		return nil
	case s.Preview.Open:
		return m.handlePreviewKey(msg)
	case s.UI.MenuOpen:
		return m.handleMenuKey(msg)
	case m.screen == ScreenSearch:
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "?":
		m.showHelp = true
	case "up", "k":
		m.cursor--
		m.clampCursor()
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "enter":
		if v, ok := m.selected(); ok && m.screen != ScreenDetail {
			m.back = m.screen
			m.screen = ScreenDetail
			return await(m.deps.Posts.FetchByID(m.ctx, v.ID))
		}
	case "esc", "backspace":
		if m.screen != ScreenList {
			m.screen = m.back
			m.back = ScreenList
			m.clampCursor()
		}
	case "n", "right":
		if m.screen == ScreenList && s.Posts.HasNextPage && !s.Posts.Loading {
			m.cursor = 0
			return m.loadPage(s.Posts.CurrentPage + 1)
		}
	case "p", "left":
		if m.screen == ScreenList && s.Posts.HasPrevPage && !s.Posts.Loading {
			m.cursor = 0
			return m.loadPage(s.Posts.CurrentPage - 1)
		}
	case "r":
		if m.screen == ScreenList {
			page := s.Posts.CurrentPage
			if page < 1 {
				page = 1
			}
			return m.loadPage(page)
		}
	case "l":
		if v, ok := m.selected(); ok {
			m.deps.Store.Dispatch(likes.ToggleLike{PostID: v.ID})
		}
	case "d":
		if v, ok := m.selected(); ok {
			m.deps.Store.Dispatch(likes.ToggleDislike{PostID: v.ID})
		}
	case "f":
		if v, ok := m.selected(); ok {
			m.deps.Store.Dispatch(favorites.Toggle{ID: v.ID})
			m.clampCursor()
		}
	case "i", "o":
		m.openPreview()
	case "/":
		m.back = m.screen
		m.screen = ScreenSearch
		m.cursor = 0
	case "F":
		m.back = ScreenList
		m.screen = ScreenFavorites
		m.cursor = 0
	case "L":
		m.back = ScreenList
		m.screen = ScreenList
		m.cursor = 0
	case "t":
		m.deps.Store.Dispatch(ui.ToggleTheme{})
	case "m":
		m.deps.Store.Dispatch(ui.OpenMenu{})
	}
	return nil
}

// openPreview shows the selected post's image. On a listing screen the
// viewer cycles through every image on the screen.
func (m *Model) openPreview() {
	v, ok := m.selected()
	if !ok || !v.HasImage() {
		return
	}
	href := fmt.Sprintf("/posts/%d", v.ID)
	if m.screen == ScreenDetail {
		m.deps.Store.Dispatch(preview.OpenSingle{Src: v.Image, Href: href})
		return
	}

	var images []string
	index := 0
	for _, r := range m.rows() {
		if !r.HasImage() {
			continue
		}
		if r.ID == v.ID {
			index = len(images)
		}
		images = append(images, r.Image)
	}
	m.deps.Store.Dispatch(preview.OpenImages{Images: images, Index: index, Href: href})
}

func (m *Model) handlePreviewKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "i", "o":
		m.deps.Store.Dispatch(preview.Close{})
	case "right", "l", "n":
		m.deps.Store.Dispatch(preview.Next{})
	case "left", "h", "p":
		m.deps.Store.Dispatch(preview.Prev{})
	case "c", "y":
		src := preview.CurrentImage(m.state().Preview)
		if src == "" {
			return nil
		}
		if err := m.deps.Copy(src); err != nil {
			m.deps.Store.Dispatch(notify.Failure("Copy failed", err.Error()))
		} else {
			m.deps.Store.Dispatch(notify.Success("Copied", src))
		}
	}
	return nil
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "m", "q":
		m.deps.Store.Dispatch(ui.CloseMenu{})
	case "t":
		m.deps.Store.Dispatch(ui.ToggleTheme{})
	case "F":
		m.deps.Store.Dispatch(ui.CloseMenu{})
		m.back = ScreenList
		m.screen = ScreenFavorites
		m.cursor = 0
	case "x":
		m.deps.Store.Dispatch(ui.CloseMenu{})
		if m.deps.Sessions != nil && m.state().Auth.IsAuthenticated {
			m.deps.Sessions.Logout(true)
		}
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	query := m.state().Search.Query
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = m.back
		m.back = ScreenList
		m.clampCursor()
		return nil
	case tea.KeyEnter:
		m.cursor = 0
		return await(m.deps.Search.Submit(m.ctx, query))
	case tea.KeyBackspace:
		if r := []rune(query); len(r) > 0 {
			m.deps.Search.SetQuery(string(r[:len(r)-1]))
		}
		return nil
	case tea.KeyUp:
		m.cursor--
		m.clampCursor()
		return nil
	case tea.KeyDown:
		m.cursor++
		m.clampCursor()
		return nil
	case tea.KeyTab:
		// Cycle the input through recent queries.
		history := m.state().Search.History
		if len(history) == 0 {
			return nil
		}
		next := history[0]
		for i, q := range history {
			if q == query {
				next = history[(i+1)%len(history)]
				break
			}
		}
		m.deps.Search.SetQuery(next)
		return nil
	case tea.KeyCtrlO:
		if v, ok := m.selected(); ok {
			m.back = ScreenSearch
			m.screen = ScreenDetail
			return await(m.deps.Posts.FetchByID(m.ctx, v.ID))
		}
		return nil
	case tea.KeyRunes, tea.KeySpace:
		m.deps.Search.SetQuery(query + string(msg.Runes))
	}
	return nil
}

// Screen returns the active screen.
func (m *Model) Screen() Screen {
	return m.screen
}

// Cursor returns the highlighted row.
func (m *Model) Cursor() int {
	return m.cursor
}
