package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zfogg/blogfront/pkg/store"
	"github.com/zfogg/blogfront/pkg/store/notify"
	"github.com/zfogg/blogfront/pkg/store/preview"
)

var helpLines = [][2]string{
	{"j/k", "move"},
	{"enter", "open post"},
	{"esc", "back"},
	{"n/p", "next/previous page"},
	{"r", "reload"},
	{"l/d", "like/dislike"},
	{"f", "toggle favorite"},
	{"i", "preview image"},
	{"/", "search"},
	{"F", "favorites"},
	{"L", "listing"},
	{"t", "toggle theme"},
	{"m", "menu"},
	{"q", "quit"},
}

// View renders the current screen.
func (m *Model) View() string {
	s := m.state()
	st := stylesFor(s.UI.Theme)

	var body string
	switch {
	case m.showHelp:
		body = m.renderHelp(st)
	case s.Preview.Open:
		body = m.renderPreview(st, s.Preview)
	case s.UI.MenuOpen:
		body = m.renderMenu(st, s)
	case m.screen == ScreenDetail:
		body = m.renderDetail(st, s)
	case m.screen == ScreenSearch:
		body = m.renderSearch(st, s)
	case m.screen == ScreenFavorites:
		body = m.renderList(st, "Favorites", m.rows(), "No favorites yet. Press f on a post to add it.")
	default:
		body = m.renderListing(st, s)
	}

	parts := []string{m.renderHeader(st, s), body}
	if toasts := m.renderToasts(st, s); toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, st.muted.Render("? help • q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderHeader(st styles, s store.State) string {
	who := "not signed in"
	if s.Auth.User != nil {
		who = s.Auth.User.DisplayName()
	} else if s.Auth.IsAuthenticated {
		who = "signed in"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		st.title.Render("blogfront"),
		st.muted.Render("  "+who),
	)
}

func (m *Model) renderListing(st styles, s store.State) string {
	p := s.Posts
	var b strings.Builder
	switch {
	case p.Loading && len(p.Items) == 0:
		b.WriteString(st.muted.Render("Loading posts..."))
	case p.Error != "":
		b.WriteString(st.toasts[notify.KindError].Render(p.Error))
		b.WriteString("\n")
		b.WriteString(st.muted.Render("press r to retry"))
	default:
		b.WriteString(m.renderList(st, "Posts", m.rows(), "No posts yet."))
	}

	if p.TotalPages > 0 {
		nav := fmt.Sprintf("page %d of %d • %d posts", p.CurrentPage, p.TotalPages, p.Count)
		if p.Loading {
			nav += " • loading"
		}
		b.WriteString("\n")
		b.WriteString(st.muted.Render(nav))
	}
	return b.String()
}

func (m *Model) renderList(st styles, title string, rows []store.PostView, empty string) string {
	var b strings.Builder
	b.WriteString(st.title.Render(title))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(st.muted.Render(empty))
		return b.String()
	}

	for i, v := range rows {
		line := m.renderRow(v)
		if i == m.cursor {
			b.WriteString(st.selected.Render("> " + line))
		} else {
			b.WriteString(st.text.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderRow(v store.PostView) string {
	star := " "
	if v.Favorite {
		star = "★"
	}
	img := " "
	if v.HasImage() {
		img = "▣"
	}
	like := fmt.Sprintf("▲%d", v.Reactions.Likes)
	if v.Reactions.Liked {
		like += "*"
	}
	dislike := fmt.Sprintf("▼%d", v.Reactions.Dislikes)
	if v.Reactions.Disliked {
		dislike += "*"
	}
	return fmt.Sprintf("%s %s %-40s %-5s %-5s %s", star, img, clip(v.Title, 40), like, dislike, v.DisplayDate())
}

func (m *Model) renderDetail(st styles, s store.State) string {
	p := s.Posts
	switch {
	case p.CurrentLoading && p.Current == nil:
		return st.muted.Render("Loading post...")
	case p.CurrentError != "":
		return st.toasts[notify.KindError].Render(p.CurrentError)
	case p.Current == nil:
		return st.muted.Render("Post not found")
	}

	v := store.ViewOf(s, *p.Current)
	var b strings.Builder
	b.WriteString(st.title.Render(v.Title))
	b.WriteString("\n")
	meta := fmt.Sprintf("Lesson %d • %s • ▲%d ▼%d", v.LessonNum, v.DisplayDate(), v.Reactions.Likes, v.Reactions.Dislikes)
	if v.Favorite {
		meta += " • ★"
	}
	b.WriteString(st.muted.Render(meta))
	if v.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(st.accent.Render(v.Description))
	}
	b.WriteString("\n\n")
	text := st.text
	if m.width > 4 {
		text = text.Width(m.width - 4)
	}
	b.WriteString(text.Render(v.Text))
	if v.HasImage() {
		b.WriteString("\n\n")
		b.WriteString(st.muted.Render("image: " + v.Image + " (press i)"))
	}
	return st.box.Render(b.String())
}

func (m *Model) renderSearch(st styles, s store.State) string {
	q := s.Search
	var b strings.Builder
	b.WriteString(st.title.Render("Search"))
	b.WriteString("\n")
	b.WriteString(st.box.Render(q.Query + "█"))
	b.WriteString("\n")

	switch {
	case q.Loading:
		b.WriteString(st.muted.Render("Searching..."))
	case q.Error != "":
		b.WriteString(st.toasts[notify.KindError].Render(q.Error))
	case q.Executed != "" && len(q.Results) == 0:
		b.WriteString(st.muted.Render(fmt.Sprintf("No results for %q", q.Executed)))
	case len(q.Results) > 0:
		b.WriteString(m.renderList(st, fmt.Sprintf("Results for %q", q.Executed), m.rows(), ""))
	case len(q.History) > 0:
		b.WriteString(st.muted.Render("Recent: " + strings.Join(q.History, ", ")))
	}
	b.WriteString("\n")
	b.WriteString(st.muted.Render("enter search • tab recent • ctrl+o open • esc back"))
	return b.String()
}

func (m *Model) renderPreview(st styles, p preview.State) string {
	src := preview.CurrentImage(p)
	lines := []string{
		st.title.Render("Image"),
		st.text.Render(src),
		st.muted.Render(fmt.Sprintf("%d / %d", p.Index+1, len(p.Images))),
	}
	if p.Href != "" {
		lines = append(lines, st.muted.Render("post: "+p.Href))
	}
	lines = append(lines, st.muted.Render("←/→ cycle • c copy link • esc close"))
	return st.box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderMenu(st styles, s store.State) string {
	lines := []string{
		st.title.Render("Menu"),
		fmt.Sprintf("%s theme (%s)", st.helpKey.Render("t"), s.UI.Theme),
		fmt.Sprintf("%s favorites (%d)", st.helpKey.Render("F"), len(s.Favorites.IDs)),
	}
	if s.Auth.IsAuthenticated {
		lines = append(lines, fmt.Sprintf("%s sign out", st.helpKey.Render("x")))
	}
	lines = append(lines, st.muted.Render("esc close"))
	return st.box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderHelp(st styles) string {
	lines := []string{st.title.Render("Keys")}
	for _, h := range helpLines {
		lines = append(lines, fmt.Sprintf("%-8s %s", st.helpKey.Render(h[0]), h[1]))
	}
	return st.box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) renderToasts(st styles, s store.State) string {
	list := s.Notify.Notifications
	if len(list) == 0 {
		return ""
	}
	out := make([]string, 0, len(list))
	for _, n := range list {
		text := n.Title
		if n.Message != "" {
			text += ": " + n.Message
		}
		style, ok := st.toasts[n.Kind]
		if !ok {
			style = st.box
		}
		out = append(out, style.Render(text))
	}
	return lipgloss.JoinVertical(lipgloss.Right, out...)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
