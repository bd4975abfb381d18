// Package formatter renders blog entities and queued notifications for the
// terminal.
package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/zfogg/blogfront/pkg/model"
	"github.com/zfogg/blogfront/pkg/output"
	"github.com/zfogg/blogfront/pkg/store"
	"github.com/zfogg/blogfront/pkg/store/notify"
)

var (
	Bold    = color.New(color.Bold)
	Success = color.New(color.FgGreen)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Warning = color.New(color.FgYellow)
	Faint   = color.New(color.Faint)
)

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	output.PrintSuccess(format, args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	output.PrintError(format, args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	output.PrintInfo(format, args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	output.PrintWarning(format, args...)
}

func kindStyle(k notify.Kind) (*color.Color, string) {
	switch k {
	case notify.KindSuccess:
		return Success, "✓"
	case notify.KindError:
		return Error, "✗"
	case notify.KindWarning:
		return Warning, "!"
	default:
		return Info, "i"
	}
}

// FormatToast renders one notification as a single line.
func FormatToast(n notify.Notification) string {
	c, icon := kindStyle(n.Kind)
	line := c.Sprintf("%s %s", icon, n.Title)
	if n.Message != "" {
		line += ": " + n.Message
	}
	return line
}

// PrintToasts prints notifications oldest first.
func PrintToasts(list []notify.Notification) {
	w := output.Writer()
	for _, n := range list {
		fmt.Fprintln(w, FormatToast(n))
	}
}

// PostColumns are the headers of PostRows.
var PostColumns = []string{"ID", "TITLE", "LESSON", "DATE", "LIKES", "DISLIKES", "FAV"}

// PostRows renders views as table rows.
func PostRows(views []store.PostView) [][]string {
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		fav := ""
		if v.Favorite {
			fav = "★"
		}
		rows = append(rows, []string{
			strconv.Itoa(v.ID),
			truncate(v.Title, 48),
			strconv.Itoa(v.LessonNum),
			v.DisplayDate(),
			reaction(v.Reactions.Likes, v.Reactions.Liked),
			reaction(v.Reactions.Dislikes, v.Reactions.Disliked),
			fav,
		})
	}
	return rows
}

func reaction(n int, mine bool) string {
	s := strconv.Itoa(n)
	if mine {
		s += "*"
	}
	return s
}

// PrintPosts prints a listing in the configured format.
func PrintPosts(title string, views []store.PostView) error {
	return output.PrintList(title, views, PostColumns, PostRows(views))
}

// PrintPost prints one post in full.
func PrintPost(v store.PostView) error {
	if output.GetOutputFormat() == output.FormatJSON {
		return output.Print("", v)
	}

	w := output.Writer()
	Bold.Fprintln(w, v.Title)
	Faint.Fprintf(w, "#%d · lesson %d · %s · author %d\n", v.ID, v.LessonNum, v.DisplayDate(), v.Author)
	if v.HasImage() {
		Faint.Fprintln(w, v.Image)
	}
	if v.Description != "" {
		fmt.Fprintf(w, "\n%s\n", v.Description)
	}
	if v.Text != "" {
		fmt.Fprintf(w, "\n%s\n", v.Text)
	}
	fmt.Fprintf(w, "\n👍 %s  👎 %s", reaction(v.Reactions.Likes, v.Reactions.Liked), reaction(v.Reactions.Dislikes, v.Reactions.Disliked))
	if v.Favorite {
		Warning.Fprint(w, "  ★ favorite")
	}
	fmt.Fprintln(w)
	return nil
}

// PrintUser prints the signed-in profile.
func PrintUser(u model.User) error {
	return output.PrintRecord(u.DisplayName(), map[string]interface{}{
		"id":         u.ID,
		"email":      u.Email,
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	})
}

// PageFooter describes where a listing page sits, e.g. "Page 2 of 3 (30 posts)".
func PageFooter(page, total, count int) string {
	if total == 0 {
		return "No posts"
	}
	return fmt.Sprintf("Page %d of %d (%d posts)", page, total, count)
}

func truncate(s string, max int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max-1]) + "…"
}
