// Package ui holds the navigation menu and theme.
package ui

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	}
	return "", false
}

type State struct {
	MenuOpen bool
	Theme    Theme
}

// Initial is the state before hydration.
func Initial() State {
	return State{Theme: ThemeLight}
}

// Action is implemented by every ui action.
type Action interface {
	Type() string
	uiAction()
}

type (
	OpenMenu    struct{}
	CloseMenu   struct{}
	ToggleTheme struct{}
	SetTheme    struct{ Theme Theme }
)

func (OpenMenu) Type() string    { return "ui/openMenu" }
func (CloseMenu) Type() string   { return "ui/closeMenu" }
func (ToggleTheme) Type() string { return "ui/toggleTheme" }
func (SetTheme) Type() string    { return "ui/setTheme" }

func (OpenMenu) uiAction()    {}
func (CloseMenu) uiAction()   {}
func (ToggleTheme) uiAction() {}
func (SetTheme) uiAction()    {}

func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case OpenMenu:
		s.MenuOpen = true
	case CloseMenu:
		s.MenuOpen = false
	case ToggleTheme:
		if s.Theme == ThemeDark {
			s.Theme = ThemeLight
		} else {
			s.Theme = ThemeDark
		}
	case SetTheme:
		if _, ok := ParseTheme(string(a.Theme)); ok {
			s.Theme = a.Theme
		}
	}
	return s
}
