package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMenu(t *testing.T) {
	s := Reduce(Initial(), OpenMenu{})
	assert.True(t, s.MenuOpen)
	s = Reduce(s, CloseMenu{})
	assert.False(t, s.MenuOpen)
}

func TestTheme(t *testing.T) {
	s := Initial()
	assert.Equal(t, ThemeLight, s.Theme)

	s = Reduce(s, ToggleTheme{})
	assert.Equal(t, ThemeDark, s.Theme)
	s = Reduce(s, ToggleTheme{})
	assert.Equal(t, ThemeLight, s.Theme)

	s = Reduce(s, SetTheme{Theme: ThemeDark})
	assert.Equal(t, ThemeDark, s.Theme)
	s = Reduce(s, SetTheme{Theme: "sepia"})
	assert.Equal(t, ThemeDark, s.Theme)
}

func TestParseTheme(t *testing.T) {
	th, ok := ParseTheme("dark")
	assert.True(t, ok)
	assert.Equal(t, ThemeDark, th)
	_, ok = ParseTheme("Dark")
	assert.False(t, ok)
}
