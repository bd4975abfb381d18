package prompter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTest(input string) (*Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(strings.NewReader(input), out, -1), out
}

func TestString(t *testing.T) {
	p, out := newTest("  ann@example.com \n")
	got, err := p.String("Email: ")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", got)
	assert.Equal(t, "Email: ", out.String())
}

func TestPasswordWithoutTerminal(t *testing.T) {
	p, _ := newTest(" secret pass\r\n")
	got, err := p.Password("Password: ")
	require.NoError(t, err)
	assert.Equal(t, " secret pass", got)
}

func TestConfirm(t *testing.T) {
	tests := map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "maybe": false}
	for input, want := range tests {
		p, _ := newTest(input)
		got, err := p.Confirm("Delete?")
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestSelect(t *testing.T) {
	p, out := newTest("2\n")
	idx, err := p.Select("Theme", []string{"light", "dark"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), "2) dark")

	p, _ = newTest("3\n")
	_, err = p.Select("Theme", []string{"light", "dark"})
	assert.Error(t, err)
}

func TestMultiline(t *testing.T) {
	p, _ := newTest("first\nsecond\n\nignored\n")
	got, err := p.Multiline("Text", 10)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", got)

	p, _ = newTest("only")
	got, err = p.Multiline("Text", 10)
	require.NoError(t, err)
	assert.Equal(t, "only", got)
}

func TestReadLineEOF(t *testing.T) {
	p, _ := newTest("")
	_, err := p.String("x")
	assert.Error(t, err)
}
