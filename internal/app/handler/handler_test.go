package handler

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResults(t *testing.T) {
	assert.False(t, NotHandled.Handled)
	assert.Nil(t, NotHandled.Cmd)

	r := Handled(nil)
	assert.True(t, r.Handled)
	assert.Nil(t, r.Cmd)
}

func TestChain(t *testing.T) {
	var calls []string
	record := func(name string, r Result) Handler {
		return func(key string) Result {
			calls = append(calls, name+":"+key)
			return r
		}
	}
	cmd := func() tea.Msg { return "second" }

	handled, got := Chain("x",
		record("first", NotHandled),
		record("second", Handled(cmd)),
		record("third", Handled(nil)),
	)

	assert.True(t, handled)
	require.NotNil(t, got)
	assert.Equal(t, "second", got())
	assert.Equal(t, []string{"first:x", "second:x"}, calls, "stops at the first handler")
}

func TestChain_NoneHandles(t *testing.T) {
	handled, cmd := Chain("x", func(string) Result { return NotHandled })
	assert.False(t, handled)
	assert.Nil(t, cmd)

	handled, _ = Chain("x")
	assert.False(t, handled)
}
