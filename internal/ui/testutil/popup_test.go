package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/storefront/internal/ui/popup"
)

type mockPopup struct {
	content       string
	width, height int
	keys          []string
}

var _ popup.Popup = (*mockPopup)(nil)

func (m *mockPopup) Init() tea.Cmd {
	return func() tea.Msg { return "init" }
}

func (m *mockPopup) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		m.keys = append(m.keys, key.String())
		if key.Type == tea.KeyEnter {
			return m, func() tea.Msg { return "enter-pressed" }
		}
	}
	return m, nil
}

func (m *mockPopup) View() string { return m.content }

func (m *mockPopup) SetSize(width, height int) { m.width, m.height = width, height }

func TestPopupHarness_Init(t *testing.T) {
	mock := &mockPopup{content: "test"}
	h := NewPopupHarness(mock)

	assert.Same(t, mock, h.Popup())
	require.Len(t, h.Commands(), 1)
	assert.Equal(t, "init", ExecuteCmd(h.LastCommand()))
}

func TestPopupHarness_SetSizeAndView(t *testing.T) {
	mock := &mockPopup{content: "Hello World"}
	h := NewPopupHarness(mock)
	h.SetSize(80, 24)

	assert.Equal(t, 80, mock.width)
	assert.Equal(t, 24, mock.height)
	assert.Equal(t, "Hello World", h.View())
	assert.True(t, h.ViewContains("Hello"))
	assert.False(t, h.ViewContains("Goodbye"))
	assert.Empty(t, h.AssertViewContains("World"))
	assert.NotEmpty(t, h.AssertViewContains("Missing"))
}

func TestPopupHarness_Keys(t *testing.T) {
	mock := &mockPopup{}
	h := NewPopupHarness(mock)
	h.ClearCommands()

	h.SendKeys("a", "enter")
	h.SendEscape()
	h.SendUp()
	h.SendDown()

	assert.Equal(t, []string{"a", "enter", "esc", "up", "down"}, mock.keys)
	require.Len(t, h.Commands(), 1, "only enter returns a command")
	assert.Equal(t, "enter-pressed", ExecuteCmd(h.LastCommand()))

	h.ClearCommands()
	assert.Nil(t, h.LastCommand())
	assert.Nil(t, ExecuteCmd(nil))
}
