// Package list provides a generic scrollable selection list. The parent
// renders the rows from VisibleRange and reacts to the returned Result.
package list

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/storefront/internal/ui"
	"github.com/llehouerou/storefront/internal/ui/cursor"
)

// Action is what an input did to the list.
type Action int

const (
	ActionNone  Action = iota
	ActionMoved        // cursor moved
	ActionEnter        // enter, or a click on the selected row
)

// Result tells the parent what happened.
type Result struct {
	Action Action
	Index  int // item the action applies to, -1 for none
}

var none = Result{Index: -1}

// Model is a list of items with a cursor. Its height is the number of rows.
type Model[T any] struct {
	ui.Base
	items  []T
	cursor cursor.Cursor
}

// New creates an empty list keeping margin rows visible around the cursor.
func New[T any](margin int) Model[T] {
	return Model[T]{cursor: cursor.New(margin)}
}

// SetItems replaces the items and clamps the cursor.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.cursor.ClampToBounds(len(items))
	m.cursor.EnsureVisible(len(items), m.Height())
}

// Items returns the items.
func (m Model[T]) Items() []T {
	return m.items
}

// Len returns the number of items.
func (m Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the item under the cursor.
func (m Model[T]) Selected() (T, bool) {
	if m.cursor.Pos() >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.cursor.Pos()], true
}

// SelectedIndex returns the cursor position.
func (m Model[T]) SelectedIndex() int {
	return m.cursor.Pos()
}

// Select moves the cursor to index i.
func (m *Model[T]) Select(i int) {
	m.cursor.Jump(i, len(m.items), m.Height())
}

// SetSize sets the width and the number of rows.
func (m *Model[T]) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.cursor.EnsureVisible(len(m.items), height)
}

// VisibleRange returns the [start, end) items to render.
func (m Model[T]) VisibleRange() (start, end int) {
	return m.cursor.VisibleRange(len(m.items), m.Height())
}

// Update applies navigation keys and enter while focused.
func (m *Model[T]) Update(msg tea.Msg) Result {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() {
		return none
	}
	return m.HandleKey(key.String())
}

// HandleKey applies a navigation key or enter.
func (m *Model[T]) HandleKey(key string) Result {
	if key == "enter" {
		if len(m.items) == 0 {
			return none
		}
		return Result{Action: ActionEnter, Index: m.cursor.Pos()}
	}
	before := m.cursor.Pos()
	if !m.cursor.HandleKey(key, len(m.items), m.Height()) || m.cursor.Pos() == before {
		return none
	}
	return Result{Action: ActionMoved, Index: m.cursor.Pos()}
}

// HandleClick applies a left click on visible row y. Clicking the selected
// row activates it.
func (m *Model[T]) HandleClick(y int) Result {
	start, end := m.VisibleRange()
	i := start + y
	if y < 0 || i >= end {
		return none
	}
	if i == m.cursor.Pos() {
		return Result{Action: ActionEnter, Index: i}
	}
	m.cursor.Jump(i, len(m.items), m.Height())
	return Result{Action: ActionMoved, Index: i}
}

// HandleWheel moves the cursor by delta rows.
func (m *Model[T]) HandleWheel(delta int) {
	m.cursor.Move(delta, len(m.items), m.Height())
}
