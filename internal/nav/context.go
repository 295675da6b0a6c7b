// Package nav tracks which list pane has focus and where the cursor sits in
// it. A Context is a plain value: every operation returns a new Context and
// never touches the store, so the TUI can compute a transition, apply the
// matching store mutation, and then commit the new Context.
package nav

import "fmt"

// HeaderOffset is the number of screen rows above the first list row
// (column header and divider).
const HeaderOffset = 2

// firstRow is the 1-based screen row of index 0.
const firstRow = HeaderOffset + 1

// Pane identifies the list a Context navigates.
type Pane int

const (
	ProjectPane Pane = iota
	TaskPane
)

func (p Pane) String() string {
	switch p {
	case ProjectPane:
		return "projects"
	case TaskPane:
		return "tasks"
	default:
		return fmt.Sprintf("Pane(%d)", int(p))
	}
}

// Context is the cursor position within one pane. row is the 1-based screen
// row including the header rows; length mirrors the size of the underlying
// collection.
type Context struct {
	pane   Pane
	row    int
	length int
}

// NewProjectContext places the cursor on the first project row.
func NewProjectContext(length int) Context {
	return Context{pane: ProjectPane, row: firstRow, length: max(length, 0)}
}

// NewTaskContext places the cursor on the first task row.
func NewTaskContext(length int) Context {
	return Context{pane: TaskPane, row: firstRow, length: max(length, 0)}
}

func (c Context) Pane() Pane  { return c.pane }
func (c Context) Row() int    { return c.row }
func (c Context) Len() int    { return c.length }
func (c Context) Empty() bool { return c.length == 0 }

// Index maps the cursor row to a 0-based collection index.
func (c Context) Index() int {
	return c.row - HeaderOffset - 1
}

// Move advances the cursor by delta rows. A move that would leave
// [0, Len()) returns c unchanged.
func (c Context) Move(delta int) Context {
	next := c.Index() + delta
	if next < 0 || next >= c.length {
		return c
	}
	c.row += delta
	return c
}

// Moved reports whether Move(delta) would change the cursor.
func (c Context) Moved(delta int) (Context, bool) {
	next := c.Move(delta)
	return next, next != c
}

// JumpToIndex moves the cursor to index i, if it is in range.
func (c Context) JumpToIndex(i int) Context {
	return c.Move(i - c.Index())
}

// JumpToStart moves the cursor to the first row.
func (c Context) JumpToStart() Context {
	return c.JumpToIndex(0)
}

// JumpToEnd moves the cursor to the last row.
func (c Context) JumpToEnd() Context {
	return c.JumpToIndex(c.length - 1)
}

// Shrink accounts for deleting the row under the cursor: the pane loses one
// row and the cursor moves to the row above, or stays on the first row.
// It reports false when the pane is already empty.
func (c Context) Shrink() (Context, bool) {
	if c.length == 0 {
		return c, false
	}
	c.length--
	if c.row > firstRow {
		c.row--
	}
	return c, true
}

// Grow accounts for an inserted row without moving the cursor. Callers
// follow it with JumpToIndex to the inserted entity's position.
func (c Context) Grow() Context {
	c.length++
	return c
}

// Resize sets the pane length and pulls the cursor back into range.
func (c Context) Resize(length int) Context {
	c.length = max(length, 0)
	switch {
	case c.length == 0 || c.row < firstRow:
		c.row = firstRow
	case c.Index() >= c.length:
		c.row = firstRow + c.length - 1
	}
	return c
}

func (c Context) String() string {
	return fmt.Sprintf("%s(row=%d, len=%d)", c.pane, c.row, c.length)
}
