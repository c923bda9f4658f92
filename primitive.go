package tview

import "github.com/gdamore/tcell/v3"

// Primitive is implemented by everything that can be placed on the screen.
//
// Handlers never act on the application directly. They change their own
// state and return a Command, which the event loop executes afterwards.
type Primitive interface {
	// Draw draws the primitive into its rectangle. Only a focused primitive
	// may show the cursor.
	Draw(screen tcell.Screen)

	// GetRect returns the rectangle as x, y, width, height.
	GetRect() (int, int, int, int)
	// SetRect moves and resizes the primitive. Containers call it before
	// drawing their children.
	SetRect(x, y, width, height int)

	// InputHandler handles a key event while the primitive has focus.
	InputHandler(event *tcell.EventKey) Command
	// MouseHandler handles a mouse action. A non-nil capture receives all
	// following mouse actions until it returns nil itself.
	MouseHandler(action MouseAction, event *tcell.EventMouse) (capture Primitive, cmd Command)
	// PasteHandler handles pasted text while the primitive has focus.
	PasteHandler(text string) Command

	// HasFocus reports whether the primitive or one of its children has
	// focus.
	HasFocus() bool
	// Focus gives the primitive the focus. Containers pass it on to a child
	// by calling delegate.
	Focus(delegate func(p Primitive))
	// Blur takes the focus away.
	Blur()

	// IsDirty reports whether the primitive changed since the last
	// MarkClean. Containers include their children.
	IsDirty() bool
	// MarkClean is called after every draw.
	MarkClean()
}
