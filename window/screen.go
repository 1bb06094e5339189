// Copyright © 2025 Quillscroll contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: window/screen.go
// Summary: The live-screen collaborator contract the viewport projects over.

package window

import "github.com/quillscroll/quillscroll/scroll"

// DecodingOptions controls how selected text is flattened to a string.
type DecodingOptions int

// PlainText requests unadorned text with no options set.
const PlainText DecodingOptions = 0

const (
	PreserveLineBreaks DecodingOptions = 1 << iota
	TrimLeadingWhitespace
	TrimTrailingWhitespace
)

// LineProperty carries per-line annotations reported by the screen.
type LineProperty struct {
	// PromptStart marks the line as the start of a shell prompt. Prompt-wise
	// scrolling walks these marks.
	PromptStart bool
	// Wrapped marks that the line continues the previous one.
	Wrapped bool
}

// Rect is a rectangle in window cell coordinates.
type Rect struct {
	X, Y, Width, Height int
}

// Point is a cell position.
type Point struct {
	X, Y int
}

// Screen is the live terminal screen plus its attached history, addressed in
// one absolute coordinate space: lines [0, HistLines) are history, lines
// [HistLines, HistLines+Lines) are the live screen. The window treats every
// read as total; the screen returns safe defaults for anything it cannot
// answer.
type Screen interface {
	// HistLines returns the number of history lines above the live screen.
	HistLines() int
	// Lines returns the live screen height.
	Lines() int
	// Columns returns the live screen width.
	Columns() int

	CursorX() int
	CursorY() int

	// GetImage fills dest with the cells of absolute lines
	// [startLine, endLine], reading history lines from the store and live
	// lines from the screen itself.
	GetImage(dest []scroll.Cell, size, startLine, endLine int)

	// GetLineProperties returns one property record per absolute line in
	// [startLine, endLine]. An inverted range yields an empty slice.
	GetLineProperties(startLine, endLine int) []LineProperty

	SelectedText(options DecodingOptions) string
	GetSelectionStart() (column, line int)
	GetSelectionEnd() (column, line int)
	SetSelectionStart(column, line int, columnMode bool)
	SetSelectionEnd(column, line int, trimTrailingWhitespace bool)
	ClearSelection()
	IsSelected(column, line int) bool

	// ScrolledLines returns how many lines the screen content moved up since
	// the last reset by the embedder.
	ScrolledLines() int
	// DroppedLines returns how many history lines a bounded store discarded
	// since the last reset.
	DroppedLines() int
	// OldTotalLines returns the total line count before the most recent
	// resize.
	OldTotalLines() int
	// IsResize reports whether the last content change was a resize.
	IsResize() bool
	// LastScrolledRegion returns the screen region affected by the last
	// scroll, for smooth-scroll rendering.
	LastScrolledRegion() Rect
	// HasRepl reports whether the screen has shell-integration prompt marks.
	HasRepl() bool
}

// FillWithDefaultChar fills dest with the default blank cell.
func FillWithDefaultChar(dest []scroll.Cell) {
	for i := range dest {
		dest[i] = scroll.DefaultCell
	}
}
