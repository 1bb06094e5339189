// Copyright © 2025 Quillscroll contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: window/window.go
// Summary: Scrollable rectangular window over history plus live screen.
//
// Architecture:
//
//	Window is a pure read projection. It owns nothing but its frame buffer;
//	the screen collaborator owns content and selection state, the store owns
//	history. The window keeps a stable logical top line into the moving
//	stream, rebuilds its frame lazily behind a dirty bit, and translates
//	between window-local and absolute line numbers for selections.

package window

import "github.com/quillscroll/quillscroll/scroll"

// RelativeScrollMode selects the unit of a relative scroll step.
type RelativeScrollMode int

const (
	// ScrollLines moves by single lines.
	ScrollLines RelativeScrollMode = iota
	// ScrollPages moves by half or full window heights.
	ScrollPages
	// ScrollPrompts moves between shell prompt lines when the screen has
	// them, and falls back to pages otherwise.
	ScrollPrompts
)

// Window provides a scrollable view onto a section of a screen and its
// history. The window's world is HistLines+Lines rows tall and Columns wide;
// currentLine is the absolute index of the window's top row.
type Window struct {
	screen   Screen
	notifier Notifier

	windowBuffer      []scroll.Cell
	windowBufferSize  int
	bufferNeedsUpdate bool

	windowLines       int
	currentLine       int
	currentResultLine int
	trackOutput       bool
	scrollCount       int
}

// NewWindow creates a window onto the given screen. A nil notifier drops all
// outbound notifications.
func NewWindow(screen Screen, notifier Notifier) *Window {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	w := &Window{
		notifier:          notifier,
		bufferNeedsUpdate: true,
		windowLines:       1,
		currentResultLine: -1,
		trackOutput:       true,
	}
	w.SetScreen(screen)
	return w
}

// SetScreen swaps the screen collaborator.
func (w *Window) SetScreen(screen Screen) {
	if screen == nil {
		panic("window: nil screen")
	}
	if screen == w.screen {
		return
	}
	w.notifier.ScreenAboutToChange()
	w.screen = screen
}

// Screen returns the current screen collaborator.
func (w *Window) Screen() Screen {
	return w.screen
}

// GetImage returns the window's frame: exactly WindowLines×WindowColumns
// cells. The buffer is reused between calls and rebuilt only when marked
// dirty; callers borrow it until the next mutation.
func (w *Window) GetImage() []scroll.Cell {
	// Reallocate the internal buffer if the window size has changed.
	size := w.WindowLines() * w.WindowColumns()
	if w.windowBuffer == nil || w.windowBufferSize != size {
		w.windowBufferSize = size
		w.windowBuffer = make([]scroll.Cell, size)
		w.bufferNeedsUpdate = true
	}

	if !w.bufferNeedsUpdate {
		return w.windowBuffer
	}

	w.screen.GetImage(w.windowBuffer, size, w.CurrentLine(), w.endWindowLine())

	// This window may look beyond the end of the screen, in which case there
	// is an unused area which needs to be filled with blank characters.
	w.fillUnusedArea()

	w.bufferNeedsUpdate = false
	return w.windowBuffer
}

func (w *Window) fillUnusedArea() {
	screenEndLine := w.screen.HistLines() + w.screen.Lines() - 1
	windowEndLine := w.CurrentLine() + w.WindowLines() - 1

	unusedLines := windowEndLine - screenEndLine
	if unusedLines <= 0 {
		return
	}

	charsToFill := unusedLines * w.WindowColumns()
	FillWithDefaultChar(w.windowBuffer[w.windowBufferSize-charsToFill:])
}

// endWindowLine returns the absolute index of the last line inside both the
// window and the screen. Line numbers handed to the screen never exceed it.
func (w *Window) endWindowLine() int {
	return min(w.CurrentLine()+w.WindowLines()-1, w.LineCount()-1)
}

// GetLineProperties returns one property record per window row, padded with
// zero records when the window extends past the end of the screen.
func (w *Window) GetLineProperties() []LineProperty {
	properties := w.screen.GetLineProperties(w.CurrentLine(), w.endWindowLine())

	if len(properties) != w.WindowLines() {
		resized := make([]LineProperty, w.WindowLines())
		copy(resized, properties)
		properties = resized
	}
	return properties
}

// SelectedText returns the selected text decoded per options.
func (w *Window) SelectedText(options DecodingOptions) string {
	return w.screen.SelectedText(options)
}

// GetSelectionStart returns the selection start in window coordinates.
func (w *Window) GetSelectionStart() (column, line int) {
	column, line = w.screen.GetSelectionStart()
	line -= w.CurrentLine()
	return column, line
}

// GetSelectionEnd returns the selection end in window coordinates.
func (w *Window) GetSelectionEnd() (column, line int) {
	column, line = w.screen.GetSelectionEnd()
	line -= w.CurrentLine()
	return column, line
}

// SetSelectionStart sets the selection start from window coordinates.
func (w *Window) SetSelectionStart(column, line int, columnMode bool) {
	w.screen.SetSelectionStart(column, line+w.CurrentLine(), columnMode)

	w.bufferNeedsUpdate = true
	w.notifier.SelectionChanged()
}

// SetSelectionEnd sets the selection end from window coordinates.
func (w *Window) SetSelectionEnd(column, line int, trimTrailingWhitespace bool) {
	w.screen.SetSelectionEnd(column, line+w.CurrentLine(), trimTrailingWhitespace)

	w.bufferNeedsUpdate = true
	w.notifier.SelectionChanged()
}

// SetSelectionByLineRange selects whole absolute lines [start, end].
func (w *Window) SetSelectionByLineRange(start, end int) {
	w.ClearSelection()

	w.screen.SetSelectionStart(0, start, false)
	w.screen.SetSelectionEnd(w.WindowColumns(), end, false)

	w.bufferNeedsUpdate = true
	w.notifier.SelectionChanged()
}

// IsSelected reports whether the cell at window coordinates is selected.
func (w *Window) IsSelected(column, line int) bool {
	return w.screen.IsSelected(column, min(line+w.CurrentLine(), w.endWindowLine()))
}

// ClearSelection removes the selection.
func (w *Window) ClearSelection() {
	w.screen.ClearSelection()

	w.notifier.SelectionChanged()
}

// SetWindowLines sets the window height.
func (w *Window) SetWindowLines(lines int) {
	if lines <= 0 {
		panic("window: height must be positive")
	}
	w.windowLines = lines
}

// WindowLines returns the window height.
func (w *Window) WindowLines() int {
	return w.windowLines
}

// WindowColumns returns the window width, always the screen's column count.
func (w *Window) WindowColumns() int {
	return w.screen.Columns()
}

// LineCount returns the height of the window's world: history plus screen.
func (w *Window) LineCount() int {
	return w.screen.HistLines() + w.screen.Lines()
}

// ColumnCount returns the width of the window's world.
func (w *Window) ColumnCount() int {
	return w.screen.Columns()
}

// CursorPosition returns the screen cursor position.
func (w *Window) CursorPosition() Point {
	return Point{X: w.screen.CursorX(), Y: w.screen.CursorY()}
}

// CurrentLine returns the absolute line at the top of the window. The stored
// value is clamped on read, not on write, so it survives the screen resizing
// underneath the window.
func (w *Window) CurrentLine() int {
	return clamp(0, w.currentLine, max(0, w.LineCount()-w.WindowLines()))
}

// CurrentResultLine returns the stored search-result line, -1 if none.
func (w *Window) CurrentResultLine() int {
	return w.currentResultLine
}

// SetCurrentResultLine stores the line of the current search result.
func (w *Window) SetCurrentResultLine(line int) {
	if w.currentResultLine == line {
		return
	}
	w.currentResultLine = line
	w.notifier.CurrentResultLineChanged()
}

// ScrollBy moves the window relative to its current position. amount is in
// units of mode; negative values scroll towards older output. fullPage makes
// ScrollPages step by whole window heights instead of half.
func (w *Window) ScrollBy(mode RelativeScrollMode, amount int, fullPage bool) {
	if mode == ScrollLines {
		w.ScrollTo(w.CurrentLine() + amount)
	} else if mode == ScrollPages || (mode == ScrollPrompts && !w.screen.HasRepl()) {
		if fullPage {
			w.ScrollTo(w.CurrentLine() + amount*w.WindowLines())
		} else {
			w.ScrollTo(w.CurrentLine() + amount*(w.WindowLines()/2))
		}
	} else if mode == ScrollPrompts {
		i := w.CurrentLine()
		if amount < 0 {
			properties := w.screen.GetLineProperties(0, w.CurrentLine())
			for i > 0 && amount < 0 {
				i--
				if properties[i].PromptStart {
					amount++
					if amount == 0 {
						break
					}
				}
			}
		} else if amount > 0 {
			properties := w.screen.GetLineProperties(w.CurrentLine(), w.screen.HistLines())
			for i < w.screen.HistLines() && amount > 0 {
				i++
				if properties[i-w.CurrentLine()].PromptStart {
					amount--
					if amount == 0 {
						break
					}
				}
			}
		}
		w.ScrollTo(i)
	}
}

// AtEndOfOutput reports whether the window's bottom row is the last line of
// output.
func (w *Window) AtEndOfOutput() bool {
	return w.CurrentLine() == w.LineCount()-w.WindowLines()
}

// ScrollTo moves the window's top row to the given absolute line, clamped to
// the valid range.
func (w *Window) ScrollTo(line int) {
	maxCurrentLineNumber := max(0, w.LineCount()-w.WindowLines())
	line = clamp(0, line, maxCurrentLineNumber)

	delta := line - w.currentLine
	w.currentLine = line

	// Keep track of the number of lines scrolled by; this can be reset by
	// calling ResetScrollCount.
	w.scrollCount += delta

	w.bufferNeedsUpdate = true

	w.notifier.Scrolled(w.currentLine)
}

// SetTrackOutput switches the window between following the bottom of the
// screen and holding its position.
func (w *Window) SetTrackOutput(trackOutput bool) {
	w.trackOutput = trackOutput
}

// TrackOutput reports whether the window follows the bottom of the screen.
func (w *Window) TrackOutput() bool {
	return w.trackOutput
}

// ScrollCount returns the accumulated signed scroll delta since the last
// ResetScrollCount.
func (w *Window) ScrollCount() int {
	return w.scrollCount
}

// ResetScrollCount zeroes the scroll accumulator.
func (w *Window) ResetScrollCount() {
	w.scrollCount = 0
}

// ScrollRegion returns the region a renderer may smooth-scroll. Only when the
// window matches the screen height and sits at the end of output can the
// screen's own scrolled region be reused; otherwise the whole window repaints.
func (w *Window) ScrollRegion() Rect {
	equalToScreenSize := w.WindowLines() == w.screen.Lines()

	if w.AtEndOfOutput() && equalToScreenSize {
		return w.screen.LastScrolledRegion()
	}
	return Rect{X: 0, Y: 0, Width: w.WindowColumns(), Height: w.WindowLines()}
}

// UpdateCurrentLine re-anchors the window to its content after a resize: the
// total line count changed, so the same content now lives at a shifted
// absolute line. Only the total-line delta is compensated; a simultaneous
// window-height change is absorbed by the clamp in CurrentLine on the next
// read.
func (w *Window) UpdateCurrentLine() {
	if !w.screen.IsResize() {
		return
	}
	if w.currentLine > 0 {
		w.currentLine -= w.screen.OldTotalLines() - w.LineCount()
	}
	w.currentLine = clamp(0, w.currentLine, max(0, w.LineCount()-w.WindowLines()))
}

// NotifyOutputChanged is called by the embedder after the screen produced
// output. A tracking window snaps its bottom row to the screen's bottom; a
// held window compensates for history lines a bounded store dropped.
func (w *Window) NotifyOutputChanged() {
	if w.trackOutput {
		w.scrollCount -= w.screen.ScrolledLines()
		w.currentLine = max(0, w.screen.HistLines()-(w.WindowLines()-w.screen.Lines()))
	} else {
		// If the history is bounded it may have run out of space and dropped
		// the oldest lines of output; the window's current line number then
		// needs the same shift or the content under it would appear to scroll.
		w.currentLine = max(0, w.currentLine-w.screen.DroppedLines())

		// Ensure that the window's current position does not go beyond the
		// bottom of the screen.
		w.currentLine = min(w.currentLine, w.screen.HistLines())
	}

	w.bufferNeedsUpdate = true

	w.notifier.OutputChanged()
}

func clamp(lo, v, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
