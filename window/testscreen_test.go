// Copyright © 2025 Quillscroll contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: window/testscreen_test.go
// Summary: Scripted screen and notifier fakes for window tests.

package window

import "github.com/quillscroll/quillscroll/scroll"

// fakeScreen is a scripted Screen. Each absolute line renders as its line
// number modulo 26, as a letter, repeated across the columns, so tests can
// tell which lines ended up in the frame.
type fakeScreen struct {
	histLines int
	lines     int
	columns   int

	cursorX, cursorY int

	scrolledLines int
	droppedLines  int
	oldTotalLines int
	resize        bool
	hasRepl       bool

	promptLines map[int]bool

	lastScrolledRegion Rect

	selStartCol, selStartLine int
	selEndCol, selEndLine     int
	selColumnMode             bool
	selCleared                bool
	clearCalls                int

	imageFills int
}

func newFakeScreen(histLines, lines, columns int) *fakeScreen {
	return &fakeScreen{
		histLines:   histLines,
		lines:       lines,
		columns:     columns,
		promptLines: map[int]bool{},
	}
}

func lineRune(line int) rune {
	return rune('A' + line%26)
}

func (f *fakeScreen) HistLines() int { return f.histLines }
func (f *fakeScreen) Lines() int     { return f.lines }
func (f *fakeScreen) Columns() int   { return f.columns }
func (f *fakeScreen) CursorX() int   { return f.cursorX }
func (f *fakeScreen) CursorY() int   { return f.cursorY }

func (f *fakeScreen) GetImage(dest []scroll.Cell, size, startLine, endLine int) {
	f.imageFills++
	i := 0
	for line := startLine; line <= endLine; line++ {
		for col := 0; col < f.columns && i < size; col++ {
			dest[i] = scroll.Cell{Rune: lineRune(line), FG: scroll.DefaultFG, BG: scroll.DefaultBG}
			i++
		}
	}
}

func (f *fakeScreen) GetLineProperties(startLine, endLine int) []LineProperty {
	properties := make([]LineProperty, max(0, endLine-startLine+1))
	for i := range properties {
		properties[i].PromptStart = f.promptLines[startLine+i]
	}
	return properties
}

func (f *fakeScreen) SelectedText(DecodingOptions) string { return "" }

func (f *fakeScreen) GetSelectionStart() (int, int) { return f.selStartCol, f.selStartLine }
func (f *fakeScreen) GetSelectionEnd() (int, int)   { return f.selEndCol, f.selEndLine }

func (f *fakeScreen) SetSelectionStart(column, line int, columnMode bool) {
	f.selStartCol, f.selStartLine = column, line
	f.selColumnMode = columnMode
	f.selCleared = false
}

func (f *fakeScreen) SetSelectionEnd(column, line int, _ bool) {
	f.selEndCol, f.selEndLine = column, line
}

func (f *fakeScreen) ClearSelection() {
	f.selCleared = true
	f.clearCalls++
}

func (f *fakeScreen) IsSelected(column, line int) bool {
	return !f.selCleared && line >= f.selStartLine && line <= f.selEndLine
}

func (f *fakeScreen) ScrolledLines() int       { return f.scrolledLines }
func (f *fakeScreen) DroppedLines() int        { return f.droppedLines }
func (f *fakeScreen) OldTotalLines() int       { return f.oldTotalLines }
func (f *fakeScreen) IsResize() bool           { return f.resize }
func (f *fakeScreen) LastScrolledRegion() Rect { return f.lastScrolledRegion }
func (f *fakeScreen) HasRepl() bool            { return f.hasRepl }

// recordingNotifier counts emissions and remembers the last scroll position.
type recordingNotifier struct {
	screenChanges     int
	selectionChanges  int
	scrolls           int
	lastScrolledTo    int
	outputChanges     int
	resultLineChanges int
}

func (n *recordingNotifier) ScreenAboutToChange() { n.screenChanges++ }
func (n *recordingNotifier) SelectionChanged()    { n.selectionChanges++ }
func (n *recordingNotifier) Scrolled(line int) {
	n.scrolls++
	n.lastScrolledTo = line
}
func (n *recordingNotifier) OutputChanged()            { n.outputChanges++ }
func (n *recordingNotifier) CurrentResultLineChanged() { n.resultLineChanges++ }
