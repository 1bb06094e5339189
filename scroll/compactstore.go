// Copyright © 2025 Quillscroll contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/compactstore.go
// Summary: Bounded FIFO of compact lines; drops the oldest line on overflow.

package scroll

import "fmt"

// CompactStore holds at most maxLineCount compact lines. Appending past the
// capacity evicts from the front. All line storage comes from one arena so
// eviction of a batch of old lines drains and frees whole blocks.
type CompactStore struct {
	lines        []*CompactLine
	blockList    *ArenaList
	maxLineCount int
}

func NewCompactStore(maxLineCount int) *CompactStore {
	if maxLineCount < 0 {
		maxLineCount = 0
	}
	return &CompactStore{
		blockList:    NewArenaList(),
		maxLineCount: maxLineCount,
	}
}

func (s *CompactStore) Lines() int {
	return len(s.lines)
}

// MaxLineCount returns the configured capacity.
func (s *CompactStore) MaxLineCount() int {
	return s.maxLineCount
}

// SetMaxLineCount updates the capacity, evicting from the front until the
// store fits.
func (s *CompactStore) SetMaxLineCount(maxLineCount int) {
	if maxLineCount < 0 {
		maxLineCount = 0
	}
	s.maxLineCount = maxLineCount
	s.evict()
}

func (s *CompactStore) evict() {
	for len(s.lines) > s.maxLineCount {
		s.lines[0].free()
		s.lines[0] = nil
		s.lines = s.lines[1:]
	}
}

func (s *CompactStore) LineLen(lineno int) int {
	if lineno < 0 || lineno >= len(s.lines) {
		panic(fmt.Sprintf("compactstore: line %d out of range (%d lines)", lineno, len(s.lines)))
	}
	return s.lines[lineno].Length()
}

func (s *CompactStore) IsWrappedLine(lineno int) bool {
	if lineno < 0 || lineno >= len(s.lines) {
		return false
	}
	return s.lines[lineno].Wrapped()
}

func (s *CompactStore) GetCells(lineno, colno, count int, res []Cell) {
	if count == 0 {
		return
	}
	if lineno < 0 || lineno >= len(s.lines) {
		panic(fmt.Sprintf("compactstore: line %d out of range (%d lines)", lineno, len(s.lines)))
	}
	s.lines[lineno].GetCharacters(res, count, colno)
}

// AddCells compresses the cells into a new line at the back of the FIFO.
func (s *CompactStore) AddCells(text []Cell) {
	line := newCompactLine(TextLine(text), s.blockList)
	s.lines = append(s.lines, line)
	s.evict()
}

// AddLine records the wrap flag on the line just added. The producer always
// appends cells and immediately terminates, so the last line is the current
// one. With capacity 0 the line is already gone.
func (s *CompactStore) AddLine(previousWrapped bool) {
	if len(s.lines) == 0 {
		return
	}
	s.lines[len(s.lines)-1].setWrapped(previousWrapped)
}

func (s *CompactStore) HasScroll() bool { return true }

func (s *CompactStore) Close() error {
	for i, line := range s.lines {
		line.free()
		s.lines[i] = nil
	}
	s.lines = nil
	return nil
}
