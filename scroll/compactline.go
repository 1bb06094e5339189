// Copyright © 2025 Quillscroll contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/compactline.go
// Summary: Run-length format compression of a single line, arena-resident.

package scroll

import (
	"encoding/binary"
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Compact lines store three arena regions: a fixed header (the line object),
// a format-run array and a character array. Cells sharing rendition and
// colors collapse into one run, so a typical line carries a handful of runs
// regardless of width. Code points narrow to 16 bits on this path.
const (
	compactHeaderSize = 8  // length(4) + formatLength(2) + flags(1) + pad(1)
	formatRunSize     = 14 // startColumn(2) + attr(2) + fg(5) + bg(5)
	compactCharSize   = 2
)

const compactFlagWrapped = 0x01

// CompactLine is a single line compressed into arena storage. The header
// region is the line object itself; text and formats exist only for non-empty
// lines.
type CompactLine struct {
	list     *ArenaList
	header   []byte
	headerID int
	text     []byte
	textID   int
	formats  []byte
	formatID int
}

// newCompactLine compresses line into arena storage. Empty lines allocate
// only the header.
func newCompactLine(line TextLine, list *ArenaList) *CompactLine {
	l := &CompactLine{list: list}
	l.header, l.headerID = list.Alloc(compactHeaderSize)
	binary.LittleEndian.PutUint32(l.header[0:4], uint32(len(line)))

	if len(line) == 0 {
		return l
	}

	// First pass: count format changes. The initial format counts as one.
	formatLength := 1
	current := line[0]
	for k := 1; k < len(line); k++ {
		if !SameFormat(line[k], current) {
			formatLength++
			current = line[k]
		}
	}
	binary.LittleEndian.PutUint16(l.header[4:6], uint16(formatLength))

	l.formats, l.formatID = list.Alloc(formatLength * formatRunSize)
	l.text, l.textID = list.Alloc(len(line) * compactCharSize)

	// Second pass: record each format boundary and copy the code points.
	current = line[0]
	l.putRun(0, 0, current)
	j := 1
	for k := 1; k < len(line); k++ {
		if !SameFormat(line[k], current) {
			current = line[k]
			l.putRun(j, k, current)
			j++
		}
	}
	for i, c := range line {
		binary.LittleEndian.PutUint16(l.text[i*compactCharSize:], uint16(c.Rune))
	}

	return l
}

func (l *CompactLine) putRun(run, startColumn int, c Cell) {
	rec := l.formats[run*formatRunSize:]
	binary.LittleEndian.PutUint16(rec[0:2], uint16(startColumn))
	binary.LittleEndian.PutUint16(rec[2:4], uint16(c.Attr))
	encodeColor(rec[4:9], c.FG)
	encodeColor(rec[9:14], c.BG)
}

func (l *CompactLine) runStart(run int) int {
	return int(binary.LittleEndian.Uint16(l.formats[run*formatRunSize:]))
}

// Length returns the cell count.
func (l *CompactLine) Length() int {
	return int(binary.LittleEndian.Uint32(l.header[0:4]))
}

func (l *CompactLine) formatLength() int {
	return int(binary.LittleEndian.Uint16(l.header[4:6]))
}

// Wrapped reports the wrapped-previous flag.
func (l *CompactLine) Wrapped() bool {
	return l.header[6]&compactFlagWrapped != 0
}

func (l *CompactLine) setWrapped(wrapped bool) {
	if wrapped {
		l.header[6] |= compactFlagWrapped
	} else {
		l.header[6] &^= compactFlagWrapped
	}
}

// GetCharacter materializes the full cell at index. The enclosing run is
// found by bounded linear scan; runs are few per line.
func (l *CompactLine) GetCharacter(index int) Cell {
	if index < 0 || index >= l.Length() {
		panic(fmt.Sprintf("compactline: index %d out of range (length %d)", index, l.Length()))
	}

	formatPos := 0
	for formatPos+1 < l.formatLength() && index >= l.runStart(formatPos+1) {
		formatPos++
	}

	rec := l.formats[formatPos*formatRunSize:]
	r := rune(binary.LittleEndian.Uint16(l.text[index*compactCharSize:]))
	return Cell{
		Rune: r,
		Attr: Attribute(binary.LittleEndian.Uint16(rec[2:4])),
		FG:   decodeColor(rec[4:9]),
		BG:   decodeColor(rec[9:14]),
		Wide: runewidth.RuneWidth(r) == 2,
	}
}

// GetCharacters fills dest[0:count] with cells [startColumn, startColumn+count).
func (l *CompactLine) GetCharacters(dest []Cell, count, startColumn int) {
	if startColumn < 0 || count < 0 || startColumn+count > l.Length() {
		panic(fmt.Sprintf("compactline: range [%d,%d) out of range (length %d)",
			startColumn, startColumn+count, l.Length()))
	}
	for i := 0; i < count; i++ {
		dest[i] = l.GetCharacter(startColumn + i)
	}
}

// free returns the line's regions to the arena: the character and format
// arrays first, the line object itself last. The object lives in the same
// arena, so it must outlive the release of its sub-arrays.
func (l *CompactLine) free() {
	if l.Length() > 0 {
		l.list.Free(l.textID)
		l.list.Free(l.formatID)
	}
	l.list.Free(l.headerID)
	l.text = nil
	l.formats = nil
	l.header = nil
}
