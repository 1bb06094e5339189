// Copyright © 2025 Quillscroll contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/cell.go
// Summary: Styled character cells and their fixed-width binary encoding.
// Usage: Shared by every store strategy and the viewport frame buffer.

package scroll

import (
	"encoding/binary"

	"github.com/mattn/go-runewidth"
)

type Attribute uint16

const (
	AttrBold Attribute = 1 << iota
	AttrUnderline
	AttrReverse
	AttrBlink
)

// String returns a human-readable representation of the attribute flags.
func (a Attribute) String() string {
	if a == 0 {
		return "none"
	}
	var parts []string
	if a&AttrBold != 0 {
		parts = append(parts, "bold")
	}
	if a&AttrUnderline != 0 {
		parts = append(parts, "underline")
	}
	if a&AttrReverse != 0 {
		parts = append(parts, "reverse")
	}
	if a&AttrBlink != 0 {
		parts = append(parts, "blink")
	}
	if len(parts) == 0 {
		return "unknown"
	}
	result := parts[0]
	for i := 1; i < len(parts); i++ {
		result += "|" + parts[i]
	}
	return result
}

// ColorMode defines the type of color stored.
type ColorMode int

const (
	ColorModeDefault  ColorMode = iota // Default terminal color
	ColorModeStandard                  // The basic 8 ANSI colors
	ColorMode256                       // 256-color palette
	ColorModeRGB                       // 24-bit "true" color
)

// Color represents a color in potentially different modes.
type Color struct {
	Mode    ColorMode
	Value   uint8 // Holds the color code for Standard (0-7) and 256-mode (0-255)
	R, G, B uint8 // Holds the values for RGB mode
}

// Cell represents a single styled character position.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
	Attr Attribute
	Wide bool // True if this cell contains a wide (2-column) character
}

// Predefined default colors for convenience.
var (
	DefaultFG = Color{Mode: ColorModeDefault}
	DefaultBG = Color{Mode: ColorModeDefault}
)

// DefaultCell is the blank cell used to fill unused frame area.
var DefaultCell = Cell{Rune: ' ', FG: DefaultFG, BG: DefaultBG}

// CellSize is the encoded size of one cell: rune(4) + fg(5) + bg(5) + attr(2).
const CellSize = 16

// attrWide marks a wide cell in the encoded attribute word. It is outside the
// rendition flag space and stripped on decode.
const attrWide = 0x8000

// SameFormat reports whether two cells agree on rendition, foreground and
// background. The rune and width do not participate.
func SameFormat(a, b Cell) bool {
	return a.Attr == b.Attr && a.FG == b.FG && a.BG == b.BG
}

func encodeColor(dest []byte, c Color) {
	dest[0] = byte(c.Mode)
	dest[1] = c.Value
	dest[2] = c.R
	dest[3] = c.G
	dest[4] = c.B
}

func decodeColor(src []byte) Color {
	return Color{
		Mode:  ColorMode(src[0]),
		Value: src[1],
		R:     src[2],
		G:     src[3],
		B:     src[4],
	}
}

// EncodeCell writes the cell into dest[0:CellSize].
func EncodeCell(c Cell, dest []byte) {
	binary.LittleEndian.PutUint32(dest[0:4], uint32(c.Rune))
	encodeColor(dest[4:9], c.FG)
	encodeColor(dest[9:14], c.BG)
	attr := uint16(c.Attr)
	if c.Wide {
		attr |= attrWide
	}
	binary.LittleEndian.PutUint16(dest[14:16], attr)
}

// DecodeCell reads a cell from src[0:CellSize].
func DecodeCell(src []byte) Cell {
	attr := binary.LittleEndian.Uint16(src[14:16])
	return Cell{
		Rune: rune(binary.LittleEndian.Uint32(src[0:4])),
		FG:   decodeColor(src[4:9]),
		BG:   decodeColor(src[9:14]),
		Attr: Attribute(attr &^ attrWide),
		Wide: attr&attrWide != 0,
	}
}

// TextLine is a finite ordered sequence of cells. It is the unit the stores
// ingest and hand back.
type TextLine []Cell

// TextLineFromString builds a plain-format text line from a string. Wide runes
// occupy two cells: the glyph cell followed by a zero-width spacer, matching
// what a terminal grid stores for two-column characters.
func TextLineFromString(s string) TextLine {
	line := make(TextLine, 0, len(s))
	for _, r := range s {
		if runewidth.RuneWidth(r) == 2 {
			line = append(line, Cell{Rune: r, FG: DefaultFG, BG: DefaultBG, Wide: true})
			line = append(line, Cell{Rune: 0, FG: DefaultFG, BG: DefaultBG})
			continue
		}
		line = append(line, Cell{Rune: r, FG: DefaultFG, BG: DefaultBG})
	}
	return line
}

// String flattens the line's runes, skipping wide-character spacer cells.
func (l TextLine) String() string {
	out := make([]rune, 0, len(l))
	for _, c := range l {
		if c.Rune == 0 {
			continue
		}
		out = append(out, c.Rune)
	}
	return string(out)
}
