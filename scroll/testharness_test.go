// Copyright © 2025 Quillscroll contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/testharness_test.go
// Summary: Shared helpers for store tests.

package scroll

import "testing"

// makeCells builds a plain-format cell slice from ASCII text.
func makeCells(s string) []Cell {
	return TextLineFromString(s)
}

// cellsToString flattens cells back to text.
func cellsToString(cells []Cell) string {
	return TextLine(cells).String()
}

// readLine reads the whole line i from a store as text.
func readLine(t *testing.T, s Store, i int) string {
	t.Helper()
	size := s.LineLen(i)
	buf := make([]Cell, size)
	s.GetCells(i, 0, size, buf)
	return cellsToString(buf)
}

// addTerminatedLine appends cells and terminates the line in one step.
func addTerminatedLine(s Store, text string, previousWrapped bool) {
	s.AddCells(makeCells(text))
	s.AddLine(previousWrapped)
}

// expectPanic fails the test unless fn panics.
func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
