// Copyright © 2025 Quillscroll contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/kind.go
// Summary: Tagged store-kind descriptor and migration between strategies.

package scroll

// KindTag names a store strategy.
type KindTag int

const (
	KindNone KindTag = iota
	KindFile
	KindCompact
)

// migrationLineSize is the cell capacity of the reusable stack buffer used
// when copying lines between stores. Longer lines fall back to a heap buffer
// sized to the line; lines are never truncated.
const migrationLineSize = 1024

// StoreKind is a value describing a desired store configuration. Applying it
// to an existing store migrates the store's lines to the new strategy.
type StoreKind struct {
	tag      KindTag
	maxLines int
}

// NoneKind retains no history.
func NoneKind() StoreKind {
	return StoreKind{tag: KindNone}
}

// FileKind retains unbounded file-backed history.
func FileKind() StoreKind {
	return StoreKind{tag: KindFile}
}

// CompactKind retains at most maxLines of compressed in-memory history.
func CompactKind(maxLines int) StoreKind {
	if maxLines < 0 {
		maxLines = 0
	}
	return StoreKind{tag: KindCompact, maxLines: maxLines}
}

// Tag returns the strategy tag.
func (k StoreKind) Tag() KindTag {
	return k.tag
}

// Enabled reports whether this kind retains any history.
func (k StoreKind) Enabled() bool {
	return k.tag != KindNone
}

// MaxLineCount returns -1 for unbounded history, 0 for none, and the
// configured capacity for compact history.
func (k StoreKind) MaxLineCount() int {
	switch k.tag {
	case KindFile:
		return -1
	case KindCompact:
		return k.maxLines
	default:
		return 0
	}
}

// Scroll migrates old to a store of this kind, carrying over every line that
// fits the new capacity in order with identical cells and wrap flags. A store
// already of the target kind is reused in place: File to File is the
// identity, Compact to Compact only adjusts capacity. The old store is closed
// on every other path. old may be nil.
func (k StoreKind) Scroll(old Store) Store {
	switch k.tag {
	case KindFile:
		if existing, ok := old.(*FileStore); ok {
			return existing
		}
		fresh := NewFileStore()
		copyStoreLines(old, fresh)
		closeOld(old)
		return fresh

	case KindCompact:
		if existing, ok := old.(*CompactStore); ok {
			existing.SetMaxLineCount(k.maxLines)
			return existing
		}
		fresh := NewCompactStore(k.maxLines)
		copyStoreLines(old, fresh)
		closeOld(old)
		return fresh

	default:
		closeOld(old)
		return NewNoneStore()
	}
}

func closeOld(old Store) {
	if old != nil {
		old.Close()
	}
}

// copyStoreLines replays every line of src into dst through the store
// contract. Short lines go through a reusable stack buffer.
func copyStoreLines(src, dst Store) {
	if src == nil {
		return
	}
	var stack [migrationLineSize]Cell
	lines := src.Lines()
	for i := 0; i < lines; i++ {
		size := src.LineLen(i)
		buf := stack[:]
		if size > migrationLineSize {
			buf = make([]Cell, size)
		}
		src.GetCells(i, 0, size, buf)
		dst.AddCells(buf[:size])
		dst.AddLine(src.IsWrappedLine(i))
	}
}
