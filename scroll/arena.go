// Copyright © 2025 Quillscroll contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/arena.go
// Summary: Bump-allocator blocks with per-block live-allocation counts.

package scroll

import "fmt"

// ArenaBlockSize is the fixed block capacity. Typical lines plus their format
// runs fit many-per-block, so whole blocks drain and free as old lines evict.
const ArenaBlockSize = 128 * 1024

// arenaBlock is a fixed-size buffer with a bump pointer and a count of live
// allocations. Space is never reclaimed inside a block; the block is dropped
// as a whole once its live count reaches zero.
type arenaBlock struct {
	id         int
	buf        []byte
	tail       int
	allocCount int
}

func (b *arenaBlock) remaining() int {
	return len(b.buf) - b.tail
}

func (b *arenaBlock) allocate(size int) []byte {
	if b.tail+size > len(b.buf) {
		return nil
	}
	out := b.buf[b.tail : b.tail+size : b.tail+size]
	b.tail += size
	b.allocCount++
	return out
}

func (b *arenaBlock) deallocate() {
	b.allocCount--
	if b.allocCount < 0 {
		panic("arena: double free")
	}
}

func (b *arenaBlock) inUse() bool {
	return b.allocCount > 0
}

// ArenaList owns a list of blocks in insertion order. Allocation bumps the
// last block when it fits and appends a fresh block otherwise. Freeing only
// decrements the owning block's live count; an empty block is removed and its
// storage released.
type ArenaList struct {
	blocks []*arenaBlock
	nextID int
}

func NewArenaList() *ArenaList {
	return &ArenaList{}
}

// Alloc returns a zeroed region of exactly size bytes and the id of the block
// that owns it, to be passed back to Free. Allocations larger than the block
// size get a dedicated block of their own.
func (l *ArenaList) Alloc(size int) ([]byte, int) {
	if size <= 0 {
		panic(fmt.Sprintf("arena: alloc(%d)", size))
	}

	var block *arenaBlock
	if len(l.blocks) == 0 || l.blocks[len(l.blocks)-1].remaining() < size {
		capacity := ArenaBlockSize
		if size > capacity {
			capacity = size
		}
		block = &arenaBlock{id: l.nextID, buf: make([]byte, capacity)}
		l.nextID++
		l.blocks = append(l.blocks, block)
	} else {
		block = l.blocks[len(l.blocks)-1]
	}

	return block.allocate(size), block.id
}

// Free releases one allocation from the block with the given id, destroying
// the block if it no longer holds any live allocation.
func (l *ArenaList) Free(id int) {
	for i, block := range l.blocks {
		if block.id != id {
			continue
		}
		block.deallocate()
		if !block.inUse() {
			l.blocks = append(l.blocks[:i], l.blocks[i+1:]...)
		}
		return
	}
	panic(fmt.Sprintf("arena: free of unknown block %d", id))
}

// BlockCount returns the number of live blocks.
func (l *ArenaList) BlockCount() int {
	return len(l.blocks)
}
