// Copyright © 2025 Quillscroll contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/rawfile.go
// Summary: Append-only temp-file byte log with random reads and an adaptive
// read-only mapping of the whole file.

package scroll

import (
	"fmt"
	"io"
	"log"
	"os"

	"golang.org/x/sys/unix"
)

// MapThreshold is the read/append balance below which a RawFile maps itself.
// Reads decrement the balance and appends increment it, so the file is mapped
// only when reads heavily outnumber appends (scrolling back through idle
// history). An active session keeps appending and never pays for remapping.
const MapThreshold = -1000

// RawFile is an append-only byte log backed by an unlinked temporary file.
// Appends always go to the end; reads are random-access. Once the adaptive
// balance trips, reads are served from a private read-only mapping until the
// next append unmaps it.
//
// A RawFile that failed to create its backing file stays disabled: appends
// and reads become no-ops and Len reports 0. Callers observe empty history
// rather than an error.
type RawFile struct {
	file             *os.File
	length           int
	fileMap          []byte
	readWriteBalance int
}

// NewRawFile creates the backing temp file under the system temp directory.
// The file is unlinked immediately so it disappears when closed.
func NewRawFile() *RawFile {
	f := &RawFile{}
	tmp, err := os.CreateTemp("", "quillscroll-*.history")
	if err != nil {
		log.Printf("[RAWFILE] cannot create history file: %v", err)
		return f
	}
	if err := os.Remove(tmp.Name()); err != nil {
		log.Printf("[RAWFILE] cannot unlink history file: %v", err)
	}
	f.file = tmp
	return f
}

// Map establishes a private read-only mapping of the current file contents.
// On failure the adaptive balance is reset and reads keep using seek+read.
func (f *RawFile) Map() {
	if f.fileMap != nil || f.file == nil || f.length == 0 {
		return
	}
	m, err := unix.Mmap(int(f.file.Fd()), 0, f.length, unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		f.readWriteBalance = 0
		log.Printf("[RAWFILE] mmap of history failed: %v", err)
		return
	}
	f.fileMap = m
}

// Unmap releases the mapping, if any.
func (f *RawFile) Unmap() {
	if f.fileMap == nil {
		return
	}
	if err := unix.Munmap(f.fileMap); err != nil {
		log.Printf("[RAWFILE] munmap of history failed: %v", err)
	}
	f.fileMap = nil
}

// IsMapped reports whether reads are currently served from the mapping.
func (f *RawFile) IsMapped() bool {
	return f.fileMap != nil
}

// Add appends buffer to the end of the log. The mapping, if present, is torn
// down first since its size no longer covers the file. A failed write is
// logged and the length is not advanced.
func (f *RawFile) Add(buffer []byte) {
	if f.file == nil {
		return
	}
	if f.fileMap != nil {
		f.Unmap()
	}

	f.readWriteBalance++

	n, err := f.file.WriteAt(buffer, int64(f.length))
	if err != nil {
		log.Printf("[RAWFILE] add: %v", err)
		return
	}
	f.length += n
}

// Get reads len(buffer) bytes starting at loc. Out-of-range arguments are a
// programming error. A disabled file leaves buffer untouched.
func (f *RawFile) Get(buffer []byte, loc int) {
	if f.file == nil {
		return
	}

	size := len(buffer)
	if loc < 0 || loc+size > f.length {
		panic(fmt.Sprintf("rawfile: get(%d,%d): invalid args", size, loc))
	}

	// Count reads against appends; map the log once scrolling outpaces output.
	f.readWriteBalance--
	if f.fileMap == nil && f.readWriteBalance < MapThreshold {
		f.Map()
	}

	if f.fileMap != nil {
		copy(buffer, f.fileMap[loc:loc+size])
		return
	}

	if _, err := f.file.ReadAt(buffer, int64(loc)); err != nil && err != io.EOF {
		log.Printf("[RAWFILE] get: %v", err)
	}
}

// Len returns the number of bytes appended so far.
func (f *RawFile) Len() int {
	return f.length
}

// Close releases the mapping and the backing file. The file was unlinked at
// creation, so closing removes the last reference to its storage.
func (f *RawFile) Close() error {
	f.Unmap()
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}
