// Copyright © 2025 Quillscroll contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scroll/filestore.go
// Summary: Unbounded file-backed store over three raw logs: cells, line
// offsets and per-line flags.

package scroll

import "encoding/binary"

// FileStore keeps history in three append-only temp files. The index log
// holds one 32-bit offset per terminated line: the byte position in the cells
// log just past that line's last cell. Line 0 starts at offset 0 implicitly,
// so index[i-1] addresses line i. The flags log holds one byte per terminated
// line with bit 0 recording the wrapped-previous flag.
type FileStore struct {
	cells     *RawFile
	index     *RawFile
	lineflags *RawFile
}

const indexEntrySize = 4

func NewFileStore() *FileStore {
	return &FileStore{
		cells:     NewRawFile(),
		index:     NewRawFile(),
		lineflags: NewRawFile(),
	}
}

func (s *FileStore) Lines() int {
	return s.index.Len() / indexEntrySize
}

// startOfLine returns the byte offset in the cells log where line lineno
// begins. Indices past the last terminated line address the open tail.
func (s *FileStore) startOfLine(lineno int) int {
	if lineno <= 0 {
		return 0
	}
	if lineno <= s.Lines() {
		if !s.index.IsMapped() {
			s.index.Map()
		}
		var buf [indexEntrySize]byte
		s.index.Get(buf[:], (lineno-1)*indexEntrySize)
		return int(binary.LittleEndian.Uint32(buf[:]))
	}
	return s.cells.Len()
}

func (s *FileStore) LineLen(lineno int) int {
	return (s.startOfLine(lineno+1) - s.startOfLine(lineno)) / CellSize
}

func (s *FileStore) IsWrappedLine(lineno int) bool {
	if lineno < 0 || lineno >= s.Lines() {
		return false
	}
	var flag [1]byte
	s.lineflags.Get(flag[:], lineno)
	return flag[0]&1 != 0
}

func (s *FileStore) GetCells(lineno, colno, count int, res []Cell) {
	if count == 0 {
		return
	}
	buf := make([]byte, count*CellSize)
	s.cells.Get(buf, s.startOfLine(lineno)+colno*CellSize)
	for i := 0; i < count; i++ {
		res[i] = DecodeCell(buf[i*CellSize:])
	}
}

func (s *FileStore) AddCells(text []Cell) {
	if len(text) == 0 {
		return
	}
	buf := make([]byte, len(text)*CellSize)
	for i, c := range text {
		EncodeCell(c, buf[i*CellSize:])
	}
	s.cells.Add(buf)
}

func (s *FileStore) AddLine(previousWrapped bool) {
	// The index grows here, so any mapping of it is stale.
	if s.index.IsMapped() {
		s.index.Unmap()
	}

	var offset [indexEntrySize]byte
	binary.LittleEndian.PutUint32(offset[:], uint32(s.cells.Len()))
	s.index.Add(offset[:])

	flag := byte(0)
	if previousWrapped {
		flag = 1
	}
	s.lineflags.Add([]byte{flag})
}

func (s *FileStore) HasScroll() bool { return true }

func (s *FileStore) Close() error {
	err := s.cells.Close()
	if e := s.index.Close(); err == nil {
		err = e
	}
	if e := s.lineflags.Close(); err == nil {
		err = e
	}
	return err
}
