package scroll

import (
	"fmt"
	"testing"
)

func TestCompactStore_Eviction(t *testing.T) {
	s := NewCompactStore(3)
	defer s.Close()

	for i := 0; i < 5; i++ {
		addTerminatedLine(s, fmt.Sprintf("L%d", i), false)
	}

	if s.Lines() != 3 {
		t.Fatalf("expected 3 lines at capacity, got %d", s.Lines())
	}
	for i, want := range []string{"L2", "L3", "L4"} {
		if got := readLine(t, s, i); got != want {
			t.Errorf("line %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestCompactStore_ArenaDrainsOnClose(t *testing.T) {
	s := NewCompactStore(4)

	for i := 0; i < 8; i++ {
		addTerminatedLine(s, "some scrollback content", false)
	}

	s.Close()
	if s.blockList.BlockCount() != 0 {
		t.Errorf("expected all arena blocks freed, got %d", s.blockList.BlockCount())
	}
}

func TestCompactStore_CapacityZero(t *testing.T) {
	s := NewCompactStore(0)
	defer s.Close()

	addTerminatedLine(s, "gone", true)
	addTerminatedLine(s, "also gone", false)

	if s.Lines() != 0 {
		t.Errorf("capacity 0: expected 0 lines, got %d", s.Lines())
	}
	if s.blockList.BlockCount() != 0 {
		t.Errorf("capacity 0: expected no retained arena blocks, got %d", s.blockList.BlockCount())
	}
}

func TestCompactStore_ShrinkCapacity(t *testing.T) {
	s := NewCompactStore(10)
	defer s.Close()

	for i := 0; i < 6; i++ {
		addTerminatedLine(s, fmt.Sprintf("L%d", i), false)
	}

	s.SetMaxLineCount(2)

	if s.Lines() != 2 {
		t.Fatalf("expected 2 lines after shrink, got %d", s.Lines())
	}
	if got := readLine(t, s, 0); got != "L4" {
		t.Errorf("expected oldest surviving line 'L4', got %q", got)
	}
	if s.MaxLineCount() != 2 {
		t.Errorf("expected capacity 2, got %d", s.MaxLineCount())
	}
}

func TestCompactStore_WrapFlag(t *testing.T) {
	s := NewCompactStore(10)
	defer s.Close()

	addTerminatedLine(s, "first", false)
	addTerminatedLine(s, "continued", true)

	if s.IsWrappedLine(0) {
		t.Error("line 0 should not be wrapped")
	}
	if !s.IsWrappedLine(1) {
		t.Error("line 1 should be wrapped")
	}
	if s.IsWrappedLine(7) {
		t.Error("out-of-range wrap query should report false")
	}
}

func TestCompactStore_EmptyLine(t *testing.T) {
	s := NewCompactStore(10)
	defer s.Close()

	s.AddLine(false) // terminate with no cells appended, and no line at all yet
	addTerminatedLine(s, "", false)

	if s.Lines() != 1 {
		t.Fatalf("expected 1 line, got %d", s.Lines())
	}
	if s.LineLen(0) != 0 {
		t.Errorf("expected empty line, got length %d", s.LineLen(0))
	}
	s.GetCells(0, 0, 0, nil)
}

func TestCompactStore_StylesSurvive(t *testing.T) {
	s := NewCompactStore(10)
	defer s.Close()

	green := Color{Mode: ColorModeStandard, Value: 2}
	line := styledRun("ok", AttrBold, green)
	line = append(line, styledRun(" done", 0, DefaultFG)...)
	s.AddCells(line)
	s.AddLine(false)

	got := make([]Cell, len(line))
	s.GetCells(0, 0, len(line), got)

	if got[0].Attr != AttrBold || got[0].FG != green {
		t.Errorf("styled prefix lost: %+v", got[0])
	}
	if got[3].Attr != 0 || got[3].FG != DefaultFG {
		t.Errorf("plain suffix corrupted: %+v", got[3])
	}
	if cellsToString(got) != "ok done" {
		t.Errorf("expected 'ok done', got %q", cellsToString(got))
	}
}

func TestCompactStore_OutOfRangePanics(t *testing.T) {
	s := NewCompactStore(10)
	defer s.Close()

	addTerminatedLine(s, "abc", false)

	buf := make([]Cell, 2)
	expectPanic(t, "bad line", func() { s.GetCells(5, 0, 2, buf) })
	expectPanic(t, "bad line length", func() { s.LineLen(5) })
	expectPanic(t, "range past end", func() { s.GetCells(0, 2, 2, buf) })
}
