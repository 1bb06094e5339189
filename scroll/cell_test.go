package scroll

import "testing"

func TestSameFormat(t *testing.T) {
	base := Cell{Rune: 'a', FG: Color{Mode: ColorModeStandard, Value: 2}, Attr: AttrBold}

	same := base
	same.Rune = 'b'
	if !SameFormat(base, same) {
		t.Error("cells differing only in rune should be format-equal")
	}

	wide := base
	wide.Wide = true
	if !SameFormat(base, wide) {
		t.Error("width must not participate in format equality")
	}

	colored := base
	colored.BG = Color{Mode: ColorMode256, Value: 17}
	if SameFormat(base, colored) {
		t.Error("cells with different background must not be format-equal")
	}

	styled := base
	styled.Attr |= AttrUnderline
	if SameFormat(base, styled) {
		t.Error("cells with different rendition must not be format-equal")
	}
}

func TestEncodeDecodeCell(t *testing.T) {
	cells := []Cell{
		{Rune: 'x', FG: DefaultFG, BG: DefaultBG},
		{Rune: 'ü', FG: Color{Mode: ColorModeRGB, R: 10, G: 20, B: 30}, BG: Color{Mode: ColorMode256, Value: 250}, Attr: AttrBold | AttrBlink},
		{Rune: '界', FG: DefaultFG, BG: DefaultBG, Wide: true},
	}

	var buf [CellSize]byte
	for _, want := range cells {
		EncodeCell(want, buf[:])
		got := DecodeCell(buf[:])
		if got != want {
			t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
		}
	}
}

func TestTextLineFromString_Wide(t *testing.T) {
	line := TextLineFromString("a日b")

	if len(line) != 4 {
		t.Fatalf("expected 4 cells (wide rune takes two), got %d", len(line))
	}
	if !line[1].Wide {
		t.Error("wide rune cell should be marked Wide")
	}
	if line[2].Rune != 0 {
		t.Error("wide rune should be followed by a spacer cell")
	}
	if line.String() != "a日b" {
		t.Errorf("expected round trip to 'a日b', got %q", line.String())
	}
}

func TestAttributeString(t *testing.T) {
	if got := Attribute(0).String(); got != "none" {
		t.Errorf("expected 'none', got %q", got)
	}
	if got := (AttrBold | AttrReverse).String(); got != "bold|reverse" {
		t.Errorf("expected 'bold|reverse', got %q", got)
	}
}
