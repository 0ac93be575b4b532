package gif

import "testing"

// TestPlacerInterlaceRowOrder checks the classic four-pass row order for
// an 8-row image: pass starts 0,4,2,1 with strides 8,8,4,2 (spec §4.3).
func TestPlacerInterlaceRowOrder(t *testing.T) {
	rect := FrameRect{X: 0, Y: 0, W: 1, H: 8}
	placer := NewPlacer(rect, true)

	want := []int{0, 4, 2, 6, 1, 3, 5, 7}
	for linear, wantRow := range want {
		row, col := placer.Place(linear)
		if row != wantRow || col != 0 {
			t.Fatalf("Place(%d) = (%d,%d), want (%d,0)", linear, row, col, wantRow)
		}
	}
}

func TestPlacerNonInterlacedIsRowMajor(t *testing.T) {
	rect := FrameRect{X: 2, Y: 3, W: 4, H: 2}
	placer := NewPlacer(rect, false)

	cases := []struct {
		linear   int
		row, col int
	}{
		{0, 3, 2},
		{3, 3, 5},
		{4, 4, 2},
		{7, 4, 5},
	}
	for _, c := range cases {
		row, col := placer.Place(c.linear)
		if row != c.row || col != c.col {
			t.Fatalf("Place(%d) = (%d,%d), want (%d,%d)", c.linear, row, col, c.row, c.col)
		}
	}
	if got, want := placer.Total(), 8; got != want {
		t.Fatalf("Total() = %d, want %d", got, want)
	}
}
