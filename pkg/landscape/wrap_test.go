package landscape

import "testing"

func TestWrap(t *testing.T) {
	tests := []struct {
		index, n, expected int
	}{
		{0, 128, 0},
		{127, 128, 127},
		{128, 128, 0},
		{-1, 128, 127},
		{-129, 128, 127},
		{300, 256, 44},
		{7, 8, 7},
		{9, 8, 1},
	}

	for _, tc := range tests {
		if got := Wrap(tc.index, tc.n); got != tc.expected {
			t.Errorf("Wrap(%d, %d) = %d, expected %d", tc.index, tc.n, got, tc.expected)
		}
	}
}
