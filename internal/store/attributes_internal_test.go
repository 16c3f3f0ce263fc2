package store

import (
	"slices"
	"testing"
)

func TestDedupWindow(t *testing.T) {
	tests := []struct {
		in   []int64
		want []int64
	}{
		{in: []int64{5, 5, 6}, want: []int64{5, 6}},
		{in: []int64{3, 1, 3, 2, 1}, want: []int64{3, 1, 2}},
		{in: []int64{}, want: []int64{}},
		{in: []int64{-1, 0, -1}, want: []int64{-1, 0}},
	}

	for _, tc := range tests {
		if got := dedupWindow(tc.in); !slices.Equal(got, tc.want) {
			t.Errorf("dedupWindow(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
