package store_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/persistorai/graphloader/internal/graphstore"
	"github.com/persistorai/graphloader/internal/graphstore/graphstoretest"
	"github.com/persistorai/graphloader/internal/models"
	"github.com/persistorai/graphloader/internal/store"
)

func TestMaterializeEdges(t *testing.T) {
	res := graphstoretest.Rows(
		[]any{1, 2, 0, 100},
		[]any{1, 3, 0, 110},
		[]any{2, 4, 1, 120},
	)

	edges, err := store.MaterializeEdges(res.Rows)
	if err != nil {
		t.Fatalf("MaterializeEdges: %v", err)
	}

	if edges.Shape() != [2]int{4, 3} {
		t.Fatalf("shape = %v, want [4 3]", edges.Shape())
	}

	checks := []struct {
		name string
		got  []int64
		want []int64
	}{
		{name: "src", got: edges.Src(), want: []int64{1, 1, 2}},
		{name: "dst", got: edges.Dst(), want: []int64{2, 3, 4}},
		{name: "dist", got: edges.Dist(), want: []int64{0, 0, 1}},
		{name: "timestamp", got: edges.Timestamp(), want: []int64{100, 110, 120}},
	}
	for _, c := range checks {
		if !slices.Equal(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestMaterializeEdges_Empty(t *testing.T) {
	edges, err := store.MaterializeEdges(nil)
	if err != nil {
		t.Fatalf("MaterializeEdges: %v", err)
	}

	if edges.Len() != 0 || len(edges.Data) != 0 {
		t.Errorf("expected empty array, got %+v", edges)
	}
}

func TestMaterializeEdges_TypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		row  []any
	}{
		{name: "string src", row: []any{"a", 2, 0, 100}},
		{name: "float dst", row: []any{1, 2.5, 0, 100}},
		{name: "null timestamp", row: []any{1, 2, 0, nil}},
		{name: "string dist", row: []any{1, 2, "0", 100}},
		{name: "short row", row: []any{1, 2, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := graphstoretest.Rows([]any{1, 2, 0, 100}, tc.row)

			edges, err := store.MaterializeEdges(res.Rows)
			if !errors.Is(err, models.ErrTypeMismatch) {
				t.Fatalf("err = %v, want ErrTypeMismatch", err)
			}

			if edges.Data != nil {
				t.Error("partial array returned on failure")
			}
		})
	}
}

func TestMaterializeEdges_DistanceInRange(t *testing.T) {
	const layers = 3

	rows := make([]graphstore.Row, 0, 30)
	for i := 0; i < 30; i++ {
		rows = append(rows, graphstore.Row{
			graphstore.Int(int64(i)), graphstore.Int(int64(i + 1)),
			graphstore.Int(int64(i % layers)), graphstore.Int(1000),
		})
	}

	edges, err := store.MaterializeEdges(rows)
	if err != nil {
		t.Fatalf("MaterializeEdges: %v", err)
	}

	for k, d := range edges.Dist() {
		if d < 0 || d >= layers {
			t.Errorf("dist[%d] = %d out of [0, %d)", k, d, layers)
		}
	}
}
