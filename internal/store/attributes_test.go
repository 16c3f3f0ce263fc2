package store_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/persistorai/graphloader/internal/graphstore"
	"github.com/persistorai/graphloader/internal/graphstore/graphstoretest"
	"github.com/persistorai/graphloader/internal/models"
	"github.com/persistorai/graphloader/internal/store"
)

var ages = map[int64][]any{
	5: {31},
	6: {42.5},
	7: {18},
	8: {65},
}

func TestGather_DedupsWithinWindow(t *testing.T) {
	base, pool, _ := newTestBase(t, graphstoretest.Vertices(ages))
	as := store.NewAttributeStore(base, 3)

	out, err := as.Gather(context.Background(), "social", []int64{5, 5, 6}, []string{"age"})
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	if !slices.Equal(out.Index, []int64{5, 6}) {
		t.Errorf("index = %v, want [5 6]", out.Index)
	}

	if out.Shape() != [2]int{2, 1} {
		t.Errorf("attrs shape = %v, want [2 1]", out.Shape())
	}

	if !slices.Equal(out.Attrs, []float32{31, 42.5}) {
		t.Errorf("attrs = %v, want [31 42.5]", out.Attrs)
	}

	stmts := pool.Statements()
	if len(stmts) != 1 || !strings.Contains(stmts[0], "FETCH PROP ON * 5,6 YIELD") {
		t.Errorf("statements = %q", stmts)
	}

	assertBalancedLeases(t, pool, 1)
}

func TestGather_WindowsAndPerWindowDedup(t *testing.T) {
	base, pool, _ := newTestBase(t, graphstoretest.Vertices(ages))
	as := store.NewAttributeStore(base, 2)

	// Windows: [5 6] [6 7] [8]. 6 straddles two windows and is kept twice.
	out, err := as.Gather(context.Background(), "social", []int64{5, 6, 6, 7, 8}, []string{"age"})
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	if !slices.Equal(out.Index, []int64{5, 6, 6, 7, 8}) {
		t.Errorf("index = %v, want [5 6 6 7 8]", out.Index)
	}

	if got := len(pool.Statements()); got != 3 {
		t.Errorf("statements = %d, want 3", got)
	}

	assertBalancedLeases(t, pool, 3)
}

func TestGather_TrimsToReturnedRows(t *testing.T) {
	base, _, _ := newTestBase(t, graphstoretest.Vertices(ages))
	as := store.NewAttributeStore(base, 512)

	out, err := as.Gather(context.Background(), "social", []int64{5, 99, 6, 100}, []string{"age"})
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	if out.Len() != 2 || len(out.Attrs) != 2 || cap(out.Index) != 2 || cap(out.Attrs) != 2 {
		t.Errorf("expected arrays trimmed to 2 rows, got len %d/%d cap %d/%d",
			len(out.Index), len(out.Attrs), cap(out.Index), cap(out.Attrs))
	}
}

func TestGather_MultipleAttributes(t *testing.T) {
	table := map[int64][]any{
		1: {10, 0.5},
		2: {20, 1.5},
	}
	base, _, _ := newTestBase(t, graphstoretest.Vertices(table))
	as := store.NewAttributeStore(base, 0)

	if as.BatchSize() != store.DefaultBatchSize {
		t.Errorf("BatchSize = %d, want default %d", as.BatchSize(), store.DefaultBatchSize)
	}

	out, err := as.Gather(context.Background(), "social", []int64{2, 1}, []string{"age", "score"})
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	if !slices.Equal(out.Row(0), []float32{20, 1.5}) || !slices.Equal(out.Row(1), []float32{10, 0.5}) {
		t.Errorf("rows = %v / %v", out.Row(0), out.Row(1))
	}
}

func TestGather_EmptyStart(t *testing.T) {
	base, pool, _ := newTestBase(t, graphstoretest.Vertices(ages))
	as := store.NewAttributeStore(base, 512)

	out, err := as.Gather(context.Background(), "social", nil, []string{"age", "score"})
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	if out.Len() != 0 || out.Features != 2 {
		t.Errorf("unexpected arrays: %+v", out)
	}

	if n := len(pool.Statements()); n != 0 {
		t.Errorf("statements = %d, want 0", n)
	}
}

func TestGather_TypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		res  *graphstore.Result
	}{
		{name: "string attribute", res: graphstoretest.Rows([]any{5, "old"})},
		{name: "null attribute", res: graphstoretest.Rows([]any{5, nil})},
		{name: "string id", res: graphstoretest.Rows([]any{"5", 1.0})},
		{name: "missing column", res: graphstoretest.Rows([]any{5})},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			base, pool, _ := newTestBase(t, result(tc.res))
			as := store.NewAttributeStore(base, 512)

			out, err := as.Gather(context.Background(), "social", []int64{5}, []string{"age"})
			if !errors.Is(err, models.ErrTypeMismatch) {
				t.Fatalf("err = %v, want ErrTypeMismatch", err)
			}

			if out.Index != nil {
				t.Error("partial result returned on failure")
			}

			assertBalancedLeases(t, pool, 1)
		})
	}
}

func TestGather_ExecutionFailureStopsBatches(t *testing.T) {
	calls := 0
	base, pool, _ := newTestBase(t, func(stmt string) (*graphstore.Result, error) {
		calls++
		if calls == 2 {
			return nil, models.ErrExecutionFailure
		}
		return graphstoretest.Vertices(ages)(stmt)
	})
	as := store.NewAttributeStore(base, 1)

	_, err := as.Gather(context.Background(), "social", []int64{5, 6, 7}, []string{"age"})
	if !errors.Is(err, models.ErrExecutionFailure) {
		t.Fatalf("err = %v, want ErrExecutionFailure", err)
	}

	if calls != 2 {
		t.Errorf("statements executed = %d, want 2", calls)
	}

	assertBalancedLeases(t, pool, 2)
}

func TestGather_Validation(t *testing.T) {
	base, pool, _ := newTestBase(t, graphstoretest.Vertices(ages))
	as := store.NewAttributeStore(base, 512)

	if _, err := as.Gather(context.Background(), "social", []int64{5}, []string{"bad name"}); !errors.Is(err, models.ErrInvalidAttribute) {
		t.Errorf("err = %v, want ErrInvalidAttribute", err)
	}

	if _, err := as.Gather(context.Background(), "", []int64{5}, nil); !errors.Is(err, models.ErrInvalidSpace) {
		t.Errorf("err = %v, want ErrInvalidSpace", err)
	}

	if n := len(pool.Statements()); n != 0 {
		t.Errorf("statements = %d, want 0", n)
	}
}
