package store

import (
	"context"
	"fmt"

	"github.com/persistorai/graphloader/internal/metrics"
	"github.com/persistorai/graphloader/internal/models"
	"github.com/persistorai/graphloader/internal/query"
)

// DefaultBatchSize is the number of start vertices fetched per statement.
const DefaultBatchSize = 512

// AttributeStore gathers numeric vertex attributes in fixed-size windows.
type AttributeStore struct {
	Base
	batchSize int
}

// NewAttributeStore creates an AttributeStore. A non-positive batchSize
// selects DefaultBatchSize.
func NewAttributeStore(base Base, batchSize int) *AttributeStore {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &AttributeStore{Base: base, batchSize: batchSize}
}

// BatchSize returns the window size used by Gather.
func (s *AttributeStore) BatchSize() int { return s.batchSize }

// Gather fetches attrs for start, one window at a time on the calling
// goroutine. Duplicates are collapsed within a window only, so an id
// repeated across windows appears once per window that holds it.
func (s *AttributeStore) Gather(ctx context.Context, space string, start []int64, attrs []string) (models.AttributeArrays, error) {
	if err := models.ValidateSpace(space); err != nil {
		return models.AttributeArrays{}, err
	}

	for _, a := range attrs {
		if err := models.ValidateAttribute(a); err != nil {
			return models.AttributeArrays{}, err
		}
	}

	n, f := len(start), len(attrs)
	out := models.AttributeArrays{
		Index:    make([]int64, 0, n),
		Attrs:    make([]float32, 0, n*f),
		Features: f,
	}

	vals := make([]float32, f)

	for t := 0; t < n; t += s.batchSize {
		window := start[t:min(t+s.batchSize, n)]

		stmt, err := query.BuildFetch(space, dedupWindow(window), attrs)
		if err != nil {
			return models.AttributeArrays{}, fmt.Errorf("gathering attributes: %w", err)
		}

		res, err := s.execute(ctx, metrics.OpGather, stmt)
		if err != nil {
			return models.AttributeArrays{}, fmt.Errorf("gathering attributes for window at %d: %w", t, err)
		}

		for i, row := range res.Rows {
			id, err := scanAttributeRow(row, vals)
			if err != nil {
				return models.AttributeArrays{}, fmt.Errorf("scanning attribute row %d of window at %d: %w", i, t, err)
			}

			out.Index = append(out.Index, id)
			out.Attrs = append(out.Attrs, vals...)
		}
	}

	return out.Truncate(out.Len()), nil
}

// dedupWindow returns ids without repeats, keeping first occurrences in order.
func dedupWindow(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
