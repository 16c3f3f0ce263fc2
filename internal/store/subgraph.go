package store

import (
	"context"
	"fmt"

	"github.com/persistorai/graphloader/internal/metrics"
	"github.com/persistorai/graphloader/internal/models"
	"github.com/persistorai/graphloader/internal/query"
)

// SubgraphStore samples multi-hop neighborhoods.
type SubgraphStore struct {
	Base
}

// NewSubgraphStore creates a SubgraphStore.
func NewSubgraphStore(base Base) *SubgraphStore {
	return &SubgraphStore{Base: base}
}

// Sample runs the layered traversal from start as one statement batch and
// returns the unioned edges as a [4, M] array.
func (s *SubgraphStore) Sample(ctx context.Context, space string, start []int64, layers []models.LayerSpec) (models.EdgeArray, error) {
	stmt, err := query.BuildTraversal(space, start, layers)
	if err != nil {
		return models.EdgeArray{}, fmt.Errorf("sampling subgraph: %w", err)
	}

	res, err := s.execute(ctx, metrics.OpSample, stmt)
	if err != nil {
		return models.EdgeArray{}, fmt.Errorf("sampling subgraph: %w", err)
	}

	edges, err := MaterializeEdges(res.Rows)
	if err != nil {
		return models.EdgeArray{}, fmt.Errorf("materializing subgraph: %w", err)
	}

	return edges, nil
}
