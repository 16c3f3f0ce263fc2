package query

import (
	"fmt"

	"github.com/persistorai/graphloader/internal/models"
)

// BuildTraversal compiles layers into one multi-statement query. Layer k
// starts from the destinations of layer k-1 (layer 0 from start), and the
// final statement unions every layer labeled with its index as DIST.
func BuildTraversal(space string, start []int64, layers []models.LayerSpec) (string, error) {
	if err := models.ValidateSpace(space); err != nil {
		return "", err
	}

	if len(layers) == 0 {
		return "", models.ErrNoLayers
	}

	if len(start) == 0 {
		return "", models.ErrNoStartVertices
	}

	b := new(Builder).add(useStmt{space: space})

	for k := range layers {
		l := &layers[k]
		if err := l.Validate(k); err != nil {
			return "", fmt.Errorf("building traversal: %w", err)
		}

		from := source{bound: k - 1}
		if k == 0 {
			from = source{ids: start}
		}

		b.add(goStmt{
			bind:   k,
			from:   from,
			over:   l.EdgeType,
			dir:    l.Direction,
			window: l.TimeRange,
			sample: l.Limit,
		})
	}

	return b.add(unionStmt{layers: len(layers)}).String(), nil
}
