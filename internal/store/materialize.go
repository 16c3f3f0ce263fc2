package store

import (
	"fmt"

	"github.com/persistorai/graphloader/internal/graphstore"
	"github.com/persistorai/graphloader/internal/models"
)

// edgeColumns names the columns of the union projection, in EdgeArray row order.
var edgeColumns = [models.EdgeRows]string{"src", "dst", "DIST", "timestamp"}

// MaterializeEdges copies union projection rows into a [4, M] array.
// Every cell must be an integer; the first violation aborts with
// ErrTypeMismatch and no array.
func MaterializeEdges(rows []graphstore.Row) (models.EdgeArray, error) {
	out := models.NewEdgeArray(len(rows))

	for k, row := range rows {
		if len(row) < models.EdgeRows {
			return models.EdgeArray{}, fmt.Errorf("scanning edge row %d: %w: got %d columns, want %d",
				k, models.ErrTypeMismatch, len(row), models.EdgeRows)
		}

		for r, name := range edgeColumns {
			v, err := row[r].AsInt()
			if err != nil {
				return models.EdgeArray{}, fmt.Errorf("scanning edge row %d column %s: %w", k, name, err)
			}

			out.Set(r, k, v)
		}
	}

	return out, nil
}

// scanAttributeRow decodes "nid, attr..." into id and vals. vals must have
// room for exactly f values.
func scanAttributeRow(row graphstore.Row, vals []float32) (int64, error) {
	if len(row) < len(vals)+1 {
		return 0, fmt.Errorf("%w: got %d columns, want %d", models.ErrTypeMismatch, len(row), len(vals)+1)
	}

	id, err := row[0].AsInt()
	if err != nil {
		return 0, fmt.Errorf("column nid: %w", err)
	}

	for i := range vals {
		x, err := row[i+1].AsFloat()
		if err != nil {
			return 0, fmt.Errorf("vertex %d attribute %d: %w", id, i, err)
		}

		vals[i] = float32(x)
	}

	return id, nil
}
