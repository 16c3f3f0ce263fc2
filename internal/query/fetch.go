package query

import (
	"fmt"

	"github.com/persistorai/graphloader/internal/models"
)

// BuildFetch compiles a bulk property fetch over ids. Ids are emitted in
// the given order; the caller is responsible for deduplication.
func BuildFetch(space string, ids []int64, attrs []string) (string, error) {
	if err := models.ValidateSpace(space); err != nil {
		return "", err
	}

	if len(ids) == 0 {
		return "", models.ErrNoStartVertices
	}

	for _, a := range attrs {
		if err := models.ValidateAttribute(a); err != nil {
			return "", fmt.Errorf("building fetch: %w", err)
		}
	}

	return new(Builder).
		add(useStmt{space: space}).
		add(fetchStmt{ids: ids, attrs: attrs}).
		String(), nil
}
