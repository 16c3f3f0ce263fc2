package models

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Rows of an EdgeArray.
const (
	EdgeSrc = iota
	EdgeDst
	EdgeDist
	EdgeTimestamp

	EdgeRows
)

// EdgeArray is a dense int64 array of shape [4, M], stored row-major.
// Row 0 holds sources, 1 destinations, 2 hop distances, 3 timestamps.
type EdgeArray struct {
	Data []int64 `json:"data"`
	M    int     `json:"m"`
}

// NewEdgeArray allocates a zeroed [4, m] array.
func NewEdgeArray(m int) EdgeArray {
	return EdgeArray{Data: make([]int64, EdgeRows*m), M: m}
}

// Len returns the number of edges (columns).
func (a EdgeArray) Len() int { return a.M }

// Shape returns {4, M}.
func (a EdgeArray) Shape() [2]int { return [2]int{EdgeRows, a.M} }

// Row returns row r as a slice sharing the array's storage.
func (a EdgeArray) Row(r int) []int64 {
	return a.Data[r*a.M : (r+1)*a.M]
}

// At returns the value at row r, column k.
func (a EdgeArray) At(r, k int) int64 { return a.Data[r*a.M+k] }

// Set stores v at row r, column k.
func (a EdgeArray) Set(r, k int, v int64) { a.Data[r*a.M+k] = v }

// Src returns the source row.
func (a EdgeArray) Src() []int64 { return a.Row(EdgeSrc) }

// Dst returns the destination row.
func (a EdgeArray) Dst() []int64 { return a.Row(EdgeDst) }

// Dist returns the hop distance row.
func (a EdgeArray) Dist() []int64 { return a.Row(EdgeDist) }

// Timestamp returns the timestamp row.
func (a EdgeArray) Timestamp() []int64 { return a.Row(EdgeTimestamp) }

// VertexIDs returns the sorted, unique union of sources and destinations.
func (a EdgeArray) VertexIDs() []int64 {
	ids := make([]int64, 0, 2*a.M)
	ids = append(ids, a.Src()...)
	ids = append(ids, a.Dst()...)
	slices.Sort(ids)

	return slices.Compact(ids)
}

// AttributeArrays holds gathered vertex ids and their attributes.
// Attrs is row-major with shape [len(Index), Features].
type AttributeArrays struct {
	Index    []int64   `json:"index"`
	Attrs    []float32 `json:"attrs"`
	Features int       `json:"features"`
}

// NewAttributeArrays allocates arrays with room for n vertices and f features.
func NewAttributeArrays(n, f int) AttributeArrays {
	return AttributeArrays{
		Index:    make([]int64, n),
		Attrs:    make([]float32, n*f),
		Features: f,
	}
}

// Len returns the number of vertices K.
func (a AttributeArrays) Len() int { return len(a.Index) }

// Shape returns the attribute matrix shape {K, F}.
func (a AttributeArrays) Shape() [2]int { return [2]int{len(a.Index), a.Features} }

// Row returns the attributes of the k-th vertex, sharing storage.
func (a AttributeArrays) Row(k int) []float32 {
	return a.Attrs[k*a.Features : (k+1)*a.Features]
}

// Truncate trims both arrays to the first k vertices.
func (a AttributeArrays) Truncate(k int) AttributeArrays {
	return AttributeArrays{
		Index:    a.Index[:k:k],
		Attrs:    a.Attrs[: k*a.Features : k*a.Features],
		Features: a.Features,
	}
}

// SortedByIndex returns a copy with vertices ordered by ascending id. Each
// attribute row moves with its id.
func (a AttributeArrays) SortedByIndex() AttributeArrays {
	order := make([]int, a.Len())
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int { return cmp.Compare(a.Index[x], a.Index[y]) })

	out := NewAttributeArrays(a.Len(), a.Features)
	for k, i := range order {
		out.Index[k] = a.Index[i]
		copy(out.Row(k), a.Row(i))
	}

	return out
}

// Dense copies the attribute matrix into a float64 gonum matrix.
// It returns nil when the matrix is empty since gonum rejects zero dimensions.
func (a AttributeArrays) Dense() *mat.Dense {
	k, f := a.Shape()[0], a.Shape()[1]
	if k == 0 || f == 0 {
		return nil
	}

	data := make([]float64, len(a.Attrs))
	for i, v := range a.Attrs {
		data[i] = float64(v)
	}

	return mat.NewDense(k, f, data)
}

// Block is a sampled neighborhood together with the attributes of every
// vertex it touches.
type Block struct {
	Edges    EdgeArray       `json:"edges"`
	Vertices AttributeArrays `json:"vertices"`
}
