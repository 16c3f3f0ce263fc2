package channel

import (
	"github.com/persistorai/graphloader/internal/graphstore"
	"github.com/persistorai/graphloader/internal/models"
)

// LayerSpec is one hop's sampling rule.
type LayerSpec = models.LayerSpec

// TimeRange bounds edge timestamps; a negative side is unbounded.
type TimeRange = models.TimeRange

// Direction selects how a layer walks its edge type.
type Direction = models.Direction

// LayerOption customizes a LayerSpec built by NewLayerSpec.
type LayerOption = models.LayerOption

// EdgeArray is the [4, M] result of SampleSubgraph.
type EdgeArray = models.EdgeArray

// AttributeArrays is the (index, [K, F] attrs) result of GatherAttributes.
type AttributeArrays = models.AttributeArrays

// Block is the result of SampleBlock.
type Block = models.Block

// Traversal directions.
const (
	Forward       = models.Forward
	Reverse       = models.Reverse
	Bidirectional = models.Bidirectional
)

// Unbounded marks an open time bound or an uncapped limit.
const Unbounded = models.Unbounded

// Layer constructors, re-exported from models.
var (
	NewLayerSpec   = models.NewLayerSpec
	WithLimit      = models.WithLimit
	WithTimeRange  = models.WithTimeRange
	WithMinTime    = models.WithMinTime
	WithMaxTime    = models.WithMaxTime
	WithDirection  = models.WithDirection
	ParseDirection = models.ParseDirection
)

// Rows of an EdgeArray.
const (
	EdgeSrc       = models.EdgeSrc
	EdgeDst       = models.EdgeDst
	EdgeDist      = models.EdgeDist
	EdgeTimestamp = models.EdgeTimestamp
)

// SessionPool is the pool contract accepted by New. Open builds the
// NebulaGraph-backed implementation; callers may supply their own.
type SessionPool = graphstore.SessionPool

// Session is one leased connection of a SessionPool.
type Session = graphstore.Session

// Result is the tabular outcome of a statement batch.
type Result = graphstore.Result

// Row is one result row in column order.
type Row = graphstore.Row

// Cell is one type-tagged value of a Row.
type Cell = graphstore.Cell

// Cell constructors for SessionPool implementations.
var (
	NullCell   = graphstore.Null
	IntCell    = graphstore.Int
	FloatCell  = graphstore.Float
	StringCell = graphstore.String
	BoolCell   = graphstore.Bool
)
