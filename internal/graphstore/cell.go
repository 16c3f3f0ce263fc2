package graphstore

import (
	"fmt"
	"strconv"

	"github.com/persistorai/graphloader/internal/models"
)

// CellKind is the runtime tag of a result cell.
type CellKind uint8

// Cell kinds reported by the store.
const (
	KindNull CellKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindOther
)

// String returns the lowercase kind name.
func (k CellKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "other"
	}
}

// Cell is one type-tagged value of a result row. Exactly one payload field
// is meaningful, selected by Kind.
type Cell struct {
	Kind CellKind
	i    int64
	f    float64
	s    string
	b    bool
}

// Null returns a null cell.
func Null() Cell { return Cell{Kind: KindNull} }

// Int returns an integer cell.
func Int(v int64) Cell { return Cell{Kind: KindInt, i: v} }

// Float returns a floating point cell.
func Float(v float64) Cell { return Cell{Kind: KindFloat, f: v} }

// String returns a string cell.
func String(v string) Cell { return Cell{Kind: KindString, s: v} }

// Bool returns a boolean cell.
func Bool(v bool) Cell { return Cell{Kind: KindBool, b: v} }

// Other returns a cell of a kind this package does not decode; typeName is
// kept for error messages.
func Other(typeName string) Cell { return Cell{Kind: KindOther, s: typeName} }

// AsInt returns the integer payload or an ErrTypeMismatch error.
func (c Cell) AsInt() (int64, error) {
	if c.Kind != KindInt {
		return 0, fmt.Errorf("%w: want int, got %s", models.ErrTypeMismatch, c.describe())
	}

	return c.i, nil
}

// AsFloat returns the numeric payload as float64. Integer cells are
// converted; any other kind is an ErrTypeMismatch.
func (c Cell) AsFloat() (float64, error) {
	switch c.Kind {
	case KindFloat:
		return c.f, nil
	case KindInt:
		return float64(c.i), nil
	default:
		return 0, fmt.Errorf("%w: want numeric, got %s", models.ErrTypeMismatch, c.describe())
	}
}

// GoString renders the cell for debugging.
func (c Cell) GoString() string {
	switch c.Kind {
	case KindInt:
		return strconv.FormatInt(c.i, 10)
	case KindFloat:
		return strconv.FormatFloat(c.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(c.s)
	case KindBool:
		return strconv.FormatBool(c.b)
	default:
		return c.describe()
	}
}

func (c Cell) describe() string {
	if c.Kind == KindOther && c.s != "" {
		return c.s
	}

	return c.Kind.String()
}

// Row is one result row in column order.
type Row []Cell

// Result is the tabular outcome of one executed statement batch.
type Result struct {
	Columns []string
	Rows    []Row
}
