// Package query compiles sampling requests into graph store statements.
//
// Statements are assembled from typed clauses and rendered once; the
// rendered text is the wire contract with the store and is kept stable
// byte-for-byte.
package query

import (
	"strconv"
	"strings"

	"github.com/persistorai/graphloader/internal/models"
)

// Edge property holding the event time of an edge.
const timestampProp = "properties(edge).time_stamp"

// statement renders itself, including its trailing "; " terminator.
type statement interface {
	render(sb *strings.Builder)
}

// Builder collects statements in order.
type Builder struct {
	stmts []statement
}

func (b *Builder) add(s statement) *Builder {
	b.stmts = append(b.stmts, s)

	return b
}

// String renders every statement in insertion order.
func (b *Builder) String() string {
	var sb strings.Builder
	for _, s := range b.stmts {
		s.render(&sb)
	}

	return sb.String()
}

type useStmt struct {
	space string
}

func (u useStmt) render(sb *strings.Builder) {
	sb.WriteString("USE ")
	sb.WriteString(u.space)
	sb.WriteString("; ")
}

// source is where a GO statement starts: literal ids or the destinations of
// an earlier bound result.
type source struct {
	ids   []int64
	bound int
}

func (s source) render(sb *strings.Builder) {
	if s.ids == nil {
		sb.WriteString(varName(s.bound))
		sb.WriteString(".dst")

		return
	}

	writeIDs(sb, s.ids)
}

// goStmt is one layer: "$vK = GO FROM ... OVER ... YIELD DISTINCT ...".
type goStmt struct {
	bind   int
	from   source
	over   string
	dir    models.Direction
	window models.TimeRange
	sample int64
}

func (g goStmt) render(sb *strings.Builder) {
	sb.WriteString(varName(g.bind))
	sb.WriteString(" = GO FROM ")
	g.from.render(sb)
	sb.WriteString(" OVER ")
	sb.WriteString(g.over)
	sb.WriteString(directionClause(g.dir))
	sb.WriteString(timeFilter(g.window))
	sb.WriteString(" YIELD DISTINCT id($^) as src, id($$) as dst, " + timestampProp + " as `timestamp`")

	if g.sample >= 0 {
		sb.WriteString(" SAMPLE [")
		sb.WriteString(strconv.FormatInt(g.sample, 10))
		sb.WriteString("]")
	}

	sb.WriteString("; ")
}

// unionStmt yields every bound layer result labeled with its hop distance.
type unionStmt struct {
	layers int
}

func (u unionStmt) render(sb *strings.Builder) {
	for k := 0; k < u.layers; k++ {
		if k > 0 {
			sb.WriteString(" UNION ")
		}

		v := varName(k)
		sb.WriteString("YIELD ")
		sb.WriteString(v + ".src as src, ")
		sb.WriteString(v + ".dst as dst, ")
		sb.WriteString(strconv.Itoa(k) + " as DIST, ")
		sb.WriteString(v + ".`timestamp` as `timestamp`")
	}

	sb.WriteString("; ")
}

// fetchStmt reads vertex properties: "FETCH PROP ON * ids YIELD ...".
type fetchStmt struct {
	ids   []int64
	attrs []string
}

func (f fetchStmt) render(sb *strings.Builder) {
	sb.WriteString("FETCH PROP ON * ")
	writeIDs(sb, f.ids)
	sb.WriteString(" YIELD id(vertex) as nid")

	for _, a := range f.attrs {
		sb.WriteString(", properties(vertex).")
		sb.WriteString(a)
		sb.WriteString(" as `")
		sb.WriteString(a)
		sb.WriteString("`")
	}

	sb.WriteString("; ")
}

func varName(k int) string {
	return "$v" + strconv.Itoa(k)
}

func writeIDs(sb *strings.Builder, ids []int64) {
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(strconv.FormatInt(id, 10))
	}
}

// directionClause maps a direction to its GO modifier. Forward has none.
func directionClause(d models.Direction) string {
	switch d {
	case models.Reverse:
		return " REVERSELY"
	case models.Bidirectional:
		return " BIDIRECT"
	default:
		return ""
	}
}

// timeFilter returns the WHERE clause for r. Negative bounds are open.
func timeFilter(r models.TimeRange) string {
	lo := strconv.FormatInt(r.Lo, 10)
	hi := strconv.FormatInt(r.Hi, 10)

	switch {
	case r.HasLo() && r.HasHi():
		return " WHERE " + timestampProp + " >= " + lo + " AND " + timestampProp + " <= " + hi
	case r.HasLo():
		return " WHERE " + timestampProp + " >= " + lo
	case r.HasHi():
		return " WHERE " + timestampProp + " <= " + hi
	default:
		return ""
	}
}
