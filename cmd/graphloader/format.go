package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/persistorai/graphloader/channel"
)

func formatJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode json: %v\n", err)
		os.Exit(1)
	}
}

func formatTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			parts[i] = fmt.Sprintf("%-*s", w, cell)
		}
		fmt.Println(strings.Join(parts, "  "))
	}

	printRow(headers)
	seps := make([]string, len(headers))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}
	printRow(seps)
	for _, row := range rows {
		printRow(row)
	}
}

// edgeView is the JSON shape of an EdgeArray: one list per row.
type edgeView struct {
	Shape     [2]int  `json:"shape"`
	Src       []int64 `json:"src"`
	Dst       []int64 `json:"dst"`
	Dist      []int64 `json:"dist"`
	Timestamp []int64 `json:"timestamp"`
}

func newEdgeView(e channel.EdgeArray) edgeView {
	return edgeView{
		Shape:     e.Shape(),
		Src:       e.Src(),
		Dst:       e.Dst(),
		Dist:      e.Dist(),
		Timestamp: e.Timestamp(),
	}
}

// attrView is the JSON shape of AttributeArrays with one nested list per vertex.
type attrView struct {
	Shape [2]int      `json:"shape"`
	Names []string    `json:"names,omitempty"`
	Index []int64     `json:"index"`
	Attrs [][]float32 `json:"attrs"`
}

func newAttrView(a channel.AttributeArrays, names []string) attrView {
	rows := make([][]float32, a.Len())
	for k := range rows {
		rows[k] = a.Row(k)
	}
	return attrView{Shape: a.Shape(), Names: names, Index: a.Index, Attrs: rows}
}

func i64(v int64) string { return strconv.FormatInt(v, 10) }

func outputEdges(e channel.EdgeArray) {
	if flagFmt != "table" {
		formatJSON(newEdgeView(e))
		return
	}

	rows := make([][]string, e.Len())
	for k := range rows {
		rows[k] = []string{
			i64(e.At(channel.EdgeSrc, k)),
			i64(e.At(channel.EdgeDst, k)),
			i64(e.At(channel.EdgeDist, k)),
			i64(e.At(channel.EdgeTimestamp, k)),
		}
	}
	formatTable([]string{"SRC", "DST", "DIST", "TIMESTAMP"}, rows)
}

func outputAttributes(a channel.AttributeArrays, names []string) {
	if flagFmt != "table" {
		formatJSON(newAttrView(a, names))
		return
	}

	headers := append([]string{"ID"}, names...)
	rows := make([][]string, a.Len())
	for k := range rows {
		row := []string{i64(a.Index[k])}
		for _, v := range a.Row(k) {
			row = append(row, strconv.FormatFloat(float64(v), 'g', -1, 32))
		}
		rows[k] = row
	}
	formatTable(headers, rows)
}

func outputBlock(b *channel.Block, names []string) {
	if flagFmt != "table" {
		formatJSON(struct {
			Edges    edgeView `json:"edges"`
			Vertices attrView `json:"vertices"`
		}{newEdgeView(b.Edges), newAttrView(b.Vertices, names)})
		return
	}

	outputEdges(b.Edges)
	fmt.Println()
	outputAttributes(b.Vertices, names)
}
