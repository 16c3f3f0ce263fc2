// Package models defines the request and result types shared by the query
// builder, the store layer, and the public channel.
package models

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unbounded marks an open side of a TimeRange or an uncapped Limit.
const Unbounded int64 = -1

// Direction selects how a layer walks its edge type.
type Direction int8

// Supported traversal directions. Values match the wire encoding used by
// existing sampler configs (0, 1, 2).
const (
	Forward       Direction = 0
	Reverse       Direction = 1
	Bidirectional Direction = 2
)

// String returns the config spelling of d.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "src_to_dst"
	case Reverse:
		return "dst_to_src"
	case Bidirectional:
		return "bidirect"
	default:
		return fmt.Sprintf("Direction(%d)", int8(d))
	}
}

// Valid reports whether d is one of the three supported directions.
func (d Direction) Valid() bool {
	return d == Forward || d == Reverse || d == Bidirectional
}

// ParseDirection parses the config spelling of a direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "src_to_dst", "forward":
		return Forward, nil
	case "1", "dst_to_src", "reverse":
		return Reverse, nil
	case "2", "bidirect", "both":
		return Bidirectional, nil
	default:
		return Forward, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int8(d))
	}

	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// TimeRange bounds edge timestamps. A negative side is unbounded.
type TimeRange struct {
	Lo int64 `json:"min_time" yaml:"min_time"`
	Hi int64 `json:"max_time" yaml:"max_time"`
}

// HasLo reports whether the lower bound is set.
func (r TimeRange) HasLo() bool { return r.Lo >= 0 }

// HasHi reports whether the upper bound is set.
func (r TimeRange) HasHi() bool { return r.Hi >= 0 }

// LayerSpec is one hop's sampling rule.
type LayerSpec struct {
	EdgeType  string `json:"edge_type" yaml:"edge_type"`
	Limit     int64  `json:"limit" yaml:"limit"`
	TimeRange `yaml:",inline"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// LayerOption customizes a LayerSpec built by NewLayerSpec.
type LayerOption func(*LayerSpec)

// WithLimit caps the number of sampled rows for the layer. Zero is a real cap.
func WithLimit(n int64) LayerOption {
	return func(l *LayerSpec) { l.Limit = n }
}

// WithTimeRange sets both timestamp bounds.
func WithTimeRange(lo, hi int64) LayerOption {
	return func(l *LayerSpec) { l.TimeRange = TimeRange{Lo: lo, Hi: hi} }
}

// WithMinTime sets the inclusive lower timestamp bound.
func WithMinTime(lo int64) LayerOption {
	return func(l *LayerSpec) { l.TimeRange.Lo = lo }
}

// WithMaxTime sets the inclusive upper timestamp bound.
func WithMaxTime(hi int64) LayerOption {
	return func(l *LayerSpec) { l.TimeRange.Hi = hi }
}

// WithDirection sets the traversal direction.
func WithDirection(d Direction) LayerOption {
	return func(l *LayerSpec) { l.Direction = d }
}

// NewLayerSpec returns a forward, uncapped, unfiltered layer over edgeType
// with opts applied.
func NewLayerSpec(edgeType string, opts ...LayerOption) LayerSpec {
	l := LayerSpec{
		EdgeType:  edgeType,
		Limit:     Unbounded,
		TimeRange: TimeRange{Lo: Unbounded, Hi: Unbounded},
		Direction: Forward,
	}

	for _, opt := range opts {
		opt(&l)
	}

	return l
}

// UnmarshalYAML fills unset fields with the NewLayerSpec defaults so that a
// layer file only needs to name what it changes.
func (l *LayerSpec) UnmarshalYAML(value *yaml.Node) error {
	type plain LayerSpec

	p := plain(NewLayerSpec(""))
	if err := value.Decode(&p); err != nil {
		return err
	}

	*l = LayerSpec(p)

	return nil
}

// Validate checks a layer at position idx.
func (l *LayerSpec) Validate(idx int) error {
	if strings.TrimSpace(l.EdgeType) == "" {
		return ErrLayerField(idx, "edge_type", "is required")
	}

	if !isIdentifier(l.EdgeType) {
		return ErrLayerField(idx, "edge_type", fmt.Sprintf("%q is not an identifier", l.EdgeType))
	}

	if !l.Direction.Valid() {
		return fmt.Errorf("layer %d: %w: %d", idx, ErrInvalidDirection, int8(l.Direction))
	}

	return nil
}

// ValidateAttribute checks that an attribute name can be embedded in a query.
func ValidateAttribute(name string) error {
	if !isIdentifier(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAttribute, name)
	}

	return nil
}

// isIdentifier reports whether s is a plain schema identifier (letters,
// digits, underscore; not starting with a digit).
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}

	return true
}

// ValidateSpace checks that a space name can be embedded in a query.
func ValidateSpace(space string) error {
	if !isIdentifier(space) {
		return fmt.Errorf("%w: %q", ErrInvalidSpace, space)
	}

	return nil
}
