package models_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/persistorai/graphloader/internal/models"
)

func TestNewLayerSpec_Defaults(t *testing.T) {
	l := models.NewLayerSpec("follow")

	if l.Limit != models.Unbounded || l.TimeRange.HasLo() || l.TimeRange.HasHi() || l.Direction != models.Forward {
		t.Errorf("unexpected defaults: %+v", l)
	}

	l = models.NewLayerSpec("follow",
		models.WithLimit(0),
		models.WithMinTime(10),
		models.WithMaxTime(20),
		models.WithDirection(models.Bidirectional),
	)
	if l.Limit != 0 || l.Lo != 10 || l.Hi != 20 || l.Direction != models.Bidirectional {
		t.Errorf("options not applied: %+v", l)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want models.Direction
	}{
		{in: "src_to_dst", want: models.Forward},
		{in: "", want: models.Forward},
		{in: "dst_to_src", want: models.Reverse},
		{in: "Reverse", want: models.Reverse},
		{in: "bidirect", want: models.Bidirectional},
		{in: "2", want: models.Bidirectional},
	}

	for _, tc := range tests {
		got, err := models.ParseDirection(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}

	if _, err := models.ParseDirection("sideways"); !errors.Is(err, models.ErrInvalidDirection) {
		t.Errorf("ParseDirection(sideways) err = %v, want ErrInvalidDirection", err)
	}
}

func TestLayerSpec_YAML(t *testing.T) {
	src := `
- edge_type: follow
  limit: 10
  direction: bidirect
- edge_type: like
  min_time: 100
`
	var layers []models.LayerSpec
	if err := yaml.Unmarshal([]byte(src), &layers); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}

	want := []models.LayerSpec{
		models.NewLayerSpec("follow", models.WithLimit(10), models.WithDirection(models.Bidirectional)),
		models.NewLayerSpec("like", models.WithMinTime(100)),
	}
	if !slices.Equal(layers, want) {
		t.Errorf("layers = %+v, want %+v", layers, want)
	}
}

func TestLayerSpec_JSON(t *testing.T) {
	l := models.NewLayerSpec("follow", models.WithDirection(models.Reverse), models.WithTimeRange(1, 2))

	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}

	want := `{"edge_type":"follow","limit":-1,"min_time":1,"max_time":2,"direction":"dst_to_src"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestLayerSpec_Validate(t *testing.T) {
	tests := []struct {
		layer   models.LayerSpec
		wantErr error
	}{
		{layer: models.NewLayerSpec("follow")},
		{layer: models.NewLayerSpec("_e2")},
		{layer: models.NewLayerSpec(""), wantErr: models.ErrInvalidLayer},
		{layer: models.NewLayerSpec("2e"), wantErr: models.ErrInvalidLayer},
		{layer: models.NewLayerSpec("e;"), wantErr: models.ErrInvalidLayer},
		{layer: models.NewLayerSpec("e", models.WithDirection(-1)), wantErr: models.ErrInvalidDirection},
	}

	for i, tc := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			err := tc.layer.Validate(i)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate(%+v) = %v, want %v", tc.layer, err, tc.wantErr)
			}
		})
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: fmt.Errorf("x: %w", models.ErrExecutionFailure), want: "execution_failure"},
		{err: models.ErrInvalidSession, want: "invalid_session"},
		{err: models.ErrTypeMismatch, want: "type_mismatch"},
		{err: models.ErrLayerField(0, "edge_type", "is required"), want: "validation"},
		{err: models.ErrIncompleteAttributes, want: "incomplete_attributes"},
		{err: errors.New("?"), want: "other"},
	}

	for _, tc := range tests {
		if got := models.Kind(tc.err); got != tc.want {
			t.Errorf("Kind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestValidateSpace(t *testing.T) {
	if err := models.ValidateSpace("social_2"); err != nil {
		t.Errorf("ValidateSpace(social_2) = %v", err)
	}

	for _, bad := range []string{"", "2social", "s; DROP SPACE s", "a-b"} {
		err := models.ValidateSpace(bad)
		if !errors.Is(err, models.ErrInvalidSpace) {
			t.Errorf("ValidateSpace(%q) = %v, want ErrInvalidSpace", bad, err)
			continue
		}
		if !strings.Contains(err.Error(), "invalid space name") {
			t.Errorf("ValidateSpace(%q) message = %q", bad, err.Error())
		}
	}
}
