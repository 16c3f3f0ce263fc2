package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/persistorai/graphloader/channel"
	"github.com/persistorai/graphloader/internal/config"
)

// requestFlags are the sampling inputs shared by sample, block and bench.
type requestFlags struct {
	space     string
	start     string
	attrs     string
	layers    []string
	layerFile string
}

func (f *requestFlags) register(cmd *cobra.Command, withAttrs bool) {
	cmd.Flags().StringVar(&f.space, "space", "", "Graph space name")
	cmd.Flags().StringVar(&f.start, "start", "", "Comma-separated start vertex ids")
	cmd.Flags().StringArrayVar(&f.layers, "layer", nil, "Layer as edge[:limit=N][:min=T][:max=T][:dir=D]; repeat per hop")
	cmd.Flags().StringVar(&f.layerFile, "layers", "", "YAML file with a list of layers")
	if withAttrs {
		cmd.Flags().StringVar(&f.attrs, "attrs", "", "Comma-separated vertex attribute names")
	}
	cmd.MarkFlagRequired("space") //nolint:errcheck // flag registered above.
}

func (f *requestFlags) startIDs() ([]int64, error) {
	return parseIDs(f.start)
}

func (f *requestFlags) attrNames() []string {
	return config.SplitList(f.attrs)
}

// layerSpecs merges --layers file entries followed by --layer flags.
func (f *requestFlags) layerSpecs() ([]channel.LayerSpec, error) {
	var out []channel.LayerSpec

	if f.layerFile != "" {
		fromFile, err := loadLayerFile(f.layerFile)
		if err != nil {
			return nil, err
		}
		out = append(out, fromFile...)
	}

	for _, s := range f.layers {
		l, err := parseLayerFlag(s)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}

	return out, nil
}

// parseIDs parses a comma-separated list of vertex ids. Duplicates are kept.
func parseIDs(s string) ([]int64, error) {
	parts := config.SplitList(s)
	ids := make([]int64, 0, len(parts))

	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid vertex id %q: %w", p, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// parseLayerFlag parses "edge[:key=value]..." with keys limit, min, max, dir.
func parseLayerFlag(s string) (channel.LayerSpec, error) {
	fields := strings.Split(s, ":")
	edge := strings.TrimSpace(fields[0])
	if edge == "" {
		return channel.LayerSpec{}, fmt.Errorf("layer %q: edge type is required", s)
	}

	var opts []channel.LayerOption

	for _, kv := range fields[1:] {
		key, val, ok := strings.Cut(kv, "=")
		if !ok {
			return channel.LayerSpec{}, fmt.Errorf("layer %q: expected key=value, got %q", s, kv)
		}

		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)

		if key == "dir" || key == "direction" {
			d, err := channel.ParseDirection(val)
			if err != nil {
				return channel.LayerSpec{}, fmt.Errorf("layer %q: %w", s, err)
			}
			opts = append(opts, channel.WithDirection(d))
			continue
		}

		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return channel.LayerSpec{}, fmt.Errorf("layer %q: %s must be an integer: %w", s, key, err)
		}

		switch key {
		case "limit":
			opts = append(opts, channel.WithLimit(n))
		case "min", "min_time":
			opts = append(opts, channel.WithMinTime(n))
		case "max", "max_time":
			opts = append(opts, channel.WithMaxTime(n))
		default:
			return channel.LayerSpec{}, fmt.Errorf("layer %q: unknown key %q", s, key)
		}
	}

	return channel.NewLayerSpec(edge, opts...), nil
}

// loadLayerFile reads a YAML list of layers. Omitted fields take the
// LayerSpec defaults.
func loadLayerFile(path string) ([]channel.LayerSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layers: %w", err)
	}

	var layers []channel.LayerSpec
	if err := yaml.Unmarshal(data, &layers); err != nil {
		return nil, fmt.Errorf("parsing layers %s: %w", path, err)
	}

	return layers, nil
}
