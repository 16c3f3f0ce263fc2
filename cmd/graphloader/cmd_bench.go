package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/persistorai/graphloader/channel"
)

type benchResult struct {
	Runs         int     `json:"runs"`
	Concurrency  int     `json:"concurrency"`
	TotalSeconds float64 `json:"total_seconds"`
	MeanSeconds  float64 `json:"mean_seconds"`
	Edges        int     `json:"edges"`
	Vertices     int     `json:"vertices"`
}

func newBenchCmd() *cobra.Command {
	var (
		f          requestFlags
		runs       int
		startRange int64
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run SampleBlock repeatedly in parallel and report mean latency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs < 1 {
				return fmt.Errorf("--n must be at least 1")
			}

			start, err := benchStart(f.start, startRange)
			if err != nil {
				return err
			}
			layers, err := f.layerSpecs()
			if err != nil {
				return err
			}

			req := channel.BlockRequest{Space: f.space, Start: start, Attrs: f.attrNames(), Layers: layers}
			reqs := make([]channel.BlockRequest, runs)
			for i := range reqs {
				reqs[i] = req
			}

			began := time.Now()
			blocks, err := ch.SampleBlocks(cmd.Context(), reqs)
			if err != nil {
				return err
			}
			total := time.Since(began)

			res := benchResult{
				Runs:         runs,
				Concurrency:  cfg.PoolSize,
				TotalSeconds: total.Seconds(),
				MeanSeconds:  total.Seconds() / float64(runs),
			}
			for _, b := range blocks {
				res.Edges += b.Edges.Len()
				res.Vertices += b.Vertices.Len()
			}

			if flagFmt == "table" {
				formatTable([]string{"RUNS", "CONCURRENCY", "TOTAL_S", "MEAN_S", "EDGES", "VERTICES"}, [][]string{{
					fmt.Sprint(res.Runs), fmt.Sprint(res.Concurrency),
					fmt.Sprintf("%.4f", res.TotalSeconds), fmt.Sprintf("%.6f", res.MeanSeconds),
					fmt.Sprint(res.Edges), fmt.Sprint(res.Vertices),
				}})
				return nil
			}
			formatJSON(res)
			return nil
		},
	}
	f.register(cmd, true)
	cmd.Flags().IntVar(&runs, "n", 1000, "Number of SampleBlock runs")
	cmd.Flags().Int64Var(&startRange, "start-range", 64, "Use ids 0..N-1 as start vertices when --start is empty")
	return cmd
}

// benchStart returns the explicit --start ids, or 0..n-1 when none are given.
func benchStart(explicit string, n int64) ([]int64, error) {
	if explicit != "" {
		return parseIDs(explicit)
	}
	if n < 1 {
		return nil, fmt.Errorf("--start-range must be at least 1")
	}

	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i)
	}
	return ids, nil
}
