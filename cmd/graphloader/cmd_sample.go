package main

import (
	"github.com/spf13/cobra"
)

func newSampleCmd() *cobra.Command {
	var f requestFlags
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample a layered temporal subgraph",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			start, err := f.startIDs()
			if err != nil {
				fatal("sample", err)
			}
			layers, err := f.layerSpecs()
			if err != nil {
				fatal("sample", err)
			}
			edges, err := ch.SampleSubgraph(cmd.Context(), f.space, start, layers)
			if err != nil {
				fatal("sample", err)
			}
			outputEdges(edges)
		},
	}
	f.register(cmd, false)
	return cmd
}

func newGatherCmd() *cobra.Command {
	var f requestFlags
	cmd := &cobra.Command{
		Use:   "gather",
		Short: "Gather vertex attributes in batches",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			start, err := f.startIDs()
			if err != nil {
				fatal("gather", err)
			}
			names := f.attrNames()
			attrs, err := ch.GatherAttributes(cmd.Context(), f.space, start, names)
			if err != nil {
				fatal("gather", err)
			}
			outputAttributes(attrs, names)
		},
	}
	cmd.Flags().StringVar(&f.space, "space", "", "Graph space name")
	cmd.Flags().StringVar(&f.start, "start", "", "Comma-separated vertex ids")
	cmd.Flags().StringVar(&f.attrs, "attrs", "", "Comma-separated vertex attribute names")
	cmd.MarkFlagRequired("space") //nolint:errcheck // flag registered above.
	return cmd
}

func newBlockCmd() *cobra.Command {
	var f requestFlags
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Sample a subgraph and gather attributes of every vertex it touches",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			start, err := f.startIDs()
			if err != nil {
				fatal("block", err)
			}
			layers, err := f.layerSpecs()
			if err != nil {
				fatal("block", err)
			}
			names := f.attrNames()
			b, err := ch.SampleBlock(cmd.Context(), f.space, start, names, layers)
			if err != nil {
				fatal("block", err)
			}
			outputBlock(b, names)
		},
	}
	f.register(cmd, true)
	return cmd
}
