package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/persistorai/graphloader/channel"
	"github.com/persistorai/graphloader/internal/api"
	"github.com/persistorai/graphloader/internal/config"
)

// Build-time variables set via ldflags.
var (
	commit    = ""
	buildDate = ""
)

var (
	flagFmt       string
	flagAddresses string
	flagVerbose   bool

	cfg    *config.Config
	log    *logrus.Logger
	ch     *channel.Channel
	stopFn context.CancelFunc
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("graphloader version %s (commit: %s, built: %s)", config.Version, commit, buildDate)
	}
	return fmt.Sprintf("graphloader version %s", config.Version)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCmd()
	rootCmd.AddCommand(newSampleCmd())
	rootCmd.AddCommand(newGatherCmd())
	rootCmd.AddCommand(newBlockCmd())
	rootCmd.AddCommand(newBenchCmd())

	doctorCmd := newDoctorCmd()
	doctorCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error { return nil } // opens its own pool
	doctorCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {}
	rootCmd.AddCommand(doctorCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "graphloader",
		Short:             "graphloader: temporal subgraph sampling and attribute gathering over NebulaGraph",
		Version:           versionString(),
		PersistentPreRunE: openChannel,
		PersistentPostRun: func(cmd *cobra.Command, args []string) { closeChannel() },
		SilenceUsage:      true,
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().StringVar(&flagFmt, "format", "json", "Output format: json|table")
	root.PersistentFlags().StringVar(&flagAddresses, "addresses", "", "Comma-separated graphd host:port list (env: GRAPH_ADDRESSES)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every generated statement")

	return root
}

// resolveConfig loads the environment config and applies flag overrides.
func resolveConfig() (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, err
	}

	if flagAddresses != "" {
		c.Addresses = config.SplitList(flagAddresses)
		if len(c.Addresses) == 0 {
			return nil, fmt.Errorf("--addresses has no host:port entries")
		}
	}

	return c, nil
}

func openChannel(cmd *cobra.Command, args []string) error {
	c, err := resolveConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = c
	log = cfg.NewLogger()

	ctx := cmd.Context()

	ch, err = channel.Open(ctx, cfg.Addresses, cfg.PoolSize,
		channel.WithLogger(log),
		channel.WithBatchSize(cfg.BatchSize),
		channel.WithCredentials(cfg.User, cfg.Password.Value()),
		channel.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return err
	}

	if flagVerbose {
		ch.Debug()
	}

	if cfg.MetricsAddr != "" {
		var srvCtx context.Context
		srvCtx, stopFn = context.WithCancel(ctx)
		router := api.NewRouter(&api.RouterDeps{Log: log, Store: ch, Version: config.Version})
		go func() {
			if err := api.Serve(srvCtx, cfg.MetricsAddr, router, log); err != nil {
				log.WithError(err).Warn("metrics server stopped")
			}
		}()
	}

	return nil
}

func closeChannel() {
	if stopFn != nil {
		stopFn()
	}
	if ch != nil {
		ch.Close()
	}
}

func fatal(msg string, err error) {
	closeChannel()
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
