package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/persistorai/graphloader/channel"
)

const doctorTimeout = 10 * time.Second

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration and graph store connectivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context())
		},
	}
}

type checkResult struct {
	Name   string
	Passed bool
	Detail string
	Hint   string
}

func runDoctor(ctx context.Context) error {
	fmt.Println("\ngraphloader doctor")
	fmt.Println("==================")

	results := doctorChecks(ctx)

	fmt.Println()
	allPassed := true
	for _, r := range results {
		mark := "✅"
		if !r.Passed {
			mark = "❌"
			allPassed = false
		}
		if r.Detail != "" {
			fmt.Printf("%s %s: %s\n", mark, r.Name, r.Detail)
		} else {
			fmt.Printf("%s %s\n", mark, r.Name)
		}
		if !r.Passed && r.Hint != "" {
			fmt.Printf("   Hint: %s\n", r.Hint)
		}
	}

	fmt.Println()
	if !allPassed {
		fmt.Println("❌ Some checks failed.")
		return fmt.Errorf("doctor found issues")
	}
	fmt.Println("✅ All checks passed!")
	return nil
}

func doctorChecks(ctx context.Context) []checkResult {
	var results []checkResult

	// 1. Configuration.
	c, err := resolveConfig()
	if err != nil {
		return append(results, checkResult{
			Name: "Configuration", Passed: false,
			Detail: err.Error(),
			Hint:   "Check GRAPH_* and GATHER_BATCH_SIZE environment variables",
		})
	}
	results = append(results, checkResult{
		Name: "Configuration", Passed: true,
		Detail: fmt.Sprintf("pool=%d batch=%d", c.PoolSize, c.BatchSize),
	})

	// 2. Pool and session.
	ctx, cancel := context.WithTimeout(ctx, doctorTimeout)
	defer cancel()

	opened, err := channel.Open(ctx, c.Addresses, c.PoolSize,
		channel.WithLogger(c.NewLogger()),
		channel.WithCredentials(c.User, c.Password.Value()),
		channel.WithTimeout(c.Timeout),
	)
	if err != nil {
		return append(results, checkResult{
			Name: "Graph store reachable", Passed: false,
			Detail: strings.Join(c.Addresses, ","),
			Hint:   doctorHint(err),
		})
	}
	defer opened.Close()

	results = append(results, checkResult{
		Name: "Graph store reachable", Passed: true, Detail: strings.Join(c.Addresses, ","),
	})

	// 3. Statement round-trip on a fresh session.
	if err := opened.HealthCheck(ctx); err != nil {
		return append(results, checkResult{
			Name: "Statement execution", Passed: false,
			Hint: doctorHint(err),
		})
	}

	return append(results, checkResult{Name: "Statement execution", Passed: true, Detail: "YIELD 1"})
}

func doctorHint(err error) string {
	switch {
	case channel.IsInvalidSession(err):
		return fmt.Sprintf("Check GRAPH_USER and GRAPH_PASSWORD.\n   Error: %v", err)
	case channel.IsExecutionFailure(err):
		return fmt.Sprintf("graphd rejected a trivial statement.\n   Error: %v", err)
	default:
		return fmt.Sprintf("Is graphd running at GRAPH_ADDRESSES?\n   Error: %v", err)
	}
}
