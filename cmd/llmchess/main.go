// Package main provides the CLI entry point for llmchess, a
// command-line chess game played against a language-model opponent.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"llmchess/bench"
	"llmchess/config"
	"llmchess/player"
	"llmchess/report"
)

const version = "0.1.0"

// errRegression marks a non-passing regression check against an
// existing baseline, so main can map it to exit code 1 after the
// verdict message was already printed.
var errRegression = errors.New("benchmark regressed against baseline")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	root := newRootCmd(logger, level)

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\nInterrupted by user")
			os.Exit(130)
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	endpoint string
	model    string
	verbose  bool
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "llmchess",
		Short: "Play chess against an AI powered by large language models",
		Long: `Llmchess plays chess against a language-model opponent. It validates
the backend connection settings and benchmarks AI move latency.

Environment variables:
  ` + config.EnvEndpoint + `  AI endpoint URL (required)
  ` + config.EnvModel + `             AI model name (required)`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if opts.verbose {
				level.Set(slog.LevelDebug)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, logger, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.endpoint, "endpoint", "",
		"AI endpoint URL (overrides "+config.EnvEndpoint+")")
	pf.StringVar(&opts.model, "model", "",
		"AI model name (overrides "+config.EnvModel+")")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false,
		"Enable verbose output for debugging")

	root.AddCommand(newBenchCmd(logger))
	root.AddCommand(newCheckCmd(logger, opts))

	return root
}

func runPlay(cmd *cobra.Command, logger *slog.Logger, opts *rootOptions) error {
	cfg := config.Resolve(opts.endpoint, opts.model, opts.verbose, os.Getenv)

	logger.Debug("validating configuration",
		slog.String("endpoint", cfg.Endpoint),
		slog.String("model", cfg.Model),
	)

	if err := cfg.Validate(); err != nil {
		return err
	}

	if _, err := player.NewClient(cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "llmchess initialized successfully!")
	fmt.Fprintf(out, "Connected to: %s\n", cfg.Endpoint)
	fmt.Fprintf(out, "Using model: %s\n", cfg.Model)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Chess game functionality is not implemented yet.")

	return nil
}

func newBenchCmd(logger *slog.Logger) *cobra.Command {
	var (
		iterations   int
		responseTime float64
		output       string
		outputJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark AI move latency against a simulated backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			harness, err := newHarness(logger, iterations, responseTime)
			if err != nil {
				return err
			}

			result, err := harness.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("run benchmark: %w", err)
			}

			out := cmd.OutOrStdout()

			if outputJSON {
				if err := report.WriteJSON(out, result); err != nil {
					return fmt.Errorf("write JSON report: %w", err)
				}
			} else {
				report.Write(out, result)
			}

			if err := harness.Save(output); err != nil {
				return err
			}

			fmt.Fprintf(out, "\nResults saved to %s\n", output)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&iterations, "iterations", 100,
		"Number of timed move requests")
	flags.Float64Var(&responseTime, "response-time", bench.DefaultResponseTime,
		"Simulated AI response time in seconds")
	flags.StringVar(&output, "output", "benchmark_results.json",
		"Path to write benchmark results")
	flags.BoolVar(&outputJSON, "json", false,
		"Print results as JSON instead of a summary")

	return cmd
}

func newCheckCmd(logger *slog.Logger, opts *rootOptions) *cobra.Command {
	var (
		iterations   int
		responseTime float64
		baselinePath string
		threshold    float64
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the benchmark and check for a latency regression",
		Long: `Check runs the latency benchmark and compares its mean against the
stored baseline. On a passing check the baseline is overwritten with
the current results; a missing baseline counts as a first run and is
created. The command fails only when an existing baseline regressed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			harness, err := newHarness(logger, iterations, responseTime)
			if err != nil {
				return err
			}

			if _, err := harness.Run(cmd.Context()); err != nil {
				return fmt.Errorf("run benchmark: %w", err)
			}

			verdict := harness.CheckRegression(baselinePath, threshold)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, verdict.Message)

			if opts.verbose {
				if baseline, err := bench.LoadResult(baselinePath); err == nil {
					fmt.Fprintln(out)
					report.WriteComparison(out, baseline, harness.Result())
				}
			}

			if !verdict.Passed {
				return errRegression
			}

			if err := harness.Save(baselinePath); err != nil {
				return fmt.Errorf("save baseline: %w", err)
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&iterations, "iterations", 100,
		"Number of timed move requests")
	flags.Float64Var(&responseTime, "response-time", bench.DefaultResponseTime,
		"Simulated AI response time in seconds")
	flags.StringVar(&baselinePath, "baseline", "benchmark_baseline.json",
		"Path to the baseline results file")
	flags.Float64Var(&threshold, "threshold", 15.0,
		"Maximum acceptable mean latency increase in percent")

	return cmd
}

func newHarness(logger *slog.Logger, iterations int, responseTime float64) (*bench.Harness, error) {
	client := player.NewMockClient(
		time.Duration(responseTime * float64(time.Second)),
	)

	return bench.New(client, bench.Config{
		Iterations:   iterations,
		ResponseTime: responseTime,
	}, logger)
}
