package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/chriscconte/cycling-coach/internal/config"
	"github.com/chriscconte/cycling-coach/internal/service/orchestrator"
)

type runOptions struct {
	job string
	now string
}

func newRunCommand() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one job invocation and exit",
		Long: `Run a single orchestrator job and print its summary as JSON.

The exit code reports the outcome to the periodic host: 0 on success, 1 on failure.

Example:
  coach run --job check-training
  coach run --job detect-conflicts --now 2025-03-04T20:30:00Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJob(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.job, "job", "", "job to run (check-training|detect-conflicts)")
	cmd.Flags().StringVar(&opts.now, "now", "", "virtual now in RFC3339, defaults to the wall clock")
	_ = cmd.MarkFlagRequired("job")

	return cmd
}

func runJob(ctx context.Context, opts *runOptions) error {
	job, err := orchestrator.ParseJob(opts.job)
	if err != nil {
		return err
	}

	var now time.Time
	if opts.now != "" {
		now, err = time.Parse(time.RFC3339, opts.now)
		if err != nil {
			return fmt.Errorf("invalid --now, expected RFC3339: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, config.ValidateForRun)
	if err != nil {
		return err
	}
	defer a.Close()

	result, runErr := a.orchestrator.Run(ctx, job, now)
	if result != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	}
	return runErr
}
