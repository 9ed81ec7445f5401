package main

import (
	"context"
	"log/slog"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(execute())
}

func execute() int {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "coach",
		Short:         "Cycling coach core",
		Long:          "Reconciles training sources, detects calendar conflicts and schedules coaching notifications.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newRunCommand())

	return cmd
}
