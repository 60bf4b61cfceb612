package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ddsmatrix/internal/compose"
	"ddsmatrix/internal/config"
	"ddsmatrix/internal/matrix"
	"ddsmatrix/pkg/logging"
)

func newRunCmd() *cobra.Command {
	flags := &matrixFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build all images and test every talker/listener pair",
		Long: `Builds the talker and listener image of every base image, then starts
every ordered (talker, listener) pair in its own compose project and counts
the marker lines in the listener output. A summary of all pairs is printed
at the end, also when the run stops early.

Example usage:
  ddsmatrix run
  ddsmatrix run --timeout 1m --target 20
  ddsmatrix run --image ros:humble-ros-base=ros-base --image osrf/ros:humble-desktop=desktop`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadMatrixConfig(flags)
			if err != nil {
				return err
			}

			ctx, stop := interruptContext(cmd.Context(), cmd.ErrOrStderr())
			defer stop()

			runner := newMatrixRunner(cmd, cfg)
			logging.SetRunID(runner.RunID())

			if _, err := runner.Run(ctx); err != nil {
				logging.Error("Matrix", err, "Run %s stopped", runner.RunID())
				return err
			}
			return nil
		},
	}
	addMatrixFlags(cmd, flags)
	return cmd
}

func newMatrixRunner(cmd *cobra.Command, cfg config.MatrixConfig) *matrix.Runner {
	executor := compose.NewExecExecutor(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Compose.StopGracePeriod)
	client := compose.NewClient(executor, cfg.Compose)
	return matrix.NewRunner(cfg, client, matrix.NewConsoleReporter(cmd.OutOrStdout()))
}

// interruptContext cancels the returned context on SIGINT or SIGTERM.
// Running compose commands are stopped, cleanup still happens.
func interruptContext(parent context.Context, errOut io.Writer) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(errOut, "\nReceived interrupt signal, cleaning up...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
