package cmd

import (
	"github.com/spf13/cobra"

	"ddsmatrix/pkg/logging"
)

func newBuildCmd() *cobra.Command {
	flags := &matrixFlags{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the talker and listener image of every base image",
		Long: `Builds the talker and listener image of every configured base image
without running any pair. The first failing build stops the command.`,
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
			if err := runner.BuildAll(ctx); err != nil {
				logging.Error("Matrix", err, "Build %s stopped", runner.RunID())
				return err
			}
			return nil
		},
	}
	addMatrixFlags(cmd, flags)
	return cmd
}
