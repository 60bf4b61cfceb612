package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ddsmatrix/internal/matrix"
)

func newPlanCmd() *cobra.Command {
	flags := &matrixFlags{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the builds and pairs a run would execute",
		Long: `Prints the image tag of every base image and every ordered pair with
its compose project name, in execution order. Nothing is built or started.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadMatrixConfig(flags)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), matrix.NewPlan(cfg).Render())
			return nil
		},
	}
	addMatrixFlags(cmd, flags)
	return cmd
}
