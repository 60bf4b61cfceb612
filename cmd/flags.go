package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ddsmatrix/internal/config"
)

// matrixFlags holds the command line overrides shared by the matrix commands.
// Zero values leave the configured value untouched.
type matrixFlags struct {
	distro        string
	transport     string
	marker        string
	target        int
	timeout       time.Duration
	projectPrefix string
	composeFiles  []string
	images        []string
}

func addMatrixFlags(cmd *cobra.Command, f *matrixFlags) {
	cmd.Flags().StringVar(&f.distro, "distro", "", "ROS distribution (default \"humble\")")
	cmd.Flags().StringVar(&f.transport, "transport", "", "DDS transport name used in image tags (default \"fastdds\")")
	cmd.Flags().StringVar(&f.marker, "marker", "", "Substring counted in the listener output (default \"I heard\")")
	cmd.Flags().IntVar(&f.target, "target", 0, "Messages a pair must receive to pass (default 10)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Observation timeout per pair (default 30s)")
	cmd.Flags().StringVar(&f.projectPrefix, "project-prefix", "", "Prefix of compose project names (default \"dds\")")
	cmd.Flags().StringSliceVar(&f.composeFiles, "compose-file", nil, "Compose file passed with -f, repeatable")
	cmd.Flags().StringArrayVar(&f.images, "image", nil, "Base image as ref=label, repeatable, replaces the configured list")
}

// overlay converts the flags into a config that can be merged over the
// loaded configuration.
func (f *matrixFlags) overlay() (config.MatrixConfig, error) {
	overlay := config.MatrixConfig{
		Distro:         f.distro,
		Transport:      f.transport,
		Marker:         f.marker,
		TargetMessages: f.target,
		Timeout:        f.timeout,
		ProjectPrefix:  f.projectPrefix,
		Compose: config.ComposeSettings{
			Files: f.composeFiles,
		},
	}

	for _, value := range f.images {
		img, err := config.ParseBaseImage(value)
		if err != nil {
			return config.MatrixConfig{}, fmt.Errorf("invalid --image: %w", err)
		}
		overlay.BaseImages = append(overlay.BaseImages, img)
	}

	return overlay, nil
}

// loadMatrixConfig layers the flags over the configuration files and
// validates the result.
func loadMatrixConfig(f *matrixFlags) (config.MatrixConfig, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.MatrixConfig{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	overlay, err := f.overlay()
	if err != nil {
		return config.MatrixConfig{}, err
	}
	cfg = config.Merge(cfg, overlay)

	if err := config.Validate(cfg); err != nil {
		return config.MatrixConfig{}, err
	}
	return cfg, nil
}
