package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"ddsmatrix/internal/color"
	"ddsmatrix/pkg/logging"
)

var (
	configPath string
	debug      bool
	logFormat  string
	theme      string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ddsmatrix",
	Short: "Test ROS 2 talker/listener interoperability across container base images",
	Long: `ddsmatrix builds a talker and a listener image for every configured
base image and runs every ordered (talker, listener) combination with
docker compose. Each pair passes when the listener reports the expected
number of received messages before the timeout.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. failed builds, missing compose CLI)
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		format, err := logging.ParseFormat(logFormat)
		if err != nil {
			return err
		}
		level := logging.LevelInfo
		if debug {
			level = logging.LevelDebug
		}
		logging.Init(level, format, cmd.ErrOrStderr())
		return color.SetTheme(theme)
	},
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "ddsmatrix version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file layered over ~/.config/ddsmatrix/config.yaml and ./.ddsmatrix/config.yaml")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format on stderr (text, json)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "auto", "Color theme of the summary (auto, dark, light)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
