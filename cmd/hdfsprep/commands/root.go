// Package commands implements the hdfsprep CLI commands.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/hdfsprep/internal/cli/output"
	"github.com/marmos91/hdfsprep/internal/logger"
	"github.com/marmos91/hdfsprep/pkg/config"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	flagConfig   string
	flagAddress  string
	flagUsername string
	flagPassword string
	flagZone     string
	flagNoVerify bool
	flagOutput   string
	flagNoColor  bool
	flagVerbose  bool

	flagLogLevel  string
	flagLogFormat string
	flagLogFile   string

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hdfsprep",
	Short: "Prepare an Isilon OneFS access zone for a Hadoop deployment",
	Long: `hdfsprep provisions the local users, groups, proxy users, and directory
skeleton a Hadoop distribution expects on an Isilon OneFS cluster.

Runs are idempotent: identities that already exist are reused as-is, and
repeated runs against an unchanged cluster change nothing.

Use "hdfsprep [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
		mergeClusterFlags(cmd)

		if cmd.Flags().Changed("log-level") {
			cfg.Logging.Level = flagLogLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.Logging.Format = flagLogFormat
		}
		if cmd.Flags().Changed("log-file") {
			cfg.Logging.Output = flagLogFile
		}
		if flagVerbose {
			cfg.Logging.Level = "DEBUG"
		}
		return logger.Init(logger.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: cfg.Logging.Output,
		})
	},
}

// mergeClusterFlags overlays CLI flags on the loaded configuration. Flags win
// over both file and environment.
func mergeClusterFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("address") {
		cfg.Cluster.Address = flagAddress
	}
	if cmd.Flags().Changed("username") {
		cfg.Cluster.Username = flagUsername
	}
	if cmd.Flags().Changed("password") {
		cfg.Cluster.Password = flagPassword
	}
	if cmd.Flags().Changed("zone") {
		cfg.Cluster.Zone = flagZone
	}
	if cmd.Flags().Changed("no-verify") {
		cfg.Cluster.VerifySSL = !flagNoVerify
	}
}

// newPrinter builds the output printer from the global flags.
func newPrinter() (*output.Printer, error) {
	format, err := output.ParseFormat(flagOutput)
	if err != nil {
		return nil, err
	}
	return output.NewPrinter(os.Stdout, format, !flagNoColor), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default: $XDG_CONFIG_HOME/hdfsprep/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagAddress, "address", "", "Cluster API endpoint, host[:port] (port defaults to 8080)")
	rootCmd.PersistentFlags().StringVarP(&flagUsername, "username", "u", "", "Cluster API username")
	rootCmd.PersistentFlags().StringVarP(&flagPassword, "password", "p", "", "Cluster API password (prompts if not provided)")
	rootCmd.PersistentFlags().StringVarP(&flagZone, "zone", "z", "", "Access zone to provision into (default: System)")
	rootCmd.PersistentFlags().BoolVar(&flagNoVerify, "no-verify", false, "Skip TLS certificate verification")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "table", "Output format (table|json|yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text|json)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to a file instead of stderr")

	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(directoriesCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
