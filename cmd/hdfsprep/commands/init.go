package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/hdfsprep/internal/cli/prompt"
	"github.com/marmos91/hdfsprep/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file interactively",
	Long: `Create the hdfsprep configuration file, prompting for the cluster
connection settings.

The password is not stored; supply it per run via --password, the
HDFSPREP_CLUSTER_PASSWORD environment variable, or the interactive prompt.

Examples:
  # Create the config at the default location
  hdfsprep init

  # Write to a custom path
  hdfsprep init --config /etc/hdfsprep/config.yaml`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := flagConfig
	if path == "" {
		path = config.GetDefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	newCfg := config.GetDefaultConfig()

	address, err := prompt.InputRequired("Cluster address (host[:port])")
	if err != nil {
		return err
	}
	newCfg.Cluster.Address = address

	username, err := prompt.Input("API username", "root")
	if err != nil {
		return err
	}
	newCfg.Cluster.Username = username

	zone, err := prompt.Input("Access zone", "System")
	if err != nil {
		return err
	}
	newCfg.Cluster.Zone = zone

	verify, err := prompt.Confirm("Verify TLS certificates", false)
	if err != nil {
		return err
	}
	newCfg.Cluster.VerifySSL = verify

	if err := config.SaveConfig(newCfg, path); err != nil {
		return err
	}

	printer, err := newPrinter()
	if err != nil {
		return err
	}
	printer.Success(fmt.Sprintf("Configuration written to %s", path))
	printer.Println("\nNext steps:")
	printer.Println("  1. hdfsprep users --dist <cdh|hdp>")
	printer.Println("  2. hdfsprep directories --dist <cdh|hdp>")
	return nil
}
