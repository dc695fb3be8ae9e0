package commands

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/hdfsprep/internal/cli/output"
	"github.com/marmos91/hdfsprep/internal/cli/prompt"
	"github.com/marmos91/hdfsprep/internal/logger"
	"github.com/marmos91/hdfsprep/pkg/catalog"
	"github.com/marmos91/hdfsprep/pkg/provision"
)

var (
	usersDist     string
	usersSuffix   string
	usersStartUID uint32
	usersStartGID uint32
	usersDryRun   bool
	usersScript   string
	usersYes      bool
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Create the users, groups, and proxy users a distribution needs",
	Long: `Create the local users, groups, and HDFS proxy users a Hadoop
distribution expects in the target access zone.

Identities that already exist are reused with their current ids and never
modified. New identities get the first free id at or above the start id.
Every run also writes a shell script that replays the same identities on
hosts that cannot reach the cluster (e.g. the Hadoop compute nodes).

Examples:
  # Provision CDH identities into zone1
  hdfsprep users --dist cdh --zone zone1

  # Second cluster against the same zone, suffixed names
  hdfsprep users --dist hdp --zone zone1 --suffix cluster2

  # See what would happen without touching the cluster
  hdfsprep users --dist cdh --zone zone1 --dry-run`,
	RunE: runUsers,
}

func init() {
	usersCmd.Flags().StringVar(&usersDist, "dist", "", fmt.Sprintf("Hadoop distribution (%s)", strings.Join(catalog.Distributions(), "|")))
	usersCmd.Flags().StringVar(&usersSuffix, "suffix", "", "Cluster-name suffix appended to every identity")
	usersCmd.Flags().Uint32Var(&usersStartUID, "start-uid", 0, "Lowest uid to allocate from (default from config)")
	usersCmd.Flags().Uint32Var(&usersStartGID, "start-gid", 0, "Lowest gid to allocate from (default from config)")
	usersCmd.Flags().BoolVar(&usersDryRun, "dry-run", false, "Resolve and report without creating anything")
	usersCmd.Flags().StringVar(&usersScript, "script", "", "Replication script path (default: <timestamp>-<zone>-<dist>.sh in script dir)")
	usersCmd.Flags().BoolVarP(&usersYes, "yes", "y", false, "Skip confirmation prompts")
	_ = usersCmd.MarkFlagRequired("dist")
}

func runUsers(cmd *cobra.Command, args []string) error {
	printer, err := newPrinter()
	if err != nil {
		return err
	}

	manifest, err := buildManifest(usersDist, usersSuffix)
	if err != nil {
		return err
	}

	if err := confirmSystemZone(printer); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	opts := provision.IdentityOptions{
		StartUID: cfg.Provision.StartUID,
		StartGID: cfg.Provision.StartGID,
		DryRun:   usersDryRun,
	}
	if usersStartUID != 0 {
		opts.StartUID = usersStartUID
	}
	if usersStartGID != 0 {
		opts.StartGID = usersStartGID
	}

	logger.Info("provisioning identities",
		logger.Dist(usersDist), logger.Zone(cfg.Cluster.Zone), logger.Address(client.Address()))

	result, err := provision.NewIdentityProvisioner(client, opts).Provision(manifest)
	if err != nil {
		return err
	}

	scriptPath := usersScript
	if scriptPath == "" {
		scriptPath = filepath.Join(cfg.Provision.ScriptDir, defaultScriptName())
	}
	if err := result.Artifact.WriteScriptFile(scriptPath); err != nil {
		return err
	}
	logger.Info("replication script written", logger.Script(scriptPath))

	if err := printIdentityResult(printer, result); err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		printer.Warning("warning: " + warning)
	}
	if usersDryRun {
		printer.Success(fmt.Sprintf("Dry run complete: %d identities resolved, nothing created", len(result.Artifact.Actions())))
	} else {
		printer.Success(fmt.Sprintf("Provisioned %d identities in zone %s (script: %s)", len(result.Artifact.Actions()), cfg.Cluster.Zone, scriptPath))
	}
	return nil
}

// confirmSystemZone double-checks runs against the System zone, which affects
// every workload on the cluster rather than a dedicated zone.
func confirmSystemZone(printer *output.Printer) error {
	if !strings.EqualFold(cfg.Cluster.Zone, "System") {
		return nil
	}
	printer.Warning("Provisioning into the System zone affects the whole cluster.")
	ok, err := prompt.ConfirmWithForce("Continue", usersYes)
	if err != nil {
		return err
	}
	if !ok {
		return prompt.ErrAborted
	}
	return nil
}

// defaultScriptName builds the conventional replication script name,
// e.g. 1700000000-zone1-cdh-cluster2.sh.
func defaultScriptName() string {
	name := fmt.Sprintf("%d-%s-%s", time.Now().Unix(), cfg.Cluster.Zone, usersDist)
	if usersSuffix != "" {
		name += catalog.NormalizeSuffix(usersSuffix)
	}
	return name + ".sh"
}

// identityRows renders the action list for table output.
type identityRows struct {
	actions []provision.Action
}

func (r identityRows) Headers() []string {
	return []string{"KIND", "NAME", "ID", "PRIMARY GROUP", "SECONDARY GROUPS"}
}

func (r identityRows) Rows() [][]string {
	rows := make([][]string, 0, len(r.actions))
	for _, a := range r.actions {
		rows = append(rows, []string{
			string(a.Kind),
			a.Name,
			strconv.FormatUint(uint64(a.ID), 10),
			a.PrimaryGroup,
			strings.Join(a.SecondaryGroups, ","),
		})
	}
	return rows
}

func printIdentityResult(printer *output.Printer, result *provision.IdentityResult) error {
	return printer.Print(identityRows{actions: result.Artifact.Actions()})
}
