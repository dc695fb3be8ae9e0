package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marmos91/hdfsprep/internal/logger"
	"github.com/marmos91/hdfsprep/pkg/catalog"
	"github.com/marmos91/hdfsprep/pkg/provision"
)

var (
	dirsDist      string
	dirsSuffix    string
	dirsFixPerm   bool
	dirsPOSIXOnly bool
	dirsDryRun    bool
)

var directoriesCmd = &cobra.Command{
	Use:   "directories",
	Short: "Create the HDFS directory skeleton a distribution needs",
	Long: `Create the directory skeleton a Hadoop distribution expects under the
zone's HDFS root, with the declared ownership and modes.

The identities referenced by the skeleton must already exist; run
"hdfsprep users" first. Directories that already exist are reported and
left untouched unless --fixperm is given.

Examples:
  # Create the CDH skeleton in zone1
  hdfsprep directories --dist cdh --zone zone1

  # Repair drifted ownership and modes
  hdfsprep directories --dist cdh --zone zone1 --fixperm

  # Also drop ACLs, leaving pure POSIX permissions
  hdfsprep directories --dist cdh --zone zone1 --fixperm --posix-only`,
	RunE: runDirectories,
}

func init() {
	directoriesCmd.Flags().StringVar(&dirsDist, "dist", "", fmt.Sprintf("Hadoop distribution (%s)", strings.Join(catalog.Distributions(), "|")))
	directoriesCmd.Flags().StringVar(&dirsSuffix, "suffix", "", "Cluster-name suffix appended to every identity")
	directoriesCmd.Flags().BoolVar(&dirsFixPerm, "fixperm", false, "Apply ownership and mode to directories that already exist")
	directoriesCmd.Flags().BoolVar(&dirsPOSIXOnly, "posix-only", false, "Strip access-control entries, leaving POSIX mode bits authoritative")
	directoriesCmd.Flags().BoolVar(&dirsDryRun, "dry-run", false, "Inspect and report without creating or changing anything")
	_ = directoriesCmd.MarkFlagRequired("dist")
}

func runDirectories(cmd *cobra.Command, args []string) error {
	printer, err := newPrinter()
	if err != nil {
		return err
	}

	manifest, err := buildManifest(dirsDist, dirsSuffix)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	// Owners and groups come from the cluster: the users pass must already
	// have run. Missing identities fail per-directory, not up front.
	ids, err := provision.ResolveIDMap(client, manifest)
	if err != nil {
		return err
	}

	logger.Info("reconciling directory skeleton",
		logger.Dist(dirsDist), logger.Zone(cfg.Cluster.Zone), logger.Address(client.Address()))

	reconciler := provision.NewDirectoryReconciler(client, ids, provision.ReconcileOptions{
		FixPerm:   dirsFixPerm,
		POSIXOnly: dirsPOSIXOnly,
		DryRun:    dirsDryRun,
	})
	reports, err := reconciler.Reconcile(manifest.Directories)
	if err != nil {
		return err
	}

	if err := printer.Print(directoryRows{reports: reports}); err != nil {
		return err
	}

	if failures := provision.Failures(reports); len(failures) > 0 {
		for _, failure := range failures {
			printer.Error("  " + failure.Error())
		}
		return fmt.Errorf("%d of %d directories are not in the declared state", len(failures), len(reports))
	}

	if dirsDryRun {
		printer.Success(fmt.Sprintf("Dry run complete: %d directories inspected", len(reports)))
	} else {
		printer.Success(fmt.Sprintf("Directory skeleton for %s is in place in zone %s", dirsDist, cfg.Cluster.Zone))
	}
	return nil
}

// directoryRows renders reconciliation reports for table output.
type directoryRows struct {
	reports []provision.DirectoryReport
}

func (r directoryRows) Headers() []string {
	return []string{"PATH", "OUTCOME", "DETAIL"}
}

func (r directoryRows) Rows() [][]string {
	rows := make([][]string, 0, len(r.reports))
	for _, rep := range r.reports {
		detail := ""
		if rep.Err != nil {
			detail = rep.Err.Error()
		}
		rows = append(rows, []string{rep.Path, string(rep.Outcome), detail})
	}
	return rows
}
