package provision

import (
	"errors"
	"fmt"
	"path"

	"github.com/marmos91/hdfsprep/internal/logger"
	"github.com/marmos91/hdfsprep/pkg/catalog"
)

// Outcome classifies what reconciliation did to one directory.
type Outcome string

const (
	// OutcomeCreated means the directory was absent and has been created
	// with the declared ownership and mode.
	OutcomeCreated Outcome = "created"

	// OutcomeFixed means the directory existed and its ownership and mode
	// were (re)applied.
	OutcomeFixed Outcome = "fixed"

	// OutcomeSkipped means the directory existed but fixing permissions was
	// not requested, so it was left untouched and unverified.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeFailed means the entry could not be brought to the declared
	// state.
	OutcomeFailed Outcome = "failed"
)

// ErrRootUnusable is returned when the backend's managed root is the
// filesystem root itself: the HDFS root needs non-default ownership, and
// re-permissioning the whole backend tree would break every other protocol
// consumer.
var ErrRootUnusable = errors.New("managed HDFS root must be a dedicated directory")

// errExistsUnfixed is the advisory error recorded for directories that exist
// but were not verified because fixing permissions was not requested.
var errExistsUnfixed = errors.New("directory exists but was not verified; rerun with permission fixing enabled")

// DirectoryReport is the per-directory result of a reconciliation pass.
type DirectoryReport struct {
	// Path is the rule path within the managed tree.
	Path string

	Outcome Outcome

	// Err is set for OutcomeFailed and OutcomeSkipped (advisory).
	Err error
}

// ReconcileOptions configures a directory reconciliation pass.
type ReconcileOptions struct {
	// FixPerm applies ownership and mode to directories that already exist.
	// Without it, an existing directory is reported and left untouched.
	FixPerm bool

	// POSIXOnly strips all access-control entries before setting mode bits,
	// leaving pure POSIX semantics. Otherwise existing entries are kept and
	// only the mode bits are overlaid.
	POSIXOnly bool

	// DryRun stats but never mutates.
	DryRun bool
}

// DirectoryReconciler brings the managed directory tree into conformance
// with a manifest's directory rules.
type DirectoryReconciler struct {
	store Store
	ids   IDMap
	opts  ReconcileOptions
}

// NewDirectoryReconciler returns a reconciler using the given resolved
// identity mapping.
func NewDirectoryReconciler(store Store, ids IDMap, opts ReconcileOptions) *DirectoryReconciler {
	return &DirectoryReconciler{store: store, ids: ids, opts: opts}
}

// Reconcile processes the rules in manifest order and returns one report per
// rule. Failures are accumulated, not fail-fast: one bad directory never
// hides its siblings. Only ConnectivityError/PermissionError abort the pass;
// the returned error is nil otherwise, and callers decide the run outcome
// from the reports.
//
// The tree root is force-reconciled first, independent of FixPerm: child
// existence checks depend on the root being readable.
func (r *DirectoryReconciler) Reconcile(rules []catalog.DirectoryRule) ([]DirectoryReport, error) {
	root, err := r.store.RootPath()
	if err != nil {
		return nil, fmt.Errorf("determining managed root: %w", err)
	}
	if root == "/" || root == "/ifs" {
		return nil, fmt.Errorf("%w, not %q", ErrRootUnusable, root)
	}
	logger.Info("reconciling directories", logger.Path(root), logger.Entries(len(rules)))

	reports := make([]DirectoryReport, 0, len(rules))
	for _, rule := range rules {
		report, err := r.reconcileOne(root, rule)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (r *DirectoryReconciler) reconcileOne(root string, rule catalog.DirectoryRule) (DirectoryReport, error) {
	full := path.Join(root, rule.Path)
	report := DirectoryReport{Path: rule.Path}

	_, err := r.store.StatDirectory(full)
	switch {
	case isNotFound(err):
		if mkErr := r.makeDirectory(full); mkErr != nil {
			return report, r.fail(&report, rule, mkErr)
		}
		if applyErr := r.apply(full, rule); applyErr != nil {
			return report, r.fail(&report, rule, applyErr)
		}
		report.Outcome = OutcomeCreated

	case err != nil:
		return report, r.fail(&report, rule, err)

	case rule.Path == "/" || r.opts.FixPerm:
		// The root is always re-applied; other existing directories only
		// when fixing was requested.
		if applyErr := r.apply(full, rule); applyErr != nil {
			return report, r.fail(&report, rule, applyErr)
		}
		report.Outcome = OutcomeFixed

	default:
		logger.Warn("directory exists, leaving unverified", logger.Path(full))
		report.Outcome = OutcomeSkipped
		report.Err = errExistsUnfixed
	}

	return report, nil
}

// fail records a per-entry failure, or propagates err when the backend is
// unusable and the whole pass must stop.
func (r *DirectoryReconciler) fail(report *DirectoryReport, rule catalog.DirectoryRule, err error) error {
	if IsFatal(err) {
		return err
	}
	logger.Error("directory reconciliation failed", logger.Path(rule.Path), logger.Err(err))
	report.Outcome = OutcomeFailed
	report.Err = err
	return nil
}

func (r *DirectoryReconciler) makeDirectory(full string) error {
	if r.opts.DryRun {
		logger.Info("would create directory", logger.Path(full))
		return nil
	}
	logger.Info("creating directory", logger.Path(full))
	if err := r.store.MakeDirectory(full); err != nil && !isExists(err) {
		return err
	}
	return nil
}

// apply sets ownership first, then (optionally) strips access-control
// entries, then sets the numeric mode including sticky/setgid/setuid bits.
func (r *DirectoryReconciler) apply(full string, rule catalog.DirectoryRule) error {
	uid, ok := r.ids.UID(rule.Owner)
	if !ok {
		return &UnresolvedIdentityError{Kind: catalog.KindUser, Name: rule.Owner}
	}
	gid, ok := r.ids.GID(rule.Group)
	if !ok {
		return &UnresolvedIdentityError{Kind: catalog.KindGroup, Name: rule.Group}
	}

	if r.opts.DryRun {
		logger.Info("would apply ownership and mode", logger.Path(full),
			logger.UID(uid), logger.GID(gid), logger.Mode(rule.Mode))
		return nil
	}

	logger.Info("applying ownership", logger.Path(full), logger.UID(uid), logger.GID(gid))
	if err := r.store.ChownDirectory(full, uid, gid); err != nil {
		return err
	}

	if r.opts.POSIXOnly {
		logger.Info("stripping access-control entries", logger.Path(full))
		if err := r.store.StripACL(full); err != nil {
			return err
		}
	}

	logger.Info("applying mode", logger.Path(full), logger.Mode(rule.Mode))
	return r.store.ChmodDirectory(full, rule.Mode)
}

// Failures extracts the accumulated error list from a pass, advisory
// skipped-unverified entries included. An empty result means a clean run.
func Failures(reports []DirectoryReport) []error {
	var errs []error
	for _, rep := range reports {
		if rep.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", rep.Path, rep.Err))
		}
	}
	return errs
}
