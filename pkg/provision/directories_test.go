package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/hdfsprep/pkg/catalog"
)

func testRules() []catalog.DirectoryRule {
	return []catalog.DirectoryRule{
		{Path: "/", Mode: 0o755, Owner: "hdfs", Group: "hadoop"},
		{Path: "/tmp", Mode: 0o1777, Owner: "hdfs", Group: "hadoop"},
		{Path: "/user", Mode: 0o755, Owner: "hdfs", Group: "hadoop"},
		{Path: "/user/hive", Mode: 0o700, Owner: "hive", Group: "hadoop"},
	}
}

func testIDs() IDMap {
	ids := NewIDMap()
	ids.UIDs["hdfs"] = 1025
	ids.UIDs["hive"] = 1026
	ids.GIDs["hadoop"] = 1025
	return ids
}

func outcomes(reports []DirectoryReport) map[string]Outcome {
	m := make(map[string]Outcome, len(reports))
	for _, rep := range reports {
		m[rep.Path] = rep.Outcome
	}
	return m
}

func TestReconcileCreatesMissingTree(t *testing.T) {
	store := newFakeStore()
	store.addDir("/ifs/zone1/hadoop", 0, 0, 0o700)

	r := NewDirectoryReconciler(store, testIDs(), ReconcileOptions{})
	reports, err := r.Reconcile(testRules())
	require.NoError(t, err)
	require.Len(t, reports, 4)

	got := outcomes(reports)
	// The root pre-exists and is force-reconciled; everything below it is new.
	assert.Equal(t, OutcomeFixed, got["/"])
	assert.Equal(t, OutcomeCreated, got["/tmp"])
	assert.Equal(t, OutcomeCreated, got["/user"])
	assert.Equal(t, OutcomeCreated, got["/user/hive"])

	st := store.dirs["/ifs/zone1/hadoop/tmp"]
	require.NotNil(t, st)
	assert.Equal(t, uint32(1025), st.UID)
	assert.Equal(t, uint32(0o1777), st.Mode)

	st = store.dirs["/ifs/zone1/hadoop/user/hive"]
	require.NotNil(t, st)
	assert.Equal(t, uint32(1026), st.UID)
	assert.Equal(t, uint32(0o700), st.Mode)

	assert.Empty(t, Failures(reports))
}

func TestReconcileSkipsExistingWithoutFixPerm(t *testing.T) {
	store := newFakeStore()
	store.addDir("/ifs/zone1/hadoop", 0, 0, 0o700)
	store.addDir("/ifs/zone1/hadoop/tmp", 42, 42, 0o700)

	r := NewDirectoryReconciler(store, testIDs(), ReconcileOptions{})
	reports, err := r.Reconcile(testRules())
	require.NoError(t, err)

	got := outcomes(reports)
	assert.Equal(t, OutcomeSkipped, got["/tmp"])

	// Drift is left in place but the run is flagged as not clean.
	st := store.dirs["/ifs/zone1/hadoop/tmp"]
	assert.Equal(t, uint32(42), st.UID)
	assert.Equal(t, uint32(0o700), st.Mode)
	assert.NotEmpty(t, Failures(reports))
}

func TestReconcileFixPermRepairsExisting(t *testing.T) {
	store := newFakeStore()
	store.addDir("/ifs/zone1/hadoop", 0, 0, 0o700)
	store.addDir("/ifs/zone1/hadoop/tmp", 42, 42, 0o700)

	r := NewDirectoryReconciler(store, testIDs(), ReconcileOptions{FixPerm: true})
	reports, err := r.Reconcile(testRules())
	require.NoError(t, err)

	got := outcomes(reports)
	assert.Equal(t, OutcomeFixed, got["/tmp"])

	st := store.dirs["/ifs/zone1/hadoop/tmp"]
	assert.Equal(t, uint32(1025), st.UID)
	assert.Equal(t, uint32(1025), st.GID)
	assert.Equal(t, uint32(0o1777), st.Mode)
	assert.Empty(t, Failures(reports))
}

func TestReconcileRootIsAlwaysReapplied(t *testing.T) {
	store := newFakeStore()
	store.addDir("/ifs/zone1/hadoop", 0, 0, 0o700)

	r := NewDirectoryReconciler(store, testIDs(), ReconcileOptions{})
	reports, err := r.Reconcile(testRules()[:1])
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, OutcomeFixed, reports[0].Outcome)

	st := store.dirs["/ifs/zone1/hadoop"]
	assert.Equal(t, uint32(1025), st.UID)
	assert.Equal(t, uint32(0o755), st.Mode)
}

func TestReconcileRefusesFilesystemRoot(t *testing.T) {
	for _, root := range []string{"/", "/ifs"} {
		store := newFakeStore()
		store.root = root

		r := NewDirectoryReconciler(store, testIDs(), ReconcileOptions{})
		_, err := r.Reconcile(testRules())
		require.ErrorIs(t, err, ErrRootUnusable, "root %q", root)
	}
}

func TestReconcilePOSIXOnlyStripsEntries(t *testing.T) {
	store := newFakeStore()
	store.addDir("/ifs/zone1/hadoop", 0, 0, 0o700)
	store.aces["/ifs/zone1/hadoop"] = 4

	r := NewDirectoryReconciler(store, testIDs(), ReconcileOptions{POSIXOnly: true})
	_, err := r.Reconcile(testRules()[:1])
	require.NoError(t, err)

	assert.Contains(t, store.strips, "/ifs/zone1/hadoop")
	assert.Zero(t, store.aces["/ifs/zone1/hadoop"])
}

func TestReconcileWithoutPOSIXOnlyKeepsEntries(t *testing.T) {
	store := newFakeStore()
	store.addDir("/ifs/zone1/hadoop", 0, 0, 0o700)
	store.aces["/ifs/zone1/hadoop"] = 4

	r := NewDirectoryReconciler(store, testIDs(), ReconcileOptions{})
	_, err := r.Reconcile(testRules()[:1])
	require.NoError(t, err)

	assert.Empty(t, store.strips)
	assert.Equal(t, 4, store.aces["/ifs/zone1/hadoop"])
}

func TestReconcileUnresolvedOwnerFailsEntryOnly(t *testing.T) {
	store := newFakeStore()
	store.addDir("/ifs/zone1/hadoop", 0, 0, 0o700)

	ids := testIDs()
	delete(ids.UIDs, "hive")

	r := NewDirectoryReconciler(store, ids, ReconcileOptions{})
	reports, err := r.Reconcile(testRules())
	require.NoError(t, err)

	got := outcomes(reports)
	assert.Equal(t, OutcomeFailed, got["/user/hive"])
	assert.Equal(t, OutcomeCreated, got["/tmp"])

	failures := Failures(reports)
	require.Len(t, failures, 1)
	var unresolved *UnresolvedIdentityError
	require.ErrorAs(t, failures[0], &unresolved)
	assert.Equal(t, "hive", unresolved.Name)
}

func TestReconcileFatalErrorAbortsPass(t *testing.T) {
	store := newFakeStore()
	store.addDir("/ifs/zone1/hadoop", 0, 0, 0o700)

	r := NewDirectoryReconciler(store, testIDs(), ReconcileOptions{})
	store.err = &ConnectivityError{Endpoint: "onefs.example.com:8080", Err: assert.AnError}

	_, err := r.Reconcile(testRules())
	require.Error(t, err)
	assert.True(t, IsFatal(err))
}

func TestReconcileDryRunNeverMutates(t *testing.T) {
	store := newFakeStore()
	store.addDir("/ifs/zone1/hadoop", 0, 0, 0o700)

	r := NewDirectoryReconciler(store, testIDs(), ReconcileOptions{DryRun: true, FixPerm: true, POSIXOnly: true})
	reports, err := r.Reconcile(testRules())
	require.NoError(t, err)
	require.Len(t, reports, 4)

	assert.Empty(t, store.mkdirs)
	assert.Empty(t, store.chowns)
	assert.Empty(t, store.chmods)
	assert.Empty(t, store.strips)

	st := store.dirs["/ifs/zone1/hadoop"]
	assert.Equal(t, uint32(0o700), st.Mode)
}
