package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntriesFor_UnknownDistribution(t *testing.T) {
	m, err := EntriesFor("mapr")

	assert.Nil(t, m)
	require.Error(t, err)

	var unsupported *UnsupportedDistributionError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "mapr", unsupported.Distribution)
}

func TestEntriesFor_HwxIsHdpAlias(t *testing.T) {
	hdp, err := EntriesFor("hdp")
	require.NoError(t, err)
	hwx, err := EntriesFor("hwx")
	require.NoError(t, err)

	assert.Equal(t, hdp, hwx)
}

func TestEntriesFor_GroupsPrecedeUsers(t *testing.T) {
	for _, dist := range []string{"cdh", "hdp"} {
		m, err := EntriesFor(dist)
		require.NoError(t, err)

		groupIndex := make(map[string]int)
		for i, id := range m.Identities {
			if id.Kind == KindGroup {
				groupIndex[id.Name] = i
			}
		}
		for i, id := range m.Identities {
			if id.Kind != KindUser {
				continue
			}
			for _, g := range append([]string{id.PrimaryGroup}, id.SecondaryGroups...) {
				gi, ok := groupIndex[g]
				require.True(t, ok, "%s: user %s references undeclared group %s", dist, id.Name, g)
				assert.Less(t, gi, i, "%s: group %s declared after user %s", dist, g, id.Name)
			}
		}
	}
}

func TestEntriesFor_RootRuleFirst(t *testing.T) {
	for _, dist := range []string{"cdh", "hdp"} {
		m, err := EntriesFor(dist)
		require.NoError(t, err)
		require.NotEmpty(t, m.Directories)
		assert.Equal(t, "/", m.Directories[0].Path)
	}
}

func TestEntriesFor_ShippedManifestsValidate(t *testing.T) {
	for _, dist := range []string{"cdh", "hdp"} {
		m, err := EntriesFor(dist)
		require.NoError(t, err)
		assert.NoError(t, m.Validate())
		assert.NoError(t, m.ForZone("zone1").Validate())
		assert.NoError(t, m.ForZone("zone1").WithSuffix("prod").Validate())
	}
}

func TestForZone_AddsAdminOutsideSystemZone(t *testing.T) {
	m, err := EntriesFor("cdh")
	require.NoError(t, err)

	system := m.ForZone("System")
	assert.Equal(t, len(m.Identities), len(system.Identities))

	zoned := m.ForZone("hadoop-zone")
	require.Equal(t, len(m.Identities)+2, len(zoned.Identities))
	admin := zoned.Identities[len(zoned.Identities)-1]
	assert.Equal(t, "admin", admin.Name)
	assert.Equal(t, KindUser, admin.Kind)
	assert.Equal(t, "admin", admin.PrimaryGroup)
}

func TestWithSuffix_RewritesUserPaths(t *testing.T) {
	m := &Manifest{
		Distribution: "cdh",
		Identities: []IdentityEntry{
			{Name: "hive", Kind: KindGroup},
			{Name: "hive", Kind: KindUser, PrimaryGroup: "hive"},
		},
		Directories: []DirectoryRule{
			{Path: "/", Mode: 0o755, Owner: "hive", Group: "hive"},
			{Path: "/tmp", Mode: 0o1777, Owner: "hive", Group: "hive"},
			{Path: "/user", Mode: 0o755, Owner: "hive", Group: "hive"},
			{Path: "/user/hive", Mode: 0o700, Owner: "hive", Group: "hive"},
			{Path: "/user/hive/warehouse", Mode: 0o777, Owner: "hive", Group: "hive"},
		},
	}

	out := m.WithSuffix("-prod")

	assert.Equal(t, "/", out.Directories[0].Path)
	assert.Equal(t, "/tmp", out.Directories[1].Path, "non-user paths are untouched")
	assert.Equal(t, "/user", out.Directories[2].Path, "/user itself is untouched")
	assert.Equal(t, "/user/hive-prod", out.Directories[3].Path)
	assert.Equal(t, "/user/hive-prod/warehouse", out.Directories[4].Path)

	for _, d := range out.Directories {
		assert.Equal(t, "hive-prod", d.Owner)
		assert.Equal(t, "hive-prod", d.Group)
	}

	// Original manifest is untouched.
	assert.Equal(t, "/user/hive", m.Directories[3].Path)
	assert.Equal(t, "hive", m.Identities[1].Name)
}

func TestWithSuffix_NormalizesLeadingDash(t *testing.T) {
	m, err := EntriesFor("hdp")
	require.NoError(t, err)

	plain := m.WithSuffix("prod")
	dashed := m.WithSuffix("-prod")
	assert.Equal(t, dashed, plain)
}

func TestWithSuffix_EmptySuffixIsIdentity(t *testing.T) {
	m, err := EntriesFor("cdh")
	require.NoError(t, err)
	assert.Same(t, m, m.WithSuffix(""))
}

func TestWithSuffix_SuffixesProxyUsersAndMembers(t *testing.T) {
	m, err := EntriesFor("cdh")
	require.NoError(t, err)

	out := m.WithSuffix("c1")
	require.NotEmpty(t, out.ProxyUsers)
	assert.Equal(t, "flume-c1", out.ProxyUsers[0].Name)
	assert.Equal(t, "cloudera-scm-c1", out.ProxyUsers[0].Members[0].Name)
}

func TestValidate_ChildBeforeParent(t *testing.T) {
	m := &Manifest{
		Distribution: "cdh",
		Identities: []IdentityEntry{
			{Name: "hdfs", Kind: KindGroup},
			{Name: "hdfs", Kind: KindUser, PrimaryGroup: "hdfs"},
		},
		Directories: []DirectoryRule{
			{Path: "/", Mode: 0o755, Owner: "hdfs", Group: "hdfs"},
			{Path: "/tmp/hive", Mode: 0o777, Owner: "hdfs", Group: "hdfs"},
			{Path: "/tmp", Mode: 0o1777, Owner: "hdfs", Group: "hdfs"},
		},
	}

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before its parent")
}

func TestValidate_UndeclaredOwner(t *testing.T) {
	m := &Manifest{
		Distribution: "cdh",
		Identities: []IdentityEntry{
			{Name: "hdfs", Kind: KindGroup},
			{Name: "hdfs", Kind: KindUser, PrimaryGroup: "hdfs"},
		},
		Directories: []DirectoryRule{
			{Path: "/", Mode: 0o755, Owner: "nobody", Group: "hdfs"},
		},
	}

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `owner "nobody"`)
}

func TestValidate_GroupAfterUser(t *testing.T) {
	m := &Manifest{
		Distribution: "hdp",
		Identities: []IdentityEntry{
			{Name: "yarn", Kind: KindGroup},
			{Name: "yarn", Kind: KindUser, PrimaryGroup: "yarn", SecondaryGroups: []string{"hadoop"}},
			{Name: "hadoop", Kind: KindGroup},
		},
		Directories: []DirectoryRule{
			{Path: "/", Mode: 0o755, Owner: "yarn", Group: "yarn"},
		},
	}

	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared after user")
}
