// Package catalog holds the per-distribution manifests of identities and
// directories a Hadoop deployment needs on the backend. Manifests are built
// once per run and treated as immutable: every transformation returns a copy.
package catalog

import "fmt"

// Kind distinguishes user identities from group identities.
type Kind string

const (
	// KindUser is a local user identity.
	KindUser Kind = "user"
	// KindGroup is a local group identity.
	KindGroup Kind = "group"
)

// IdentityEntry declares one required identity.
//
// Entries appear in creation order: a group always precedes the first user
// that references it as primary or secondary group.
type IdentityEntry struct {
	// Name is the base identity name, before any cluster suffix.
	Name string
	Kind Kind

	// StartID, when non-zero, overrides the run-wide id search origin for
	// this entry.
	StartID uint32

	// PrimaryGroup is the user's primary group name. Empty for groups.
	PrimaryGroup string

	// SecondaryGroups are additional group memberships. Empty for groups.
	SecondaryGroups []string
}

// ProxyMember is one member of an HDFS proxy user.
type ProxyMember struct {
	Name string
	Kind Kind
}

// ProxyUserEntry declares an HDFS proxy user and its members.
type ProxyUserEntry struct {
	Name    string
	Members []ProxyMember
}

// DirectoryRule declares one required directory under the managed root.
//
// Rules appear in dependency order: ancestors before descendants, with the
// root rule ("/") first.
type DirectoryRule struct {
	// Path is absolute within the managed tree ("/" is the tree root).
	Path string

	// Mode holds the POSIX permission bits, including sticky/setgid/setuid.
	Mode uint32

	// Owner and Group name the owning identities.
	Owner string
	Group string
}

// Manifest is the full declarative requirement set for one distribution.
type Manifest struct {
	Distribution string
	Identities   []IdentityEntry
	ProxyUsers   []ProxyUserEntry
	Directories  []DirectoryRule
}

// UnsupportedDistributionError reports a distribution outside the closed set.
type UnsupportedDistributionError struct {
	Distribution string
}

func (e *UnsupportedDistributionError) Error() string {
	return fmt.Sprintf("unsupported Hadoop distribution %q (supported: %v)", e.Distribution, Distributions())
}

// Distributions returns the supported distribution names.
func Distributions() []string {
	return []string{"cdh", "hdp", "hwx"}
}

// EntriesFor returns the manifest for the given distribution.
//
// "hwx" is an alias for "hdp": Hortonworks renamed the platform but the
// required identities and directories are the same.
func EntriesFor(distribution string) (*Manifest, error) {
	switch distribution {
	case "cdh":
		return cdhManifest(), nil
	case "hdp", "hwx":
		return hdpManifest(), nil
	default:
		return nil, &UnsupportedDistributionError{Distribution: distribution}
	}
}

// userDecl is the compact per-distribution declaration form: a user, its
// primary group (always same-named in both distributions), and secondary
// memberships.
type userDecl struct {
	name            string
	secondaryGroups []string
}

// buildIdentities flattens user declarations into creation-ordered entries,
// inserting each referenced group once, before the first user that needs it.
func buildIdentities(users []userDecl) []IdentityEntry {
	var entries []IdentityEntry
	seen := make(map[string]bool)

	group := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		entries = append(entries, IdentityEntry{Name: name, Kind: KindGroup})
	}

	for _, u := range users {
		group(u.name)
		for _, g := range u.secondaryGroups {
			group(g)
		}
		entries = append(entries, IdentityEntry{
			Name:            u.name,
			Kind:            KindUser,
			PrimaryGroup:    u.name,
			SecondaryGroups: append([]string(nil), u.secondaryGroups...),
		})
	}
	return entries
}
