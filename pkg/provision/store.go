// Package provision implements the idempotent provisioning engine: resolving
// declared identities to concrete uids/gids and reconciling the managed
// directory tree against a distribution manifest. All backend access goes
// through the Store interface; the run's target zone is bound into the Store
// at construction.
package provision

import "github.com/marmos91/hdfsprep/pkg/catalog"

// Identity is a concrete user or group as it exists on the backend.
type Identity struct {
	Name string
	Kind catalog.Kind
	ID   uint32

	// PrimaryGroup is the user's primary group name. Empty for groups.
	PrimaryGroup string

	// Groups are the user's group memberships as reported by the backend.
	Groups []string
}

// DirStat is the ownership and mode of an existing directory.
type DirStat struct {
	UID  uint32
	GID  uint32
	Mode uint32
}

// Store is the remote identity and filesystem backend, scoped to one access
// zone. Implementations return ErrNotFound / ErrExists (wrapped) for the
// corresponding conditions and *ConnectivityError / *PermissionError for an
// unusable backend.
type Store interface {
	// LookupUser returns the user with the given name, or ErrNotFound.
	LookupUser(name string) (*Identity, error)

	// LookupGroup returns the group with the given name, or ErrNotFound.
	LookupGroup(name string) (*Identity, error)

	// IdentityExists reports whether any identity of the given kind
	// occupies the numeric id.
	IdentityExists(kind catalog.Kind, id uint32) (bool, error)

	// CreateUser creates a user with a fixed uid and primary group.
	// Returns ErrExists if the name or uid is already taken.
	CreateUser(name string, uid uint32, primaryGroup string) (*Identity, error)

	// CreateGroup creates a group with a fixed gid.
	// Returns ErrExists if the name or gid is already taken.
	CreateGroup(name string, gid uint32) (*Identity, error)

	// AddUserToGroup adds a secondary group membership.
	// Returns ErrExists if the user is already a member.
	AddUserToGroup(user, group string) error

	// CreateProxyUser creates an HDFS proxy user with the given members.
	// Returns ErrExists if the proxy user already exists.
	CreateProxyUser(name string, members []catalog.ProxyMember) error

	// FlushAuthCache invalidates the backend's identity cache so freshly
	// created identities resolve immediately.
	FlushAuthCache() error

	// RootPath returns the managed HDFS root for the zone.
	RootPath() (string, error)

	// MakeDirectory creates a directory at the absolute backend path.
	// Returns ErrExists if the path is already present.
	MakeDirectory(path string) error

	// StatDirectory returns ownership and mode, or ErrNotFound.
	StatDirectory(path string) (*DirStat, error)

	// ChownDirectory sets the owning uid and gid.
	ChownDirectory(path string, uid, gid uint32) error

	// ChmodDirectory sets the POSIX mode bits, including the sticky/setgid/
	// setuid bits in the leading octal digit.
	ChmodDirectory(path string, mode uint32) error

	// StripACL removes all access-control entries, leaving POSIX mode bits
	// authoritative.
	StripACL(path string) error
}

// IDMap is the resolved name-to-id mapping produced by an identity run and
// consumed by the directory reconciler.
type IDMap struct {
	UIDs map[string]uint32
	GIDs map[string]uint32
}

// NewIDMap returns an empty mapping.
func NewIDMap() IDMap {
	return IDMap{UIDs: make(map[string]uint32), GIDs: make(map[string]uint32)}
}

// UID returns the uid for a user name.
func (m IDMap) UID(name string) (uint32, bool) {
	id, ok := m.UIDs[name]
	return id, ok
}

// GID returns the gid for a group name.
func (m IDMap) GID(name string) (uint32, bool) {
	id, ok := m.GIDs[name]
	return id, ok
}
