package logger

import (
	"fmt"
	"log/slog"
)

// Standard field keys for structured logging. Use these consistently so the
// json output stays queryable across the users and directories passes.
const (
	// Identity provisioning
	KeyKind  = "kind"  // identity kind: user, group
	KeyName  = "name"  // identity name
	KeyID    = "id"    // numeric id being resolved or created
	KeyUser  = "user"  // user name in a membership operation
	KeyGroup = "group" // group name in a membership operation
	KeyUID   = "uid"   // resolved uid
	KeyGID   = "gid"   // resolved gid

	// Directory reconciliation
	KeyPath    = "path"    // backend path
	KeyMode    = "mode"    // POSIX mode, octal
	KeyEntries = "entries" // number of manifest entries in a pass
	KeyOutcome = "outcome" // per-directory outcome

	// Run context
	KeyDist    = "dist"    // Hadoop distribution
	KeyZone    = "zone"    // backend access zone
	KeyAddress = "address" // backend API address
	KeyScript  = "script"  // replication script path

	// Metadata
	KeyError      = "error"
	KeyDurationMs = "duration_ms"
)

// Kind returns a slog.Attr for an identity kind.
func Kind(kind string) slog.Attr {
	return slog.String(KeyKind, kind)
}

// Name returns a slog.Attr for an identity name.
func Name(name string) slog.Attr {
	return slog.String(KeyName, name)
}

// ID returns a slog.Attr for a numeric identity id.
func ID(id uint32) slog.Attr {
	return slog.Uint64(KeyID, uint64(id))
}

// User returns a slog.Attr for a user name.
func User(name string) slog.Attr {
	return slog.String(KeyUser, name)
}

// Group returns a slog.Attr for a group name.
func Group(name string) slog.Attr {
	return slog.String(KeyGroup, name)
}

// UID returns a slog.Attr for a resolved uid.
func UID(uid uint32) slog.Attr {
	return slog.Uint64(KeyUID, uint64(uid))
}

// GID returns a slog.Attr for a resolved gid.
func GID(gid uint32) slog.Attr {
	return slog.Uint64(KeyGID, uint64(gid))
}

// Path returns a slog.Attr for a backend path.
func Path(path string) slog.Attr {
	return slog.String(KeyPath, path)
}

// Mode returns a slog.Attr for a POSIX mode, rendered octal.
func Mode(mode uint32) slog.Attr {
	return slog.String(KeyMode, fmt.Sprintf("%04o", mode))
}

// Entries returns a slog.Attr for a manifest entry count.
func Entries(n int) slog.Attr {
	return slog.Int(KeyEntries, n)
}

// Outcome returns a slog.Attr for a per-directory outcome.
func Outcome(outcome string) slog.Attr {
	return slog.String(KeyOutcome, outcome)
}

// Dist returns a slog.Attr for the Hadoop distribution.
func Dist(dist string) slog.Attr {
	return slog.String(KeyDist, dist)
}

// Zone returns a slog.Attr for the backend access zone.
func Zone(zone string) slog.Attr {
	return slog.String(KeyZone, zone)
}

// Address returns a slog.Attr for the backend API address.
func Address(addr string) slog.Attr {
	return slog.String(KeyAddress, addr)
}

// Script returns a slog.Attr for the replication script path.
func Script(path string) slog.Attr {
	return slog.String(KeyScript, path)
}

// Err returns a slog.Attr for an error. Nil-safe.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
