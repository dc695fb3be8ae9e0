package provision

import (
	"errors"
	"fmt"

	"github.com/marmos91/hdfsprep/pkg/catalog"
)

// Sentinel errors returned (wrapped) by Store implementations.
var (
	// ErrNotFound indicates the named identity or path does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExists indicates a create collided with an existing identity,
	// membership, or directory.
	ErrExists = errors.New("already exists")
)

// ConnectivityError indicates the backend is unreachable. It is fatal: the
// run aborts immediately.
type ConnectivityError struct {
	Endpoint string
	Err      error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("backend unreachable at %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// PermissionError indicates the backend rejected a call for lack of
// privilege. It is fatal: the run aborts immediately.
type PermissionError struct {
	// Op names the rejected backend operation, so the message identifies
	// the missing capability.
	Op  string
	Err error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("insufficient privilege for %s: %v", e.Op, e.Err)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// ConflictError indicates an identity creation kept colliding after a
// re-resolve, which means something else is mutating the zone concurrently.
type ConflictError struct {
	Kind catalog.Kind
	Name string
	ID   uint32
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q still collides at id %d after re-resolving; is another run mutating the zone?", e.Kind, e.Name, e.ID)
}

// UnresolvedIdentityError indicates a directory's declared owner or group has
// not been provisioned yet. It fails the directory entry, not the run.
type UnresolvedIdentityError struct {
	Kind catalog.Kind
	Name string
}

func (e *UnresolvedIdentityError) Error() string {
	return fmt.Sprintf("%s %q has not been provisioned; run the users pass first", e.Kind, e.Name)
}

func isNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func isExists(err error) bool { return errors.Is(err, ErrExists) }

// IsFatal reports whether err must abort the whole run rather than just the
// entry that produced it.
func IsFatal(err error) bool {
	var connErr *ConnectivityError
	var permErr *PermissionError
	return errors.As(err, &connErr) || errors.As(err, &permErr)
}
