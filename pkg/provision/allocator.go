package provision

import (
	"fmt"

	"github.com/marmos91/hdfsprep/internal/logger"
	"github.com/marmos91/hdfsprep/pkg/catalog"
)

// Allocator resolves a desired identity name to a concrete numeric id against
// the backend's existing identity set.
//
// Resolution is read-only and idempotent: the same inputs against an
// unchanged backend always yield the same id. An identity that already exists
// under the exact name wins unconditionally; otherwise the first free id at
// or above the search origin is chosen. Ids held by differently-named
// identities are skipped, never reassigned.
type Allocator struct {
	store Store
}

// NewAllocator returns an allocator over the given store.
func NewAllocator(store Store) *Allocator {
	return &Allocator{store: store}
}

// Resolve returns the id the named identity has, or should be created with.
// It creates nothing itself.
func (a *Allocator) Resolve(kind catalog.Kind, name string, startID uint32) (uint32, error) {
	existing, err := a.lookup(kind, name)
	switch {
	case err == nil:
		logger.Debug("identity already exists, reusing id",
			logger.Kind(string(kind)), logger.Name(name), logger.ID(existing.ID))
		return existing.ID, nil
	case isNotFound(err):
		// Fall through to the id search.
	default:
		return 0, fmt.Errorf("looking up %s %q: %w", kind, name, err)
	}

	for id := startID; ; id++ {
		taken, err := a.store.IdentityExists(kind, id)
		if err != nil {
			return 0, fmt.Errorf("probing %s id %d: %w", kind, id, err)
		}
		if !taken {
			return id, nil
		}
		logger.Debug("id occupied, trying next", logger.Kind(string(kind)), logger.ID(id))
	}
}

func (a *Allocator) lookup(kind catalog.Kind, name string) (*Identity, error) {
	if kind == catalog.KindGroup {
		return a.store.LookupGroup(name)
	}
	return a.store.LookupUser(name)
}
