package provision

import (
	"fmt"

	"github.com/marmos91/hdfsprep/internal/logger"
	"github.com/marmos91/hdfsprep/pkg/catalog"
)

// DefaultStartID is the lowest uid/gid the allocator searches from when no
// other origin is configured. Ids below it are conventionally reserved for
// system accounts.
const DefaultStartID = 1025

// IdentityOptions configures an identity provisioning pass.
type IdentityOptions struct {
	// StartUID and StartGID are the id search origins. Zero means
	// DefaultStartID.
	StartUID uint32
	StartGID uint32

	// DryRun runs the read/allocate path only; nothing is created on the
	// backend. The replication artifact is still produced.
	DryRun bool
}

// IdentityResult is the outcome of a provisioning pass.
type IdentityResult struct {
	// IDMap covers every declared identity, whether created or pre-existing.
	IDMap IDMap

	// Artifact describes the intended end state for replay elsewhere.
	Artifact *Artifact

	// Warnings are non-fatal findings: attribute mismatches on pre-existing
	// identities, memberships already in place, and the like. Pre-existing
	// identities are never mutated.
	Warnings []string
}

// IdentityProvisioner creates or verifies the users and groups a manifest
// declares, in manifest order, with ids resolved by the Allocator.
type IdentityProvisioner struct {
	store Store
	alloc *Allocator
	opts  IdentityOptions

	// nextUID/nextGID keep freshly allocated ids contiguous across entries,
	// matching what operators expect from a first run against an empty zone.
	nextUID uint32
	nextGID uint32
}

// NewIdentityProvisioner returns a provisioner over the given store.
func NewIdentityProvisioner(store Store, opts IdentityOptions) *IdentityProvisioner {
	if opts.StartUID == 0 {
		opts.StartUID = DefaultStartID
	}
	if opts.StartGID == 0 {
		opts.StartGID = DefaultStartID
	}
	return &IdentityProvisioner{
		store:   store,
		alloc:   NewAllocator(store),
		opts:    opts,
		nextUID: opts.StartUID,
		nextGID: opts.StartGID,
	}
}

// Provision walks the manifest's identities in declaration order and brings
// the backend to the declared state. Repeated runs against an unchanged
// backend resolve every identity to the same id and change nothing.
//
// ConnectivityError and PermissionError abort immediately; everything else
// is surfaced through IdentityResult.Warnings.
func (p *IdentityProvisioner) Provision(m *catalog.Manifest) (*IdentityResult, error) {
	res := &IdentityResult{IDMap: NewIDMap(), Artifact: &Artifact{}}

	for _, entry := range m.Identities {
		var err error
		if entry.Kind == catalog.KindGroup {
			err = p.provisionGroup(entry, res)
		} else {
			err = p.provisionUser(entry, res)
		}
		if err != nil {
			return nil, err
		}
	}

	for _, proxy := range m.ProxyUsers {
		if err := p.provisionProxyUser(proxy, res); err != nil {
			return nil, err
		}
	}

	if !p.opts.DryRun {
		logger.Info("flushing backend auth cache")
		if err := p.store.FlushAuthCache(); err != nil {
			if IsFatal(err) {
				return nil, err
			}
			res.warnf("auth cache flush failed: %v", err)
		}
	}

	return res, nil
}

func (p *IdentityProvisioner) provisionGroup(entry catalog.IdentityEntry, res *IdentityResult) error {
	existing, err := p.store.LookupGroup(entry.Name)
	if err == nil {
		logger.Info("group already exists", logger.Name(entry.Name), logger.ID(existing.ID))
		res.IDMap.GIDs[entry.Name] = existing.ID
		res.Artifact.AddGroup(entry.Name, existing.ID)
		return nil
	}
	if !isNotFound(err) {
		return err
	}

	gid, err := p.alloc.Resolve(catalog.KindGroup, entry.Name, p.startID(entry))
	if err != nil {
		return err
	}

	if p.opts.DryRun {
		logger.Info("would create group", logger.Name(entry.Name), logger.ID(gid))
	} else {
		logger.Info("creating group", logger.Name(entry.Name), logger.ID(gid))
		created, err := p.createGroupRetrying(entry.Name, gid)
		if err != nil {
			return err
		}
		gid = created
	}

	res.IDMap.GIDs[entry.Name] = gid
	res.Artifact.AddGroup(entry.Name, gid)
	p.nextGID = gid + 1
	return nil
}

// createGroupRetrying handles a create that races with an external creation:
// one re-resolve, then the collision is a hard conflict.
func (p *IdentityProvisioner) createGroupRetrying(name string, gid uint32) (uint32, error) {
	_, err := p.store.CreateGroup(name, gid)
	if err == nil {
		return gid, nil
	}
	if !isExists(err) {
		return 0, err
	}

	logger.Warn("group creation collided, re-resolving", logger.Name(name), logger.ID(gid))
	resolved, rerr := p.alloc.Resolve(catalog.KindGroup, name, gid)
	if rerr != nil {
		return 0, rerr
	}
	if existing, lerr := p.store.LookupGroup(name); lerr == nil {
		// Someone else created the group itself; reuse it.
		return existing.ID, nil
	}
	if _, err := p.store.CreateGroup(name, resolved); err != nil {
		if isExists(err) {
			return 0, &ConflictError{Kind: catalog.KindGroup, Name: name, ID: resolved}
		}
		return 0, err
	}
	return resolved, nil
}

func (p *IdentityProvisioner) provisionUser(entry catalog.IdentityEntry, res *IdentityResult) error {
	primaryGID, ok := res.IDMap.GID(entry.PrimaryGroup)
	if !ok {
		// Manifest validation guarantees the group was declared earlier.
		return fmt.Errorf("primary group %q of user %q was not provisioned", entry.PrimaryGroup, entry.Name)
	}

	existing, err := p.store.LookupUser(entry.Name)
	switch {
	case err == nil:
		logger.Info("user already exists", logger.Name(entry.Name), logger.ID(existing.ID))
		if existing.PrimaryGroup != "" && existing.PrimaryGroup != entry.PrimaryGroup {
			res.warnf("user %s exists with primary group %s, manifest declares %s; leaving it untouched",
				entry.Name, existing.PrimaryGroup, entry.PrimaryGroup)
		}
		res.IDMap.UIDs[entry.Name] = existing.ID
	case isNotFound(err):
		uid, err := p.alloc.Resolve(catalog.KindUser, entry.Name, p.startID(entry))
		if err != nil {
			return err
		}
		if p.opts.DryRun {
			logger.Info("would create user", logger.Name(entry.Name), logger.ID(uid), logger.Group(entry.PrimaryGroup))
		} else {
			logger.Info("creating user", logger.Name(entry.Name), logger.ID(uid), logger.Group(entry.PrimaryGroup))
			uid, err = p.createUserRetrying(entry.Name, uid, entry.PrimaryGroup)
			if err != nil {
				return err
			}
		}
		res.IDMap.UIDs[entry.Name] = uid
		p.nextUID = uid + 1
	default:
		return err
	}

	for _, group := range entry.SecondaryGroups {
		if p.opts.DryRun {
			logger.Info("would add user to group", logger.User(entry.Name), logger.Group(group))
			continue
		}
		logger.Info("adding user to group", logger.User(entry.Name), logger.Group(group))
		if err := p.store.AddUserToGroup(entry.Name, group); err != nil {
			if isExists(err) {
				res.warnf("user %s is already a member of %s", entry.Name, group)
				continue
			}
			return err
		}
	}

	res.Artifact.AddUser(entry.Name, res.IDMap.UIDs[entry.Name], entry.PrimaryGroup, primaryGID, entry.SecondaryGroups)
	return nil
}

func (p *IdentityProvisioner) createUserRetrying(name string, uid uint32, primaryGroup string) (uint32, error) {
	_, err := p.store.CreateUser(name, uid, primaryGroup)
	if err == nil {
		return uid, nil
	}
	if !isExists(err) {
		return 0, err
	}

	logger.Warn("user creation collided, re-resolving", logger.Name(name), logger.ID(uid))
	resolved, rerr := p.alloc.Resolve(catalog.KindUser, name, uid)
	if rerr != nil {
		return 0, rerr
	}
	if existing, lerr := p.store.LookupUser(name); lerr == nil {
		return existing.ID, nil
	}
	if _, err := p.store.CreateUser(name, resolved, primaryGroup); err != nil {
		if isExists(err) {
			return 0, &ConflictError{Kind: catalog.KindUser, Name: name, ID: resolved}
		}
		return 0, err
	}
	return resolved, nil
}

func (p *IdentityProvisioner) provisionProxyUser(proxy catalog.ProxyUserEntry, res *IdentityResult) error {
	if p.opts.DryRun {
		logger.Info("would create proxy user", logger.Name(proxy.Name))
		return nil
	}
	logger.Info("creating proxy user", logger.Name(proxy.Name))
	if err := p.store.CreateProxyUser(proxy.Name, proxy.Members); err != nil {
		if isExists(err) {
			res.warnf("proxy user %s already exists", proxy.Name)
			return nil
		}
		return err
	}
	return nil
}

// startID picks the search origin for an entry: the per-kind cursor, or the
// entry's own hint when that is higher.
func (p *IdentityProvisioner) startID(entry catalog.IdentityEntry) uint32 {
	cursor := p.nextUID
	if entry.Kind == catalog.KindGroup {
		cursor = p.nextGID
	}
	if entry.StartID > cursor {
		return entry.StartID
	}
	return cursor
}

func (r *IdentityResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ResolveIDMap builds the name-to-id mapping for a manifest from identities
// already present on the backend. Identities not found are simply absent from
// the map; directory entries that need them fail individually with
// UnresolvedIdentityError during reconciliation.
func ResolveIDMap(store Store, m *catalog.Manifest) (IDMap, error) {
	ids := NewIDMap()
	for _, entry := range m.Identities {
		switch entry.Kind {
		case catalog.KindUser:
			user, err := store.LookupUser(entry.Name)
			if err != nil {
				if isNotFound(err) {
					continue
				}
				return ids, err
			}
			ids.UIDs[entry.Name] = user.ID
		case catalog.KindGroup:
			group, err := store.LookupGroup(entry.Name)
			if err != nil {
				if isNotFound(err) {
					continue
				}
				return ids, err
			}
			ids.GIDs[entry.Name] = group.ID
		}
	}
	return ids, nil
}
