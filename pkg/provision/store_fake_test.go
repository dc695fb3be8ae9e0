package provision

import (
	"fmt"

	"github.com/marmos91/hdfsprep/pkg/catalog"
)

// fakeStore is an in-memory Store for engine tests. Error injection happens
// through the err field (every call fails) or the per-call hooks.
type fakeStore struct {
	users  map[string]*Identity
	groups map[string]*Identity

	memberships map[string]map[string]bool
	proxyUsers  map[string][]catalog.ProxyMember

	root string
	dirs map[string]*DirStat
	aces map[string]int

	flushes int

	mkdirs []string
	chowns []string
	chmods []string
	strips []string

	err          error
	onCreateUser func(name string, uid uint32) error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[string]*Identity),
		groups:      make(map[string]*Identity),
		memberships: make(map[string]map[string]bool),
		proxyUsers:  make(map[string][]catalog.ProxyMember),
		root:        "/ifs/zone1/hadoop",
		dirs:        make(map[string]*DirStat),
		aces:        make(map[string]int),
	}
}

func (f *fakeStore) addUser(name string, uid uint32, primaryGroup string) {
	f.users[name] = &Identity{Name: name, Kind: catalog.KindUser, ID: uid, PrimaryGroup: primaryGroup}
}

func (f *fakeStore) addGroup(name string, gid uint32) {
	f.groups[name] = &Identity{Name: name, Kind: catalog.KindGroup, ID: gid}
}

func (f *fakeStore) addDir(path string, uid, gid, mode uint32) {
	f.dirs[path] = &DirStat{UID: uid, GID: gid, Mode: mode}
}

func (f *fakeStore) LookupUser(name string) (*Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[name]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s: %w", name, ErrNotFound)
}

func (f *fakeStore) LookupGroup(name string) (*Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if g, ok := f.groups[name]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("group %s: %w", name, ErrNotFound)
}

func (f *fakeStore) IdentityExists(kind catalog.Kind, id uint32) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	set := f.users
	if kind == catalog.KindGroup {
		set = f.groups
	}
	for _, identity := range set {
		if identity.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateUser(name string, uid uint32, primaryGroup string) (*Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.onCreateUser != nil {
		if err := f.onCreateUser(name, uid); err != nil {
			return nil, err
		}
	}
	if _, ok := f.users[name]; ok {
		return nil, fmt.Errorf("user %s: %w", name, ErrExists)
	}
	if taken, _ := f.IdentityExists(catalog.KindUser, uid); taken {
		return nil, fmt.Errorf("uid %d: %w", uid, ErrExists)
	}
	f.addUser(name, uid, primaryGroup)
	return f.users[name], nil
}

func (f *fakeStore) CreateGroup(name string, gid uint32) (*Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.groups[name]; ok {
		return nil, fmt.Errorf("group %s: %w", name, ErrExists)
	}
	if taken, _ := f.IdentityExists(catalog.KindGroup, gid); taken {
		return nil, fmt.Errorf("gid %d: %w", gid, ErrExists)
	}
	f.addGroup(name, gid)
	return f.groups[name], nil
}

func (f *fakeStore) AddUserToGroup(user, group string) error {
	if f.err != nil {
		return f.err
	}
	if f.memberships[user] == nil {
		f.memberships[user] = make(map[string]bool)
	}
	if f.memberships[user][group] {
		return fmt.Errorf("%s in %s: %w", user, group, ErrExists)
	}
	f.memberships[user][group] = true
	return nil
}

func (f *fakeStore) CreateProxyUser(name string, members []catalog.ProxyMember) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.proxyUsers[name]; ok {
		return fmt.Errorf("proxy user %s: %w", name, ErrExists)
	}
	f.proxyUsers[name] = members
	return nil
}

func (f *fakeStore) FlushAuthCache() error {
	if f.err != nil {
		return f.err
	}
	f.flushes++
	return nil
}

func (f *fakeStore) RootPath() (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.root, nil
}

func (f *fakeStore) MakeDirectory(path string) error {
	if f.err != nil {
		return f.err
	}
	f.mkdirs = append(f.mkdirs, path)
	if _, ok := f.dirs[path]; ok {
		return fmt.Errorf("%s: %w", path, ErrExists)
	}
	f.dirs[path] = &DirStat{}
	return nil
}

func (f *fakeStore) StatDirectory(path string) (*DirStat, error) {
	if f.err != nil {
		return nil, f.err
	}
	if st, ok := f.dirs[path]; ok {
		return st, nil
	}
	return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
}

func (f *fakeStore) ChownDirectory(path string, uid, gid uint32) error {
	if f.err != nil {
		return f.err
	}
	st, ok := f.dirs[path]
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	st.UID, st.GID = uid, gid
	f.chowns = append(f.chowns, fmt.Sprintf("%s %d:%d", path, uid, gid))
	return nil
}

func (f *fakeStore) ChmodDirectory(path string, mode uint32) error {
	if f.err != nil {
		return f.err
	}
	st, ok := f.dirs[path]
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	st.Mode = mode
	f.chmods = append(f.chmods, fmt.Sprintf("%s %o", path, mode))
	return nil
}

func (f *fakeStore) StripACL(path string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.dirs[path]; !ok {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	f.aces[path] = 0
	f.strips = append(f.strips, path)
	return nil
}
