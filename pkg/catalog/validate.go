package catalog

import (
	"fmt"
	"path"
)

// Validate checks the structural invariants callers rely on at provisioning
// time: declaration order is dependency order, and every referenced identity
// is declared. Manifests shipped with this package always pass; the check
// exists so order stays an explicit property rather than an accident of the
// tables.
func (m *Manifest) Validate() error {
	users := make(map[string]int, len(m.Identities))
	groups := make(map[string]int, len(m.Identities))

	for i, id := range m.Identities {
		switch id.Kind {
		case KindUser:
			if _, ok := users[id.Name]; ok {
				return fmt.Errorf("manifest %s: duplicate user %q", m.Distribution, id.Name)
			}
			users[id.Name] = i
			if id.PrimaryGroup == "" {
				return fmt.Errorf("manifest %s: user %q has no primary group", m.Distribution, id.Name)
			}
			refs := append([]string{id.PrimaryGroup}, id.SecondaryGroups...)
			for _, g := range refs {
				gi, ok := groups[g]
				if !ok {
					return fmt.Errorf("manifest %s: user %q references undeclared group %q", m.Distribution, id.Name, g)
				}
				if gi > i {
					return fmt.Errorf("manifest %s: group %q declared after user %q that needs it", m.Distribution, g, id.Name)
				}
			}
		case KindGroup:
			if _, ok := groups[id.Name]; ok {
				return fmt.Errorf("manifest %s: duplicate group %q", m.Distribution, id.Name)
			}
			groups[id.Name] = i
		default:
			return fmt.Errorf("manifest %s: identity %q has unknown kind %q", m.Distribution, id.Name, id.Kind)
		}
	}

	for _, p := range m.ProxyUsers {
		if _, ok := users[p.Name]; !ok {
			return fmt.Errorf("manifest %s: proxy user %q is not a declared user", m.Distribution, p.Name)
		}
		for _, mem := range p.Members {
			switch mem.Kind {
			case KindUser:
				if _, ok := users[mem.Name]; !ok {
					return fmt.Errorf("manifest %s: proxy user %q member %q is not a declared user", m.Distribution, p.Name, mem.Name)
				}
			case KindGroup:
				if _, ok := groups[mem.Name]; !ok {
					return fmt.Errorf("manifest %s: proxy user %q member %q is not a declared group", m.Distribution, p.Name, mem.Name)
				}
			}
		}
	}

	return m.validateDirectories(users, groups)
}

func (m *Manifest) validateDirectories(users, groups map[string]int) error {
	if len(m.Directories) == 0 {
		return fmt.Errorf("manifest %s: no directories declared", m.Distribution)
	}
	if m.Directories[0].Path != "/" {
		return fmt.Errorf("manifest %s: first directory rule must be the tree root, got %q", m.Distribution, m.Directories[0].Path)
	}

	declared := make(map[string]bool, len(m.Directories))
	for _, d := range m.Directories {
		if !path.IsAbs(d.Path) || path.Clean(d.Path) != d.Path {
			return fmt.Errorf("manifest %s: directory path %q is not a clean absolute path", m.Distribution, d.Path)
		}
		if declared[d.Path] {
			return fmt.Errorf("manifest %s: duplicate directory %q", m.Distribution, d.Path)
		}
		if parent := path.Dir(d.Path); d.Path != "/" && !declared[parent] {
			return fmt.Errorf("manifest %s: directory %q declared before its parent %q", m.Distribution, d.Path, parent)
		}
		declared[d.Path] = true

		if _, ok := users[d.Owner]; !ok {
			return fmt.Errorf("manifest %s: directory %q owner %q is not a declared user", m.Distribution, d.Path, d.Owner)
		}
		if _, ok := groups[d.Group]; !ok {
			return fmt.Errorf("manifest %s: directory %q group %q is not a declared group", m.Distribution, d.Path, d.Group)
		}
	}
	return nil
}
