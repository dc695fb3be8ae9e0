package catalog

import "strings"

// NormalizeSuffix ensures a non-empty cluster suffix starts with "-", the
// separator convention used for multi-cluster identity names.
func NormalizeSuffix(suffix string) string {
	if suffix == "" {
		return ""
	}
	if !strings.HasPrefix(suffix, "-") {
		return "-" + suffix
	}
	return suffix
}

// WithSuffix returns a copy of the manifest with the cluster suffix applied:
// every identity name (and every membership reference) gets the suffix, every
// directory owner/group gets the suffix, and per-user directory paths
// ("/user/<name>...") have the first segment after /user rewritten.
//
// An empty suffix returns the manifest unchanged.
func (m *Manifest) WithSuffix(suffix string) *Manifest {
	suffix = NormalizeSuffix(suffix)
	if suffix == "" {
		return m
	}

	out := &Manifest{
		Distribution: m.Distribution,
		Identities:   make([]IdentityEntry, len(m.Identities)),
		ProxyUsers:   make([]ProxyUserEntry, len(m.ProxyUsers)),
		Directories:  make([]DirectoryRule, len(m.Directories)),
	}

	for i, id := range m.Identities {
		id.Name += suffix
		if id.PrimaryGroup != "" {
			id.PrimaryGroup += suffix
		}
		groups := make([]string, len(id.SecondaryGroups))
		for j, g := range id.SecondaryGroups {
			groups[j] = g + suffix
		}
		id.SecondaryGroups = groups
		out.Identities[i] = id
	}

	for i, p := range m.ProxyUsers {
		members := make([]ProxyMember, len(p.Members))
		for j, mem := range p.Members {
			mem.Name += suffix
			members[j] = mem
		}
		out.ProxyUsers[i] = ProxyUserEntry{Name: p.Name + suffix, Members: members}
	}

	for i, d := range m.Directories {
		d.Path = suffixUserPath(d.Path, suffix)
		d.Owner += suffix
		d.Group += suffix
		out.Directories[i] = d
	}

	return out
}

// suffixUserPath rewrites "/user/<name>" and "/user/<name>/..." so that
// <name> carries the cluster suffix. All other paths pass through unchanged.
func suffixUserPath(path, suffix string) string {
	rest, ok := strings.CutPrefix(path, "/user/")
	if !ok || rest == "" {
		return path
	}
	name, tail, found := strings.Cut(rest, "/")
	if !found {
		return "/user/" + name + suffix
	}
	return "/user/" + name + suffix + "/" + tail
}

// ForZone returns a copy of the manifest adjusted for the target access zone.
//
// Deployments outside the System zone additionally get an "admin" user (the
// zone's local administrative account); the System zone already has one.
func (m *Manifest) ForZone(zone string) *Manifest {
	if strings.EqualFold(zone, "System") {
		return m
	}
	out := *m
	out.Identities = append(append([]IdentityEntry(nil), m.Identities...),
		IdentityEntry{Name: "admin", Kind: KindGroup},
		IdentityEntry{Name: "admin", Kind: KindUser, PrimaryGroup: "admin"},
	)
	return &out
}
