package onefs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/marmos91/hdfsprep/pkg/provision"
)

// The namespace API addresses files by their absolute cluster path appended
// to /namespace, e.g. /namespace/ifs/zone1/hadoop/tmp.
const namespacePrefix = "/namespace"

// containerHeaders marks a namespace PUT as a directory creation.
var containerHeaders = map[string]string{"X-Isi-Ifs-Target-Type": "container"}

// persona identifies an owner or group in ACL documents, e.g. "UID:1025".
type persona struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}

// aclDocument is the namespace API's ?acl representation. Mode is octal
// with the sticky/setgid/setuid bits in the leading digit.
type aclDocument struct {
	Owner         *persona `json:"owner,omitempty"`
	Group         *persona `json:"group,omitempty"`
	Mode          string   `json:"mode,omitempty"`
	Authoritative string   `json:"authoritative,omitempty"`
}

// stripACLDocument serializes the explicit empty acl array an entry wipe
// needs; omitempty would drop it.
type stripACLDocument struct {
	ACL           []any  `json:"acl"`
	Authoritative string `json:"authoritative"`
}

// statDocument is what a GET ?acl returns.
type statDocument struct {
	Owner persona `json:"owner"`
	Group persona `json:"group"`
	Mode  string  `json:"mode"`
}

// MakeDirectory creates a directory at the absolute cluster path.
func (c *Client) MakeDirectory(path string) error {
	return c.put(namespacePrefix+path, containerHeaders, nil)
}

// StatDirectory returns the ownership and mode of an existing directory.
func (c *Client) StatDirectory(path string) (*provision.DirStat, error) {
	var doc statDocument
	if err := c.get(namespacePrefix+path+"?acl", &doc); err != nil {
		return nil, err
	}

	uid, err := parsePersonaID(doc.Owner.ID, "UID")
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	gid, err := parsePersonaID(doc.Group.ID, "GID")
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	mode, err := strconv.ParseUint(doc.Mode, 8, 32)
	if err != nil {
		return nil, fmt.Errorf("stat %s: bad mode %q: %w", path, doc.Mode, err)
	}

	return &provision.DirStat{UID: uid, GID: gid, Mode: uint32(mode)}, nil
}

// ChownDirectory sets the owning uid and gid without touching the mode.
func (c *Client) ChownDirectory(path string, uid, gid uint32) error {
	doc := aclDocument{
		Owner:         &persona{ID: fmt.Sprintf("UID:%d", uid), Type: "UID"},
		Group:         &persona{ID: fmt.Sprintf("GID:%d", gid), Type: "GID"},
		Authoritative: "mode",
	}
	return c.putACL(path, doc)
}

// ChmodDirectory sets the POSIX mode bits.
func (c *Client) ChmodDirectory(path string, mode uint32) error {
	doc := aclDocument{
		Mode:          fmt.Sprintf("%04o", mode),
		Authoritative: "mode",
	}
	return c.putACL(path, doc)
}

// StripACL removes every access-control entry, leaving the POSIX mode bits
// authoritative.
func (c *Client) StripACL(path string) error {
	doc := stripACLDocument{ACL: []any{}, Authoritative: "acl"}
	return c.putACL(path, doc)
}

func (c *Client) putACL(path string, doc any) error {
	return c.put(namespacePrefix+path+"?acl", nil, doc)
}

// parsePersonaID extracts the numeric id from a persona like "UID:1025".
func parsePersonaID(id, prefix string) (uint32, error) {
	rest, ok := strings.CutPrefix(id, prefix+":")
	if !ok {
		return 0, fmt.Errorf("unexpected persona id %q", id)
	}
	n, err := strconv.ParseUint(rest, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("unexpected persona id %q: %w", id, err)
	}
	return uint32(n), nil
}
