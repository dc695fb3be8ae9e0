package onefs

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/marmos91/hdfsprep/pkg/catalog"
	"github.com/marmos91/hdfsprep/pkg/provision"
)

// authUser is a local user as returned by the auth provider API.
type authUser struct {
	Name         string   `json:"name"`
	UID          uint32   `json:"uid"`
	GID          uint32   `json:"gid"`
	PrimaryGroup string   `json:"primary_group,omitempty"`
	MemberOf     []string `json:"member_of,omitempty"`
}

// authGroup is a local group as returned by the auth provider API.
type authGroup struct {
	Name string `json:"name"`
	GID  uint32 `json:"gid"`
}

type usersResponse struct {
	Users []authUser `json:"users"`
}

type groupsResponse struct {
	Groups []authGroup `json:"groups"`
}

type createUserRequest struct {
	Name         string `json:"name"`
	UID          uint32 `json:"uid"`
	PrimaryGroup string `json:"primary_group"`
	// Provisioned accounts are service identities; nobody logs in with them.
	Enabled *bool `json:"enabled,omitempty"`
}

type createGroupRequest struct {
	Name string `json:"name"`
	GID  uint32 `json:"gid"`
}

type groupMemberRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type proxyUserRequest struct {
	Name    string               `json:"name"`
	Members []groupMemberRequest `json:"members,omitempty"`
}

// LookupUser returns the local user with the given name.
func (c *Client) LookupUser(name string) (*provision.Identity, error) {
	var resp usersResponse
	path := c.zoned(platformPrefix+"/auth/users/"+url.PathEscape(name), nil)
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	if len(resp.Users) == 0 {
		return nil, fmt.Errorf("user %s: %w", name, provision.ErrNotFound)
	}

	u := resp.Users[0]
	return &provision.Identity{
		Name:         u.Name,
		Kind:         catalog.KindUser,
		ID:           u.UID,
		PrimaryGroup: u.PrimaryGroup,
		Groups:       u.MemberOf,
	}, nil
}

// LookupGroup returns the local group with the given name.
func (c *Client) LookupGroup(name string) (*provision.Identity, error) {
	var resp groupsResponse
	path := c.zoned(platformPrefix+"/auth/groups/"+url.PathEscape(name), nil)
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	if len(resp.Groups) == 0 {
		return nil, fmt.Errorf("group %s: %w", name, provision.ErrNotFound)
	}

	g := resp.Groups[0]
	return &provision.Identity{Name: g.Name, Kind: catalog.KindGroup, ID: g.GID}, nil
}

// IdentityExists reports whether any identity of the given kind occupies the
// numeric id in the client's zone.
func (c *Client) IdentityExists(kind catalog.Kind, id uint32) (bool, error) {
	if kind == catalog.KindGroup {
		var resp groupsResponse
		params := url.Values{"gid": []string{strconv.FormatUint(uint64(id), 10)}}
		if err := c.get(c.zoned(platformPrefix+"/auth/groups", params), &resp); err != nil {
			return false, err
		}
		return len(resp.Groups) > 0, nil
	}

	var resp usersResponse
	params := url.Values{"uid": []string{strconv.FormatUint(uint64(id), 10)}}
	if err := c.get(c.zoned(platformPrefix+"/auth/users", params), &resp); err != nil {
		return false, err
	}
	return len(resp.Users) > 0, nil
}

// CreateUser creates a local user with a fixed uid and primary group.
func (c *Client) CreateUser(name string, uid uint32, primaryGroup string) (*provision.Identity, error) {
	enabled := false
	req := createUserRequest{Name: name, UID: uid, PrimaryGroup: primaryGroup, Enabled: &enabled}
	if err := c.post(c.zoned(platformPrefix+"/auth/users", nil), req, nil); err != nil {
		return nil, err
	}
	return &provision.Identity{Name: name, Kind: catalog.KindUser, ID: uid, PrimaryGroup: primaryGroup}, nil
}

// CreateGroup creates a local group with a fixed gid.
func (c *Client) CreateGroup(name string, gid uint32) (*provision.Identity, error) {
	req := createGroupRequest{Name: name, GID: gid}
	if err := c.post(c.zoned(platformPrefix+"/auth/groups", nil), req, nil); err != nil {
		return nil, err
	}
	return &provision.Identity{Name: name, Kind: catalog.KindGroup, ID: gid}, nil
}

// AddUserToGroup adds a secondary group membership.
func (c *Client) AddUserToGroup(user, group string) error {
	req := groupMemberRequest{Type: "user", Name: user}
	path := c.zoned(platformPrefix+"/auth/groups/"+url.PathEscape(group)+"/members", nil)
	return c.post(path, req, nil)
}

// CreateProxyUser creates an HDFS proxy user with the given members.
func (c *Client) CreateProxyUser(name string, members []catalog.ProxyMember) error {
	req := proxyUserRequest{Name: name}
	for _, m := range members {
		req.Members = append(req.Members, groupMemberRequest{Type: string(m.Kind), Name: m.Name})
	}
	return c.post(c.zoned(platformPrefix+"/protocols/hdfs/proxyusers", nil), req, nil)
}

// FlushAuthCache invalidates the cluster's identity cache so freshly created
// identities resolve immediately in the HDFS protocol head.
func (c *Client) FlushAuthCache() error {
	return c.delete(c.zoned(platformPrefix+"/auth/cache", nil))
}
