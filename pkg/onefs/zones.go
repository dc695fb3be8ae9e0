package onefs

import (
	"fmt"
	"net/url"
)

type accessZone struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type zonesResponse struct {
	Zones []accessZone `json:"zones"`
}

type hdfsSettings struct {
	RootDirectory string `json:"root_directory"`
}

type hdfsSettingsResponse struct {
	Settings hdfsSettings `json:"settings"`
}

// ZonePath returns the base path of the client's access zone.
func (c *Client) ZonePath() (string, error) {
	var resp zonesResponse
	path := platformPrefix + "/zones/" + url.PathEscape(c.zone)
	if err := c.get(path, &resp); err != nil {
		return "", err
	}
	if len(resp.Zones) == 0 {
		return "", fmt.Errorf("access zone %q not found", c.zone)
	}
	return resp.Zones[0].Path, nil
}

// RootPath returns the managed HDFS root for the zone: the zone's HDFS root
// directory setting, or the zone base path when no root has been configured.
func (c *Client) RootPath() (string, error) {
	var resp hdfsSettingsResponse
	if err := c.get(c.zoned(platformPrefix+"/protocols/hdfs/settings", nil), &resp); err != nil {
		return "", err
	}
	if resp.Settings.RootDirectory != "" {
		return resp.Settings.RootDirectory, nil
	}
	return c.ZonePath()
}
