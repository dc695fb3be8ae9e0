package onefs

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/hdfsprep/pkg/provision"
)

func TestMakeDirectory(t *testing.T) {
	var gotMethod, gotPath, gotTarget string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotTarget = r.Header.Get("X-Isi-Ifs-Target-Type")
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.MakeDirectory("/ifs/zone1/hadoop/tmp"))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/namespace/ifs/zone1/hadoop/tmp", gotPath)
	assert.Equal(t, "container", gotTarget)
}

func TestStatDirectory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/namespace/ifs/zone1/hadoop/tmp", r.URL.Path)
		_, hasACL := r.URL.Query()["acl"]
		assert.True(t, hasACL)

		_ = json.NewEncoder(w).Encode(statDocument{
			Owner: persona{ID: "UID:1025", Name: "hdfs", Type: "user"},
			Group: persona{ID: "GID:1026", Name: "hadoop", Type: "group"},
			Mode:  "1777",
		})
	})

	st, err := client.StatDirectory("/ifs/zone1/hadoop/tmp")
	require.NoError(t, err)
	assert.Equal(t, uint32(1025), st.UID)
	assert.Equal(t, uint32(1026), st.GID)
	assert.Equal(t, uint32(0o1777), st.Mode)
}

func TestStatDirectoryNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.StatDirectory("/ifs/zone1/hadoop/missing")
	require.ErrorIs(t, err, provision.ErrNotFound)
}

func TestStatDirectoryRejectsBadPersona(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(statDocument{
			Owner: persona{ID: "SID:S-1-5-21-1234", Name: "DOMAIN\\svc", Type: "wellknown"},
			Group: persona{ID: "GID:1025"},
			Mode:  "0755",
		})
	})

	_, err := client.StatDirectory("/ifs/zone1/hadoop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persona")
}

func TestChownDirectory(t *testing.T) {
	var got aclDocument
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.ChownDirectory("/ifs/zone1/hadoop", 1025, 1026))
	require.NotNil(t, got.Owner)
	assert.Equal(t, "UID:1025", got.Owner.ID)
	assert.Equal(t, "GID:1026", got.Group.ID)
	assert.Equal(t, "mode", got.Authoritative)
	assert.Empty(t, got.Mode)
}

func TestChmodDirectoryRendersOctal(t *testing.T) {
	var got aclDocument
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.ChmodDirectory("/ifs/zone1/hadoop/tmp", 0o1777))
	assert.Equal(t, "1777", got.Mode)
	assert.Equal(t, "mode", got.Authoritative)
}

func TestStripACLSendsEmptyEntryList(t *testing.T) {
	var raw map[string]json.RawMessage
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.StripACL("/ifs/zone1/hadoop"))
	require.Contains(t, raw, "acl")
	assert.Equal(t, "[]", string(raw["acl"]))
	assert.Equal(t, `"acl"`, string(raw["authoritative"]))
}

func TestRootPathFromHDFSSettings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/platform/11/protocols/hdfs/settings", r.URL.Path)
		_ = json.NewEncoder(w).Encode(hdfsSettingsResponse{
			Settings: hdfsSettings{RootDirectory: "/ifs/zone1/hadoop"},
		})
	})

	root, err := client.RootPath()
	require.NoError(t, err)
	assert.Equal(t, "/ifs/zone1/hadoop", root)
}

func TestRootPathFallsBackToZonePath(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/platform/11/protocols/hdfs/settings":
			_ = json.NewEncoder(w).Encode(hdfsSettingsResponse{})
		case "/platform/11/zones/zone1":
			_ = json.NewEncoder(w).Encode(zonesResponse{
				Zones: []accessZone{{Name: "zone1", Path: "/ifs/zone1"}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	root, err := client.RootPath()
	require.NoError(t, err)
	assert.Equal(t, "/ifs/zone1", root)
}
