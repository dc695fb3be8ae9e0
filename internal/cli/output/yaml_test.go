package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPrintYAML(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{
		"name": "hdfs",
		"uid":  1025,
	}

	err := PrintYAML(&buf, data)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "hdfs", decoded["name"])
	assert.Equal(t, 1025, decoded["uid"])
}

func TestPrintYAMLNested(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{
		"cluster": map[string]string{"zone": "zone1"},
	}

	err := PrintYAML(&buf, data)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "zone: zone1")
}
