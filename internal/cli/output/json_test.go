package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{
		"name": "hdfs",
		"uid":  1025,
	}

	err := PrintJSON(&buf, data)
	require.NoError(t, err)

	// Indented output, decodes back to the same values
	assert.Contains(t, buf.String(), "  \"name\"")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "hdfs", decoded["name"])
	assert.Equal(t, float64(1025), decoded["uid"])
}

func TestPrintJSONSlice(t *testing.T) {
	var buf bytes.Buffer
	err := PrintJSON(&buf, []string{"hadoop", "supergroup"})
	require.NoError(t, err)

	var decoded []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"hadoop", "supergroup"}, decoded)
}
