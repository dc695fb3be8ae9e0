package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "WARN", "text", false)
	defer InitWithWriter(&buf, "INFO", "text", false)

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestTextFormatWithFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	Info("creating group", Name("hadoop"), ID(1025))

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "creating group")
	assert.Contains(t, out, "name=hadoop")
	assert.Contains(t, out, "id=1025")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "json", false)
	defer InitWithWriter(&buf, "INFO", "text", false)

	Info("applying mode", Path("/ifs/hadoop/tmp"), Mode(0o1777), UID(1025), GID(1025))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "applying mode", record["msg"])
	assert.Equal(t, "/ifs/hadoop/tmp", record["path"])
	assert.Equal(t, "1777", record["mode"])
	assert.Equal(t, float64(1025), record["uid"])
}

func TestModeRendersOctal(t *testing.T) {
	assert.Equal(t, "0755", Mode(0o755).Value.String())
	assert.Equal(t, "1777", Mode(0o1777).Value.String())
	assert.Equal(t, "0700", Mode(0o700).Value.String())
}

func TestErrField(t *testing.T) {
	attr := Err(errors.New("connection refused"))
	assert.Equal(t, KeyError, attr.Key)
	assert.Equal(t, "connection refused", attr.Value.String())
}

func TestColorDisabledOutputIsPlain(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	Info("plain output")
	assert.NotContains(t, buf.String(), "\033[")
}

func TestColorEnabledOutputHasEscapes(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", true)
	defer InitWithWriter(&buf, "INFO", "text", false)

	Info("colored output")
	assert.Contains(t, buf.String(), "\033[32m")
}

func TestSetLevelIgnoresInvalid(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	SetLevel("VERBOSE")
	Info("still info")
	assert.Contains(t, buf.String(), "still info")
}

func TestWithBindsFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	l := With(Zone("zone1"), Dist("cdh"))
	l.Info("bound fields")

	out := buf.String()
	assert.Contains(t, out, "zone=zone1")
	assert.Contains(t, out, "dist=cdh")
}

func TestRecordsStayOnOneLine(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	Info("first")
	Info("second")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
}
