package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestDump(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.json")
	contents := `{
		"entries": [
			{"origin": "https://shop.example", "store": "localStorage", "key": "cart", "value": "aGVsbG8gd29ybGQ="},
			{"origin": "https://shop.example", "store": "cookies", "key": "theme", "value": "dark"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestInspectJSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	i := InspectCmd{registry: newRegistry(), out: buf}

	err := i.Run(InspectInput{Path: writeTestDump(t), Output: "json"})
	require.NoError(t, err)

	var entries []struct {
		Store    string `json:"store"`
		Key      string `json:"key"`
		Encoding string `json:"encoding"`
		Decoded  string `json:"decoded"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 2)

	assert.Equal(t, "base64", entries[0].Encoding)
	assert.Equal(t, "hello world", entries[0].Decoded)
	assert.Equal(t, "raw", entries[1].Encoding)
	assert.Equal(t, "dark", entries[1].Decoded)
}

func TestInspectStoreFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	i := InspectCmd{registry: newRegistry(), out: buf}

	err := i.Run(InspectInput{Path: writeTestDump(t), Store: "cookies", Output: "json"})
	require.NoError(t, err)

	var entries []struct {
		Key string `json:"key"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "theme", entries[0].Key)
}

func TestInspectUnknownStore(t *testing.T) {
	i := InspectCmd{registry: newRegistry(), out: &bytes.Buffer{}}

	err := i.Run(InspectInput{Path: writeTestDump(t), Store: "webSQL"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown store "webSQL"`)
}

func TestInspectMissingFile(t *testing.T) {
	i := InspectCmd{registry: newRegistry(), out: &bytes.Buffer{}}

	err := i.Run(InspectInput{Path: filepath.Join(t.TempDir(), "missing.json")})

	require.Error(t, err)
}
