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

func TestScanFindsDumps(t *testing.T) {
	dir := t.TempDir()

	dumpContents := `[{"origin": "https://example.com", "store": "localStorage", "key": "k", "value": "aGVsbG8gd29ybGQ="}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site.json"), []byte(dumpContents), 0o644))
	// not a dump; should be skipped, not fatal
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"setting": true}`), 0o644))

	buf := &bytes.Buffer{}
	s := ScanCmd{registry: newRegistry(), out: buf}

	err := s.Run(ScanInput{Dir: dir, Output: "json"})
	require.NoError(t, err)

	var results []struct {
		Path     string         `json:"path"`
		Entries  int            `json:"entries"`
		Detected map[string]int `json:"detected"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Path, "site.json")
	assert.Equal(t, 1, results[0].Entries)
	assert.Equal(t, 1, results[0].Detected["base64"])
}

func TestScanRejectsNonDirectory(t *testing.T) {
	s := ScanCmd{registry: newRegistry(), out: &bytes.Buffer{}}

	err := s.Run(ScanInput{Dir: filepath.Join(t.TempDir(), "missing")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}
