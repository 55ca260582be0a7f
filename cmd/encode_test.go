package cmd

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeBase64(t *testing.T) {
	buf := &bytes.Buffer{}
	e := EncodeCmd{registry: newRegistry(), out: buf}

	err := e.Run(EncodeInput{Value: "hello world", CodecName: "base64"})
	require.NoError(t, err)

	encoded := strings.TrimSpace(buf.String())
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(decoded))
}

func TestEncodeJSONMinifies(t *testing.T) {
	buf := &bytes.Buffer{}
	e := EncodeCmd{registry: newRegistry(), out: buf}

	err := e.Run(EncodeInput{Value: "{\n  \"a\": 1\n}", CodecName: "json"})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, strings.TrimSpace(buf.String()))
}

func TestEncodeUnknownCodec(t *testing.T) {
	e := EncodeCmd{registry: newRegistry(), out: &bytes.Buffer{}}

	err := e.Run(EncodeInput{Value: "x", CodecName: "gzip"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown codec "gzip"`)
}
