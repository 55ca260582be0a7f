package codec

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase64CanDecode(t *testing.T) {
	jsonPayload := base64.StdEncoding.EncodeToString([]byte(`{"user":"ada"}`))
	binaryPayload := base64.StdEncoding.EncodeToString([]byte{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe, 0xfd, 0xfc})

	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{"json payload", jsonPayload, 100},
		{"plain text payload", "aGVsbG8gd29ybGQ=", 80},
		{"binary payload", binaryPayload, 0},
		{"below minimum length", "ab", 0},
		{"outside alphabet", "hello world!", 0},
		{"bad padding", "aGVsbG8gd29ybGQ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Base64{}.CanDecode(tt.value))
		})
	}
}

func TestBase64Decode(t *testing.T) {
	// Scenario: Base64 of "hello world" decodes to the plain text.
	assert.Equal(t, "hello world", Base64{}.Decode("aGVsbG8gd29ybGQ="))

	// JSON payloads come back pretty-printed.
	encoded := base64.StdEncoding.EncodeToString([]byte(`{"user":"ada"}`))
	assert.Contains(t, Base64{}.Decode(encoded), `"user": "ada"`)

	// Malformed input comes back unchanged rather than erroring.
	assert.Equal(t, "not base64!!", Base64{}.Decode("not base64!!"))
}

func TestBase64EncodeMinifiesJSONFirst(t *testing.T) {
	encoded, err := Base64{}.Encode("{\n  \"a\": 1\n}")
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(decoded))
}

func TestBase64RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain text", "hello world"},
		{"json", `{"session":"abc123","ttl":3600}`},
		{"unicode text", "héllo wörld — ünïcode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Base64{}.Encode(tt.input)
			require.NoError(t, err)

			decoded := Base64{}.Decode(encoded)
			if isJSONDocument(tt.input) {
				assert.JSONEq(t, tt.input, decoded)
			} else {
				assert.Equal(t, tt.input, decoded)
			}
		})
	}
}
