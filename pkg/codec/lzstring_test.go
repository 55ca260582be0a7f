package codec

import (
	"strings"
	"testing"
	"unicode/utf16"

	lzstring "github.com/daku10/go-lz-string"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLZStringEncodeDecodeJSON(t *testing.T) {
	encoded, err := LZString{}.Encode(`{"hp":100}`)
	require.NoError(t, err)
	require.NotEqual(t, `{"hp":100}`, encoded)

	// Decompression recovers a real JSON document, the strongest signal.
	assert.Equal(t, 100, LZString{}.CanDecode(encoded))

	decoded := LZString{}.Decode(encoded)
	assert.Contains(t, decoded, `"hp": 100`)
	assert.JSONEq(t, `{"hp":100}`, decoded)
}

func TestLZStringDecodeAllVariants(t *testing.T) {
	const payload = `{"quest":"find the grail","progress":42}`

	base64Form, err := lzstring.CompressToBase64(payload)
	require.NoError(t, err)
	uriForm, err := lzstring.CompressToEncodedURIComponent(payload)
	require.NoError(t, err)
	utf16Units, err := lzstring.CompressToUTF16(payload)
	require.NoError(t, err)
	utf16Form := string(utf16.Decode(utf16Units))

	for name, compressed := range map[string]string{
		"base64": base64Form,
		"uri":    uriForm,
		"utf16":  utf16Form,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 100, LZString{}.CanDecode(compressed))
			assert.JSONEq(t, payload, LZString{}.Decode(compressed))
		})
	}
}

// Tiny inputs that happen to "decompress" must not be claimed unless the
// output is JSON; heuristics cannot be trusted below the length guard.
func TestLZStringShortInputGuard(t *testing.T) {
	shorts := []string{"ab", "hello", "abc123", "x%20y", "aGVsbG8=", "short-value"}
	for _, value := range shorts {
		assert.Equal(t, 0, LZString{}.CanDecode(value), "input %q", value)
	}
}

func TestLZStringCanDecodeRejectsPlainText(t *testing.T) {
	assert.Equal(t, 0, LZString{}.CanDecode(strings.Repeat("plain ascii text, nothing compressed here. ", 5)))
}

func TestLZStringDecodeLeavesUndecodableUntouched(t *testing.T) {
	value := "definitely not compressed data, just a sentence long enough to matter"
	assert.Equal(t, value, LZString{}.Decode(value))
}

// Encode always emits the UTF16 variant, whichever variant the original
// value used.
func TestLZStringEncodeNormalizesToUTF16(t *testing.T) {
	const payload = `{"inventory":["sword","shield","potion of haste"]}`

	base64Form, err := lzstring.CompressToBase64(payload)
	require.NoError(t, err)

	decoded := LZString{}.Decode(base64Form)
	reencoded, err := LZString{}.Encode(decoded)
	require.NoError(t, err)

	viaUTF16, err := lzstring.DecompressFromUTF16(utf16.Encode([]rune(reencoded)))
	require.NoError(t, err)
	assert.JSONEq(t, payload, viaUTF16)
}

func TestLZStringRoundTripText(t *testing.T) {
	input := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 4)

	encoded, err := LZString{}.Encode(input)
	require.NoError(t, err)
	assert.Equal(t, input, LZString{}.Decode(encoded))
}
