package codec

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	lzstring "github.com/daku10/go-lz-string"
)

// LZString reverses lz-string compression, the scheme web apps commonly use
// for large state blobs in localStorage. The format has four output variants
// (UTF16-safe, Base64, URI-component-safe, and the raw 16-bit form) and no
// reliable magic bytes, so detection decompresses under each variant and
// scores what comes out.
type LZString struct{}

const (
	// lzShortInputLen guards tiny values: below this length a variant that
	// "decompresses" is coincidence unless the output is JSON.
	lzShortInputLen = 20

	// lzFastPathConfidence is the score for a value carrying the UTF16
	// variant's leading-code-unit signature.
	lzFastPathConfidence = 95

	// lzHeuristicConfidence is the score for a decompression accepted on
	// the expansion-ratio heuristic rather than a JSON payload.
	lzHeuristicConfidence = 80

	// Expansion-ratio bars. The UTF16 and raw variants pack ~15 bits per
	// output character, so genuine payloads can sit near 1:1; the string
	// variants expand visibly or not at all.
	lzRatioGeneric = 1.1
	lzRatioPacked  = 0.5
)

type lzVariant struct {
	name       string
	packed     bool // near-1:1 character counts despite real expansion
	decompress func(string) (string, error)
}

// lzVariants is the fixed decode order: UTF16 first (most common in the
// wild), then the string-safe variants, then the raw form.
var lzVariants = []lzVariant{
	{name: "utf16", packed: true, decompress: lzDecompressUTF16},
	{name: "base64", decompress: lzDecompressBase64},
	{name: "uri", decompress: lzDecompressURI},
	{name: "raw", packed: true, decompress: lzDecompressRaw},
}

func (LZString) Name() string        { return "lzstring" }
func (LZString) DisplayName() string { return "LZ-string compressed" }

func (LZString) CanDecode(value string) int {
	// Fast path: the UTF16 variant packs 15-bit groups offset by +32, which
	// puts the leading code unit of any real payload outside ASCII. When the
	// signature holds and that single variant decompresses, skip the full
	// four-variant scan.
	if hasUTF16Signature(value) {
		if out, err := lzDecompressUTF16(value); err == nil && out != "" && out != value {
			if isJSONDocument(out) {
				return 100
			}
			return lzFastPathConfidence
		}
	}

	for _, v := range lzVariants {
		out, err := v.decompress(value)
		if err != nil || out == "" || out == value {
			continue
		}
		// A recovered JSON document is the strongest possible signal.
		if isJSONDocument(out) {
			return 100
		}
		if len(value) < lzShortInputLen {
			continue
		}
		ratio := float64(len([]rune(out))) / float64(len([]rune(value)))
		bar := lzRatioGeneric
		if v.packed {
			bar = lzRatioPacked
		}
		if ratio > bar && isMeaningfulText(out, textRatioStrict) {
			return lzHeuristicConfidence
		}
	}
	return 0
}

// Decode tries each variant in order and returns the first credible result:
// JSON is pretty-printed, readable text is returned as-is, and anything else
// falls through to the next variant. If nothing works the input comes back
// unchanged.
func (LZString) Decode(value string) string {
	for _, v := range lzVariants {
		out, err := v.decompress(value)
		if err != nil || out == "" || out == value {
			continue
		}
		if pretty, ok := prettyJSON(out); ok {
			return pretty
		}
		if isMeaningfulText(out, textRatioStrict) {
			return out
		}
	}
	return value
}

// Encode minifies JSON payloads to their canonical compact form, then
// compresses with the UTF16 variant. Output is always the UTF16 variant
// regardless of which variant the original stored value used; every
// edit-and-save cycle normalizes the stored form.
func (LZString) Encode(value string) (string, error) {
	if compact, ok := minifyJSON(value); ok {
		value = compact
	}
	out, err := lzCompressUTF16(value)
	if err != nil {
		return "", fmt.Errorf("lz-string compression failed: %w", err)
	}
	return out, nil
}

// hasUTF16Signature checks the leading code unit against the UTF16 variant's
// output range. ASCII-leading values can never be UTF16-compressed output.
func hasUTF16Signature(value string) bool {
	r, _ := utf8.DecodeRuneInString(value)
	return r != utf8.RuneError && r >= 0x80 && r < 0x8020
}

// The library panics on some malformed inputs; decompression of untrusted
// storage values must never escape as a panic, so every variant call runs
// behind a recover.

func lzDecompressUTF16(s string) (string, error) {
	return recoverDecompress(func() (string, error) {
		return lzstring.DecompressFromUTF16(utf16.Encode([]rune(s)))
	})
}

func lzDecompressBase64(s string) (string, error) {
	return recoverDecompress(func() (string, error) { return lzstring.DecompressFromBase64(s) })
}

func lzDecompressURI(s string) (string, error) {
	return recoverDecompress(func() (string, error) { return lzstring.DecompressFromEncodedURIComponent(s) })
}

func lzDecompressRaw(s string) (string, error) {
	return recoverDecompress(func() (string, error) {
		return lzstring.Decompress(utf16.Encode([]rune(s)))
	})
}

func lzCompressUTF16(s string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("compress: %v", r)
		}
	}()
	units, err := lzstring.CompressToUTF16(s)
	if err != nil {
		return "", err
	}
	return string(utf16.Decode(units)), nil
}

func recoverDecompress(fn func() (string, error)) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = "", fmt.Errorf("decompress: %v", r)
		}
	}()
	return fn()
}
