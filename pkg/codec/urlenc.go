package codec

import (
	"net/url"
	"strings"
)

// URL decodes percent-encoded values.
type URL struct{}

// urlTextConfidence is the score for a percent-decode that yields readable
// text rather than JSON.
const urlTextConfidence = 70

func (URL) Name() string        { return "url" }
func (URL) DisplayName() string { return "URL encoded" }

func (URL) CanDecode(value string) int {
	if !strings.Contains(value, "%") {
		return 0
	}
	// A JSON document that merely contains a percent-encoded substring is
	// not itself percent-encoded; leave it to the JSON codec.
	t := strings.TrimSpace(value)
	if strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[") {
		return 0
	}
	decoded, err := url.PathUnescape(value)
	if err != nil || decoded == value {
		return 0
	}
	if isJSONDocument(decoded) {
		return 100
	}
	if isMeaningfulText(decoded, textRatioDefault) {
		return urlTextConfidence
	}
	return 0
}

// Decode percent-decodes the value, pretty-printing the result when it is
// JSON. Invalid escapes come back unchanged.
func (URL) Decode(value string) string {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return value
	}
	if pretty, ok := prettyJSON(decoded); ok {
		return pretty
	}
	return decoded
}

// Encode minifies JSON payloads first, then percent-encodes.
func (URL) Encode(value string) (string, error) {
	if compact, ok := minifyJSON(value); ok {
		value = compact
	}
	return url.PathEscape(value), nil
}
