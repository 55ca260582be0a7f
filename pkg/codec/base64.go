package codec

import "encoding/base64"

// Base64 decodes values stored as standard-alphabet Base64.
type Base64 struct{}

// base64MinLen rejects values too short to be worth decoding; anything under
// one Base64 quantum matches the alphabet by accident far too often.
const base64MinLen = 4

// base64TextConfidence is the score for a decode that yields readable text
// rather than JSON.
const base64TextConfidence = 80

func (Base64) Name() string        { return "base64" }
func (Base64) DisplayName() string { return "Base64" }

func (Base64) CanDecode(value string) int {
	if len(value) < base64MinLen || !isBase64Alphabet(value) {
		return 0
	}
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return 0
	}
	text := string(decoded)
	if isJSONDocument(text) {
		return 100
	}
	if isMeaningfulText(text, textRatioDefault) {
		return base64TextConfidence
	}
	return 0
}

// Decode returns the decoded payload, pretty-printed when it is JSON.
// Malformed input comes back unchanged.
func (Base64) Decode(value string) string {
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return value
	}
	text := string(decoded)
	if pretty, ok := prettyJSON(text); ok {
		return pretty
	}
	return text
}

// Encode minifies JSON payloads before encoding so the stored form stays
// compact; anything else is encoded as-is.
func (Base64) Encode(value string) (string, error) {
	if compact, ok := minifyJSON(value); ok {
		value = compact
	}
	return base64.StdEncoding.EncodeToString([]byte(value)), nil
}

func isBase64Alphabet(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '+' || c == '/' || c == '=':
		default:
			return false
		}
	}
	return true
}
