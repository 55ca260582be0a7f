package codec

import (
	"bytes"
	"encoding/json"
	"strings"
)

// JSON pretty-prints stored JSON documents for editing and minifies them
// back for storage.
type JSON struct{}

func (JSON) Name() string        { return "json" }
func (JSON) DisplayName() string { return "JSON" }

// CanDecode is binary: a value either is a JSON document or it is not. There
// are no partial-confidence states.
func (JSON) CanDecode(value string) int {
	if isJSONDocument(value) {
		return 100
	}
	return 0
}

// Decode re-indents the document for human editing. Non-JSON input comes
// back unchanged.
func (JSON) Decode(value string) string {
	if pretty, ok := prettyJSON(value); ok {
		return pretty
	}
	return value
}

// Encode strips insignificant whitespace for storage. Non-JSON input comes
// back unchanged.
func (JSON) Encode(value string) (string, error) {
	if compact, ok := minifyJSON(value); ok {
		return compact, nil
	}
	return value, nil
}

// isJSONDocument reports whether value is a parseable JSON object or array.
// The bracket check gates the parse attempt so non-JSON input is rejected
// cheaply; bare scalars ("123", "true") are deliberately excluded because a
// decoded numeric string is not evidence of a stored JSON document.
func isJSONDocument(value string) bool {
	t := strings.TrimSpace(value)
	if len(t) < 2 {
		return false
	}
	switch t[0] {
	case '{':
		if t[len(t)-1] != '}' {
			return false
		}
	case '[':
		if t[len(t)-1] != ']' {
			return false
		}
	default:
		return false
	}
	return json.Valid([]byte(t))
}

// prettyJSON re-indents a JSON document with two-space indentation. ok is
// false when value does not parse.
func prettyJSON(value string) (string, bool) {
	if !isJSONDocument(value) {
		return "", false
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(value)), "", "  "); err != nil {
		return "", false
	}
	return buf.String(), true
}

// minifyJSON removes insignificant whitespace from a JSON document. ok is
// false when value does not parse.
func minifyJSON(value string) (string, bool) {
	if !isJSONDocument(value) {
		return "", false
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(strings.TrimSpace(value))); err != nil {
		return "", false
	}
	return buf.String(), true
}
