// Package codec detects and reverses the encodings web applications wrap
// around values in client-side storage (cookies, localStorage, sessionStorage,
// IndexedDB). A value pulled out of storage is an opaque string; the codecs
// here sniff whether it is JSON, Base64, percent-encoded, or LZ-string
// compressed, decode it into something a human can read and edit, and
// re-encode the edited result for storage.
package codec

// Detection thresholds. These are empirically tuned, not structural: a codec
// scoring at least ConfidenceCertain ends detection immediately, and the
// best score of a full pass must reach ConfidenceAccept to be reported.
const (
	ConfidenceCertain = 90
	ConfidenceAccept  = 50
)

// minDetectLen is the shortest value detection will consider at all.
const minDetectLen = 2

// Codec detects, decodes and encodes one storage value encoding.
//
// Implementations are stateless values constructed once by NewRegistry and
// are safe for concurrent use.
type Codec interface {
	// Name is the stable identifier: "raw", "json", "base64", "url" or
	// "lzstring".
	Name() string

	// DisplayName is the human-readable label shown next to a value.
	DisplayName() string

	// CanDecode scores how certain the codec is that it owns value, from 0
	// (not mine) to 100 (certain).
	CanDecode(value string) int

	// Decode converts value into its human-readable form. It never fails:
	// input the codec cannot actually decode is returned unchanged, because
	// showing the raw value beats breaking the view.
	Decode(value string) string

	// Encode converts an edited value back into stored form. Unlike Decode
	// it reports failure, since silently writing a wrong value back into
	// storage is worse than a visible error.
	Encode(value string) (string, error)
}

// Raw is the identity codec used when no encoding is detected.
type Raw struct{}

func (Raw) Name() string        { return "raw" }
func (Raw) DisplayName() string { return "Plain text" }

// CanDecode always returns 0; Raw is the fallback, never a detection winner.
func (Raw) CanDecode(string) int { return 0 }

func (Raw) Decode(value string) string          { return value }
func (Raw) Encode(value string) (string, error) { return value, nil }
