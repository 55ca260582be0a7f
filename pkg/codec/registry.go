package codec

import (
	"slices"

	"github.com/samber/lo"
)

// Registry holds the codec set in detection priority order. JSON runs first
// because it is cheap and unambiguous; order among the rest only breaks
// score ties. The registry is immutable after construction and safe for
// concurrent use.
type Registry struct {
	codecs []Codec
	raw    Raw
}

// NewRegistry builds the registry with the fixed codec set: JSON, LZString,
// Base64, URL.
func NewRegistry() *Registry {
	return &Registry{
		codecs: []Codec{JSON{}, LZString{}, Base64{}, URL{}},
	}
}

// Score is one codec's confidence for a value.
type Score struct {
	Codec      Codec
	Confidence int
}

// Detect returns the codec that owns value, or nil when none scores at least
// ConfidenceAccept.
//
// Two passes: the first short-circuits on any score of ConfidenceCertain or
// better, so a certain JSON match never pays for LZString's multi-variant
// attempts; the second takes the best remaining score, ties broken by
// registration order. Detection is a pure function of value — calling it
// twice yields the same answer.
func (r *Registry) Detect(value string) Codec {
	if len(value) < minDetectLen {
		return nil
	}
	for _, c := range r.codecs {
		if c.CanDecode(value) >= ConfidenceCertain {
			return c
		}
	}
	best := lo.MaxBy(r.Scores(value), func(a, b Score) bool {
		return a.Confidence > b.Confidence
	})
	if best.Codec == nil || best.Confidence < ConfidenceAccept {
		return nil
	}
	return best.Codec
}

// DetectOrRaw is Detect with the Raw codec as the no-match fallback.
func (r *Registry) DetectOrRaw(value string) Codec {
	if c := r.Detect(value); c != nil {
		return c
	}
	return r.raw
}

// Scores evaluates every codec against value, in registry order.
func (r *Registry) Scores(value string) []Score {
	return lo.Map(r.codecs, func(c Codec, _ int) Score {
		return Score{Codec: c, Confidence: c.CanDecode(value)}
	})
}

// Get looks up a codec by Name. The Raw codec is addressable too.
func (r *Registry) Get(name string) (Codec, bool) {
	if name == r.raw.Name() {
		return r.raw, true
	}
	c, ok := lo.Find(r.codecs, func(c Codec) bool { return c.Name() == name })
	return c, ok
}

// Codecs returns the detection-ordered codec list.
func (r *Registry) Codecs() []Codec {
	return slices.Clone(r.codecs)
}

// Names returns the known codec names, Raw included.
func (r *Registry) Names() []string {
	names := lo.Map(r.codecs, func(c Codec, _ int) string { return c.Name() })
	return append(names, r.raw.Name())
}

// Raw returns the identity codec.
func (r *Registry) Raw() Codec { return r.raw }
