// Package dump loads storage dumps exported from a browser: the cookies,
// localStorage, sessionStorage, IndexedDB and Cache Storage entries a
// devtools export or extension writes out as JSON.
package dump

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/stashlens/cli/pkg/codec"
)

// Store names accepted in a dump file.
const (
	StoreCookies      = "cookies"
	StoreLocalStorage = "localStorage"
	StoreSession      = "sessionStorage"
	StoreIndexedDB    = "indexedDB"
	StoreCacheStorage = "cacheStorage"
)

// KnownStores lists every accepted store name.
var KnownStores = []string{
	StoreCookies,
	StoreLocalStorage,
	StoreSession,
	StoreIndexedDB,
	StoreCacheStorage,
}

// Entry is one stored key/value pair.
type Entry struct {
	Origin string `json:"origin"`
	Store  string `json:"store"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// Dump is the parsed contents of one export file.
type Dump struct {
	Entries []Entry `json:"entries"`
}

// Load reads and validates a dump file. Both shapes in the wild are
// accepted: a top-level {"entries": [...]} object and a bare entry array.
func Load(path string) (*Dump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}
	return Parse(data)
}

// Parse validates raw dump JSON.
func Parse(data []byte) (*Dump, error) {
	trimmed := strings.TrimSpace(string(data))

	var d Dump
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &d.Entries); err != nil {
			return nil, fmt.Errorf("failed to parse dump: %w", err)
		}
	} else {
		// distinguish an empty dump from arbitrary JSON objects
		var obj struct {
			Entries *[]Entry `json:"entries"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("failed to parse dump: %w", err)
		}
		if obj.Entries == nil {
			return nil, fmt.Errorf("failed to parse dump: missing entries field")
		}
		d.Entries = *obj.Entries
	}

	for i, e := range d.Entries {
		if e.Key == "" && e.Store != StoreCacheStorage {
			return nil, fmt.Errorf("entry %d: missing key", i)
		}
		if !lo.Contains(KnownStores, e.Store) {
			return nil, fmt.Errorf("entry %d: unknown store %q (known: %s)", i, e.Store, strings.Join(KnownStores, ", "))
		}
	}
	return &d, nil
}

// Annotated couples an entry with its detection result.
type Annotated struct {
	Entry
	// Codec is nil when no encoding was detected.
	Codec codec.Codec
	// Decoded is the human-readable value; for undetected entries it is the
	// stored value itself.
	Decoded string
}

// EncodingName returns the detected codec name, or "raw".
func (a Annotated) EncodingName() string {
	if a.Codec == nil {
		return "raw"
	}
	return a.Codec.Name()
}

// Annotate runs detection over every entry in d.
func Annotate(reg *codec.Registry, d *Dump) []Annotated {
	return lo.Map(d.Entries, func(e Entry, _ int) Annotated {
		c := reg.Detect(e.Value)
		decoded := e.Value
		if c != nil {
			decoded = c.Decode(e.Value)
		}
		return Annotated{Entry: e, Codec: c, Decoded: decoded}
	})
}

// FilterStore returns the annotated entries belonging to store.
func FilterStore(entries []Annotated, store string) []Annotated {
	return lo.Filter(entries, func(a Annotated, _ int) bool { return a.Store == store })
}
