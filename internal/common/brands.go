package common

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// BrandAnalysis maps brand names to their detections and iterates in insertion order.
// JSON decoding keeps the key order of the source document; a repeated key keeps its
// first position and its last value. Brands are decoded one at a time, so a bad value
// only resets that brand.
type BrandAnalysis struct {
	names   []string
	entries map[string]BrandDetection
}

// BrandEntry is one name/detection pair yielded by Entries
type BrandEntry struct {
	Name      string
	Detection BrandDetection
}

// NewBrandAnalysis builds a mapping from pairs, in the given order
func NewBrandAnalysis(entries ...BrandEntry) *BrandAnalysis {
	ba := &BrandAnalysis{}
	for _, e := range entries {
		ba.Set(e.Name, e.Detection)
	}
	return ba
}

// Set adds or replaces a brand. New names are appended to the iteration order.
func (b *BrandAnalysis) Set(name string, detection BrandDetection) {
	if b.entries == nil {
		b.entries = make(map[string]BrandDetection)
	}
	if _, exists := b.entries[name]; !exists {
		b.names = append(b.names, name)
	}
	b.entries[name] = detection
}

// Get returns the detection for name
func (b *BrandAnalysis) Get(name string) (BrandDetection, bool) {
	if b == nil || b.entries == nil {
		return BrandDetection{}, false
	}
	d, ok := b.entries[name]
	return d, ok
}

// Len returns the number of brands
func (b *BrandAnalysis) Len() int {
	if b == nil {
		return 0
	}
	return len(b.names)
}

// Names returns a copy of the brand names in insertion order
func (b *BrandAnalysis) Names() []string {
	if b == nil {
		return []string{}
	}
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Entries returns the pairs in insertion order
func (b *BrandAnalysis) Entries() []BrandEntry {
	if b == nil {
		return []BrandEntry{}
	}
	out := make([]BrandEntry, 0, len(b.names))
	for _, name := range b.names {
		out = append(out, BrandEntry{Name: name, Detection: b.entries[name]})
	}
	return out
}

// UnmarshalJSON decodes a JSON object while recording key order.
// A JSON null decodes to an empty mapping.
func (b *BrandAnalysis) UnmarshalJSON(data []byte) error {
	b.names = nil
	b.entries = nil

	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("brand_analysis: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("brand_analysis: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("brand_analysis: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("brand_analysis: unexpected key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("brand_analysis[%s]: %w", name, err)
		}

		// a brand whose value is not an object keeps its name with default detections
		var detection BrandDetection
		if !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			if err := json.Unmarshal(raw, &detection); err != nil {
				detection = BrandDetection{}
			}
		}
		b.Set(name, detection)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("brand_analysis: %w", err)
	}
	return nil
}

// MarshalJSON encodes the mapping with keys in insertion order
func (b BrandAnalysis) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range b.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(b.entries[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
