package common

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
)

// ErrInvalidInput is returned when a document is not a sequence of records
var ErrInvalidInput = errors.New("invalid input")

// wrapperKeys are the object keys that may carry the record array. The
// detection service stores its history under "analyses".
var wrapperKeys = []string{"analyses", "results"}

// ParseRecords decodes a JSON array of analysis records, or an object wrapping the
// array under one of the wrapper keys. Elements that are not objects, or that fail
// to decode, are kept as malformed records so that indices stay stable.
func ParseRecords(data []byte) ([]*AnalysisRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidInput)
	}

	var elements []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &elements); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		found := false
		for _, key := range wrapperKeys {
			raw, ok := wrapper[key]
			if !ok {
				continue
			}
			if err := json.Unmarshal(raw, &elements); err != nil {
				return nil, fmt.Errorf("%w: %q is not an array of records", ErrInvalidInput, key)
			}
			found = true
			break
		}
		if !found {
			return nil, fmt.Errorf("%w: object has none of the keys %s", ErrInvalidInput, strings.Join(wrapperKeys, ", "))
		}
	default:
		return nil, fmt.Errorf("%w: expected an array of records, got %s", ErrInvalidInput, describeJSON(trimmed))
	}

	records := make([]*AnalysisRecord, 0, len(elements))
	for _, raw := range elements {
		records = append(records, DecodeRecord(raw))
	}
	return records, nil
}

// DecodeRecord decodes a single record. It never fails: a non-object element
// becomes a malformed record, and a field with the wrong type keeps its default
// while the rest of the record is kept.
func DecodeRecord(raw []byte) *AnalysisRecord {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return &AnalysisRecord{malformed: true}
	}

	var record AnalysisRecord
	if err := json.Unmarshal(trimmed, &record); err == nil {
		return &record
	}

	partial, err := decodeRecordFields(trimmed)
	if err != nil {
		return &AnalysisRecord{malformed: true}
	}
	return partial
}

// describeJSON names the JSON type of a value for error messages
func describeJSON(data []byte) string {
	switch data[0] {
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// LoadRecordsFromFile reads and parses a record document from disk
func LoadRecordsFromFile(filename string) ([]*AnalysisRecord, error) {
	if err := validateRecordFilePath(filename); err != nil {
		return nil, fmt.Errorf("invalid file path: %w", err)
	}

	// #nosec G304 - path is validated above
	data, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	records, err := ParseRecords(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return records, nil
}

// validateRecordFilePath validates that a record file path is safe to read
func validateRecordFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".json" {
		return fmt.Errorf("record file must have .json extension")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}

// CountMalformed returns how many records lack video_info or brand_analysis
func CountMalformed(records []*AnalysisRecord) int {
	n := 0
	for _, r := range records {
		if r.Malformed() {
			n++
		}
	}
	return n
}
