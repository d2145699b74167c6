package exiftool

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrMissingField reports a tag absent from a file's record.
	ErrMissingField = errors.New("metadata field missing")
	// ErrEmptyResponse reports a metadata request that produced no JSON,
	// which exiftool does when it could read none of the files.
	ErrEmptyResponse = errors.New("empty exiftool response")
)

// Record is one file's metadata as decoded from exiftool -j -n output,
// keyed by tag name. SourceFile is always present for real output.
type Record map[string]any

// SourceFile returns the path exiftool reported for this record.
func (r Record) SourceFile() (string, error) {
	return r.String("SourceFile")
}

// String returns field as a string. Numbers (which -n produces for
// numeric tags) are formatted without exponent.
func (r Record) String(field string) (string, error) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return fmt.Sprint(t), nil
	}
}

// Float returns a numeric field such as Duration (seconds).
func (r Record) Float(field string) (float64, error) {
	v, ok := r[field]
	if !ok || v == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("field %s: %w", field, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("field %s: unexpected type %T", field, v)
	}
}

// ReadMetadata requests fields for files in a single round trip and
// returns one record per file, in exiftool's output order (the order the
// files were given). No files means no request.
func (s *Session) ReadMetadata(fields []string, files ...string) ([]Record, error) {
	if len(files) == 0 {
		return nil, nil
	}
	args := make([]string, 0, len(fields)+len(files)+2)
	for _, f := range fields {
		args = append(args, "-"+f)
	}
	args = append(args, "-j", "-n")
	args = append(args, files...)

	out, err := s.Execute(args...)
	if err != nil {
		return nil, err
	}
	return ParseJSON(out)
}

// ParseJSON decodes exiftool's -j output. Empty output (every file
// unreadable) is an error, as is anything that is not a JSON array.
// Exported for testing without a real exiftool binary.
func ParseJSON(data []byte) ([]Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("parse exiftool JSON: %w", ErrEmptyResponse)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse exiftool JSON: %w", err)
	}
	return records, nil
}
