package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aretw0/notemaster/pkg/core"
)

const (
	// BundleVersion is written into every export.
	BundleVersion = "2.0"
	// BundleFilename is the default name of a full export.
	BundleFilename = "notemaster-backup.json"
)

// Bundle is the full-collection export format.
type Bundle struct {
	Notes      []core.Note `json:"notes"`
	ExportDate string      `json:"exportDate"`
	Version    string      `json:"version"`
	TotalNotes int         `json:"totalNotes"`
}

// NewBundle snapshots notes as of now.
func NewBundle(notes []core.Note, now time.Time) Bundle {
	if notes == nil {
		notes = []core.Note{}
	}
	return Bundle{
		Notes:      notes,
		ExportDate: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Version:    BundleVersion,
		TotalNotes: len(notes),
	}
}

// WriteBundle encodes b as indented JSON.
func WriteBundle(w io.Writer, b Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}
	return nil
}

// ExportBundle returns the encoded bundle for notes.
func ExportBundle(notes []core.Note, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteBundle(&buf, NewBundle(notes, now)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadBundle decodes the notes of an exported bundle. Only the notes array
// is required; the other bundle fields are informational.
//
// Input that is not JSON fails with ErrUnreadable. JSON without a notes
// array, or with entries that are not notes, fails with ErrInvalidFormat.
func ReadBundle(r io.Reader) ([]core.Note, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return DecodeBundle(data)
}

// DecodeBundle is ReadBundle over a byte slice.
func DecodeBundle(data []byte) ([]core.Note, error) {
	if !json.Valid(data) {
		return nil, ErrUnreadable
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidFormat)
	}
	raw, ok := top["notes"]
	if !ok {
		return nil, fmt.Errorf("%w: missing notes", ErrInvalidFormat)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: notes is not an array", ErrInvalidFormat)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	notes := make([]core.Note, 0, len(entries))
	for i, e := range entries {
		e = bytes.TrimSpace(e)
		if len(e) == 0 || e[0] != '{' {
			return nil, fmt.Errorf("%w: entry %d is not a note", ErrInvalidFormat, i)
		}
		var n core.Note
		if err := json.Unmarshal(e, &n); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidFormat, i, err)
		}
		notes = append(notes, n)
	}
	return notes, nil
}
