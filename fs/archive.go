// Package fs provides file-based sinks for harvested records.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/harvest"
)

// Ensure Archive implements harvest.Archive at compile time.
var _ harvest.Archive = (*Archive)(nil)

// Archive stores records as a pretty-printed JSON array in one file.
// Non-ASCII text is written as-is. Saves replace the file atomically.
type Archive struct {
	path string
}

// NewArchive creates an Archive backed by the file at path.
func NewArchive(path string) *Archive {
	return &Archive{path: path}
}

// Save writes records to a temporary file and renames it over the archive.
func (a *Archive) Save(ctx context.Context, records []*harvest.Record) error {
	if records == nil {
		records = []*harvest.Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return harvest.Errorf(harvest.ESINK, "encode archive: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(a.path), 0755); err != nil {
		return err
	}

	tmp := a.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, a.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Load reads the archived records.
// Returns ENOTFOUND if the archive file does not exist.
func (a *Archive) Load(ctx context.Context) ([]*harvest.Record, error) {
	data, err := os.ReadFile(a.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "archive %s not found", a.path)
	}
	if err != nil {
		return nil, err
	}

	var records []*harvest.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "decode archive %s: %v", a.path, err)
	}
	return records, nil
}
