// Package tokencache implements the TokenCache port on top of a JSON file and
// an in-memory value.
package tokencache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/ericfisherdev/petsearch/internal/domain/model"
	"github.com/ericfisherdev/petsearch/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TokenCache = (*File)(nil)

// File stores the credential as a single JSON document. Writes go through a
// temporary file and rename so a concurrent reader never sees a partial record.
type File struct {
	path string
}

// NewFile creates a File cache backed by path. The file and its parent
// directory are created on the first Save.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the location of the cache file.
func (f *File) Path() string {
	return f.path
}

// Load reads the cached credential. A missing file yields driven.ErrTokenNotCached.
func (f *File) Load(_ context.Context) (model.Credential, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Credential{}, driven.ErrTokenNotCached
	}
	if err != nil {
		return model.Credential{}, fmt.Errorf("read token cache %q: %w", f.path, err)
	}

	var cred model.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return model.Credential{}, fmt.Errorf("decode token cache %q: %w", f.path, err)
	}
	return cred, nil
}

// Save replaces the cached credential.
func (f *File) Save(_ context.Context, cred model.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode token cache: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create token cache dir %q: %w", dir, err)
		}
	}

	if err := atomic.WriteFile(f.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write token cache %q: %w", f.path, err)
	}
	return nil
}
