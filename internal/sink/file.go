// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink writes each document to <dir>/<key>.json.
type FileSink struct {
	dir string
}

// NewFileSink creates dir if needed and returns a FileSink writing into it.
func NewFileSink(dir string) (*FileSink, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

func (s *FileSink) Name() string {
	return "file"
}

// Path returns the file a key is written to.
func (s *FileSink) Path(key string) string {
	return filepath.Join(s.dir, SanitizeKey(key)+".json")
}

func (s *FileSink) Put(_ context.Context, key string, value any) error {
	data, err := Encode(value)
	if err != nil {
		return err
	}
	path := s.Path(key)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
