// SPDX-License-Identifier: Apache-2.0

// Package sink persists extraction output documents.
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/pretty"
)

// Sink stores one document under key. Keys are derived from entity names and
// may contain any character; implementations sanitize them.
type Sink interface {
	Put(ctx context.Context, key string, value any) error
	Name() string
}

var prettyOptions = &pretty.Options{Width: 80, Indent: "    "}

// Encode renders value as indented JSON without HTML escaping.
func Encode(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return pretty.PrettyOptions(buf.Bytes(), prettyOptions), nil
}

var keyReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "\x00", "")

// SanitizeKey makes key safe to use as a file or object name.
func SanitizeKey(key string) string {
	key = strings.TrimSpace(keyReplacer.Replace(key))
	if key == "" || key == "." || key == ".." {
		return "_"
	}
	return key
}
