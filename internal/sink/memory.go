// SPDX-License-Identifier: Apache-2.0

package sink

import (
	"context"
	"sort"
	"sync"
)

// MemorySink keeps encoded documents in memory. It backs dry runs.
type MemorySink struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemorySink() *MemorySink {
	return &MemorySink{docs: make(map[string][]byte)}
}

func (s *MemorySink) Name() string {
	return "memory"
}

func (s *MemorySink) Put(_ context.Context, key string, value any) error {
	data, err := Encode(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[SanitizeKey(key)] = data
	return nil
}

// Get returns the encoded document stored under key.
func (s *MemorySink) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.docs[SanitizeKey(key)]
	return data, ok
}

// Keys returns the stored keys in sorted order.
func (s *MemorySink) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.docs))
	for k := range s.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
