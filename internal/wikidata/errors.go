// SPDX-License-Identifier: Apache-2.0

package wikidata

import (
	"errors"
	"fmt"
)

var (
	// ErrAPIFailure is matched by every response that did not carry the
	// success indicator.
	ErrAPIFailure = errors.New("wikidata: api call did not report success")

	// ErrEntityMissing is returned when a requested identifier is absent
	// from a wbgetentities response.
	ErrEntityMissing = errors.New("wikidata: entity missing from response")
)

// APIError describes a response that came back without success=1.
type APIError struct {
	Action string
	Code   string
	Info   string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("wikidata: %s failed", e.Action)
	}
	return fmt.Sprintf("wikidata: %s failed: %s: %s", e.Action, e.Code, e.Info)
}

func (e *APIError) Is(target error) bool {
	return target == ErrAPIFailure
}
