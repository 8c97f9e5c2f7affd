// SPDX-License-Identifier: Apache-2.0

// Package claims holds one ClaimParser per supported claim datatype.
package claims

import (
	"github.com/corpgraph/corpgraph/internal/extraction"
	"github.com/corpgraph/corpgraph/internal/wikidata"
)

// EndTimeQualifier is the qualifier property marking the end of a claim's
// validity.
const EndTimeQualifier = "P582"

// LabelLanguage is the language a linked entity's label is resolved in.
const LabelLanguage = "en"

// Default returns the parsers for every supported datatype.
func Default(labels extraction.LabelSource) []extraction.ClaimParser {
	return []extraction.ClaimParser{
		NewLinkedEntityParser(labels),
		NewURLParser(),
		NewTextParser(),
	}
}

// IsCurrentlyValid reports whether a statement is still in effect: it either
// has no qualifiers or none of them is an end time.
func IsCurrentlyValid(stmt wikidata.Statement) bool {
	if len(stmt.Qualifiers) == 0 {
		return true
	}
	_, ended := stmt.Qualifiers[EndTimeQualifier]
	return !ended
}
