// SPDX-License-Identifier: Apache-2.0

package claims

import (
	"context"
	"fmt"

	"github.com/corpgraph/corpgraph/internal/extraction"
	"github.com/corpgraph/corpgraph/internal/wikidata"
)

// TextParser yields the text of a monolingualtext claim; the language tag is
// dropped.
type TextParser struct{}

func NewTextParser() *TextParser {
	return &TextParser{}
}

func (p *TextParser) Name() string {
	return "language-tagged-text"
}

func (p *TextParser) Datatype() extraction.Datatype {
	return extraction.DatatypeLanguageText
}

func (p *TextParser) Parse(_ context.Context, stmt wikidata.Statement) ([]extraction.Value, error) {
	text, _, err := stmt.MainSnak.DataValue.MonolingualText()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", extraction.ErrMalformedClaim, err)
	}
	return []extraction.Value{extraction.Text(text)}, nil
}
