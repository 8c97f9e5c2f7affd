// SPDX-License-Identifier: Apache-2.0

package claims

import (
	"context"
	"fmt"

	"github.com/corpgraph/corpgraph/internal/extraction"
	"github.com/corpgraph/corpgraph/internal/wikidata"
)

// URLParser yields the raw url string unchanged.
type URLParser struct{}

func NewURLParser() *URLParser {
	return &URLParser{}
}

func (p *URLParser) Name() string {
	return "url"
}

func (p *URLParser) Datatype() extraction.Datatype {
	return extraction.DatatypeURL
}

func (p *URLParser) Parse(_ context.Context, stmt wikidata.Statement) ([]extraction.Value, error) {
	s, err := stmt.MainSnak.DataValue.StringValue()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", extraction.ErrMalformedClaim, err)
	}
	return []extraction.Value{extraction.URL(s)}, nil
}
