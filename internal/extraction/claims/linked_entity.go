// SPDX-License-Identifier: Apache-2.0

package claims

import (
	"context"
	"fmt"

	"github.com/corpgraph/corpgraph/internal/extraction"
	"github.com/corpgraph/corpgraph/internal/wikidata"
)

// LinkedEntityParser parses wikibase-item claims into EntityRefs. Only
// currently valid claims are kept, and the referenced entity's English label
// is fetched with one lookup per claim.
type LinkedEntityParser struct {
	labels extraction.LabelSource
}

// NewLinkedEntityParser creates a new LinkedEntityParser.
func NewLinkedEntityParser(labels extraction.LabelSource) *LinkedEntityParser {
	return &LinkedEntityParser{labels: labels}
}

func (p *LinkedEntityParser) Name() string {
	return "linked-entity"
}

func (p *LinkedEntityParser) Datatype() extraction.Datatype {
	return extraction.DatatypeLinkedEntity
}

func (p *LinkedEntityParser) Parse(ctx context.Context, stmt wikidata.Statement) ([]extraction.Value, error) {
	if !IsCurrentlyValid(stmt) {
		return nil, nil
	}

	id, err := stmt.MainSnak.DataValue.EntityID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", extraction.ErrMalformedClaim, err)
	}

	entities, err := p.labels.GetLabels(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("label lookup for %s failed: %w", id, err)
	}
	label, ok := entities[id].Label(LabelLanguage)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %q label", extraction.ErrMissingLocalizedLabel, id, LabelLanguage)
	}

	return []extraction.Value{extraction.EntityRef{ID: id, Label: label}}, nil
}
