// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/corpgraph/corpgraph/internal/wikidata"
)

// Extractor resolves a name and assembles its DetailRecord.
type Extractor struct {
	resolver    *Resolver
	properties  *PropertyParser
	propertyIDs []string
	logger      *log.Logger
}

// ExtractorParams configures an Extractor.
type ExtractorParams struct {
	Resolver   *Resolver
	Properties *PropertyParser
	// PropertyIDs are the properties parsed for every resolved entity.
	PropertyIDs []string
	Logger      *log.Logger
}

// NewExtractor creates a new Extractor.
func NewExtractor(params ExtractorParams) *Extractor {
	logger := params.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Extractor{
		resolver:    params.Resolver,
		properties:  params.Properties,
		propertyIDs: params.PropertyIDs,
		logger:      logger,
	}
}

// Extract resolves name using mode and builds its DetailRecord. A nil record
// with a nil error means the name did not resolve.
func (e *Extractor) Extract(ctx context.Context, name string, mode Mode) (*DetailRecord, error) {
	res, err := e.resolver.Resolve(ctx, name, mode)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}

	record := newDetailRecord(res.ID, res.Entity)
	props, err := e.properties.ParseProperties(ctx, res.ID, res.Entity.Claims, e.propertyIDs)
	if err != nil {
		return nil, err
	}
	record.Properties = props

	e.logger.Debug("extracted entity", "name", name, "eid", res.ID, "mode", mode, "properties", len(props))
	return record, nil
}

func newDetailRecord(id string, entity *wikidata.Entity) *DetailRecord {
	record := &DetailRecord{
		ID:           id,
		Labels:       make(map[string]string, len(entity.Labels)),
		Descriptions: make(map[string]string, len(entity.Descriptions)),
		Aliases:      make(map[string][]string, len(entity.Aliases)),
	}
	for lang, v := range entity.Labels {
		record.Labels[lang] = v.Value
	}
	for lang, v := range entity.Descriptions {
		record.Descriptions[lang] = v.Value
	}
	for lang, aliases := range entity.Aliases {
		values := make([]string, 0, len(aliases))
		for _, a := range aliases {
			values = append(values, a.Value)
		}
		record.Aliases[lang] = values
	}
	return record
}
