// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/corpgraph/corpgraph/internal/wikidata"
)

// PropertyParser dispatches every statement under a property to the
// ClaimParser registered for its datatype.
type PropertyParser struct {
	parsers map[Datatype]ClaimParser
	logger  *log.Logger
}

// NewPropertyParser creates a PropertyParser. A later parser for the same
// datatype replaces an earlier one.
func NewPropertyParser(logger *log.Logger, parsers ...ClaimParser) *PropertyParser {
	if logger == nil {
		logger = log.Default()
	}
	registry := make(map[Datatype]ClaimParser, len(parsers))
	for _, parser := range parsers {
		registry[parser.Datatype()] = parser
	}
	return &PropertyParser{parsers: registry, logger: logger}
}

// ParseProperty parses the claim list of one property into a flat value list,
// preserving claim order. Malformed claims and linked entities without a
// localized label are logged and skipped; any other error aborts the call.
func (p *PropertyParser) ParseProperty(ctx context.Context, statements []wikidata.Statement) ([]Value, error) {
	values := make([]Value, 0, len(statements))
	for _, stmt := range statements {
		snak := stmt.MainSnak
		dt := ParseDatatype(snak.Datatype)

		switch dt {
		case DatatypeLinkedEntity, DatatypeURL, DatatypeLanguageText:
		case DatatypeUnsupported:
			p.logger.Debug("ignoring unsupported datatype", "pid", snak.Property, "datatype", snak.Datatype)
			continue
		}

		parser, ok := p.parsers[dt]
		if !ok {
			p.logger.Debug("no parser registered", "pid", snak.Property, "datatype", dt)
			continue
		}
		if !snak.HasValue() {
			p.logger.Debug("skipping claim without value", "pid", snak.Property, "snaktype", snak.SnakType)
			continue
		}

		parsed, err := parser.Parse(ctx, stmt)
		switch {
		case errors.Is(err, ErrMissingLocalizedLabel):
			p.logger.Warn("linked entity has no localized label", "pid", snak.Property, "err", err)
			continue
		case errors.Is(err, ErrMalformedClaim):
			p.logger.Warn("skipping malformed claim", "pid", snak.Property, "err", err)
			continue
		case err != nil:
			return nil, fmt.Errorf("parser %q failed on %s: %w", parser.Name(), snak.Property, err)
		}
		values = append(values, parsed...)
	}
	return values, nil
}

// ParseProperties runs ParseProperty for every pid in pids. Properties the
// entity does not carry get no entry and are logged.
func (p *PropertyParser) ParseProperties(ctx context.Context, eid string, claims map[string][]wikidata.Statement, pids []string) (map[string][]Value, error) {
	out := make(map[string][]Value, len(pids))
	for _, pid := range pids {
		statements, ok := claims[pid]
		if !ok {
			p.logger.Warn("property not found on entity", "eid", eid, "pid", pid)
			continue
		}
		values, err := p.ParseProperty(ctx, statements)
		if err != nil {
			return nil, err
		}
		out[pid] = values
	}
	return out, nil
}
