// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/corpgraph/corpgraph/internal/extraction"
	"github.com/corpgraph/corpgraph/internal/normalize"
)

// MetadataExtractCorporateEntity describes the extract_corporate_entity tool.
var MetadataExtractCorporateEntity = &mcp.Tool{
	Name: "extract_corporate_entity",
	Description: "Resolve a company name against Wikidata and return its normalized record. " +
		"In corporate mode the first search candidate carrying a corporate marker property " +
		"(industry, stock exchange, ...) is used. In subsidiary mode the last candidate is used " +
		"without checking markers. Only currently valid claims are included. " +
		"found is false when no candidate qualified.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"name"},
		"properties": map[string]interface{}{
			"name": map[string]interface{}{
				"type":        "string",
				"description": "Company name as it would be typed into a search box",
			},
			"mode": map[string]interface{}{
				"type":        "string",
				"description": "Resolution strategy. One of: corporate, subsidiary. Defaults to corporate.",
				"enum":        []string{"corporate", "subsidiary"},
			},
		},
	},
}

// InputExtractCorporateEntity is the input for the ExtractCorporateEntity tool.
type InputExtractCorporateEntity struct {
	Name string `json:"name"`
	Mode string `json:"mode"`
}

// OutputExtractCorporateEntity is the output for the ExtractCorporateEntity tool.
type OutputExtractCorporateEntity struct {
	// Found reports whether a candidate was resolved.
	Found bool `json:"found"`
	// EntityID is the resolved Wikidata id, empty when nothing was found.
	EntityID string `json:"entity_id,omitempty"`
	// Record is the normalized record of the resolved entity.
	Record *normalize.Record `json:"record,omitempty"`
}

// Extractor builds the detail record for a name.
type Extractor interface {
	Extract(ctx context.Context, name string, mode extraction.Mode) (*extraction.DetailRecord, error)
}

// ExtractCorporateEntity returns a handler that runs extraction and
// normalization for a single name. validator may be nil.
func ExtractCorporateEntity(extractor Extractor, normalizer *normalize.Normalizer, validator *normalize.Validator) mcp.ToolHandlerFor[InputExtractCorporateEntity, OutputExtractCorporateEntity] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input InputExtractCorporateEntity) (*mcp.CallToolResult, OutputExtractCorporateEntity, error) {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, OutputExtractCorporateEntity{}, fmt.Errorf("name is required")
		}
		mode, err := parseMode(input.Mode)
		if err != nil {
			return nil, OutputExtractCorporateEntity{}, err
		}

		record, err := extractor.Extract(ctx, name, mode)
		if err != nil {
			return nil, OutputExtractCorporateEntity{}, err
		}
		if record == nil {
			return nil, OutputExtractCorporateEntity{}, nil
		}

		normalized := normalizer.Normalize(record)
		if validator != nil {
			if err := validator.Validate(normalized); err != nil {
				return nil, OutputExtractCorporateEntity{}, err
			}
		}
		return nil, OutputExtractCorporateEntity{
			Found:    true,
			EntityID: record.ID,
			Record:   &normalized,
		}, nil
	}
}

// Register adds every tool of this package to server.
func Register(server *mcp.Server, extractor Extractor, normalizer *normalize.Normalizer, validator *normalize.Validator) {
	mcp.AddTool(server, MetadataExtractCorporateEntity, ExtractCorporateEntity(extractor, normalizer, validator))
}

func parseMode(s string) (extraction.Mode, error) {
	switch s {
	case "", "corporate":
		return extraction.ModeCorporate, nil
	case "subsidiary":
		return extraction.ModeSubsidiary, nil
	default:
		return extraction.ModeCorporate, fmt.Errorf("unsupported mode %q", s)
	}
}
