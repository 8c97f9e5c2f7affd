// SPDX-License-Identifier: Apache-2.0

package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SearchParams builds a wbsearchentities query.
func SearchParams(text, language string, limit int) Params {
	return Params{
		"action":   "wbsearchentities",
		"search":   text,
		"language": language,
		"format":   "json",
		"limit":    strconv.Itoa(limit),
	}
}

// EntityParams builds a wbgetentities query for the full entity document.
func EntityParams(id string, languages []string) Params {
	if len(languages) == 0 {
		languages = []string{"en"}
	}
	return Params{
		"action":    "wbgetentities",
		"format":    "json",
		"languages": strings.Join(languages, "|"),
		"ids":       id,
	}
}

// LabelParams builds a wbgetentities query restricted to English labels.
func LabelParams(ids []string) Params {
	return Params{
		"action":    "wbgetentities",
		"format":    "json",
		"props":     "labels",
		"languages": "en",
		"ids":       strings.Join(ids, "|"),
	}
}

// SearchEntities returns the search candidates for text, in the order the
// API ranked them.
func (c *Client) SearchEntities(ctx context.Context, text, language string, limit int) ([]SearchHit, error) {
	body, err := c.Query(ctx, SearchParams(text, language, limit))
	if err != nil {
		return nil, err
	}
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return resp.Search, nil
}

// GetEntity fetches the full document of a single entity.
func (c *Client) GetEntity(ctx context.Context, id string, languages []string) (*Entity, error) {
	entities, err := c.getEntities(ctx, EntityParams(id, languages))
	if err != nil {
		return nil, err
	}
	entity, ok := entities[id]
	if !ok || entity == nil || entity.Missing != nil {
		return nil, fmt.Errorf("%w: %s", ErrEntityMissing, id)
	}
	return entity, nil
}

// GetLabels fetches the English labels of the given entities, keyed by id.
func (c *Client) GetLabels(ctx context.Context, ids ...string) (map[string]*Entity, error) {
	return c.getEntities(ctx, LabelParams(ids))
}

func (c *Client) getEntities(ctx context.Context, params Params) (map[string]*Entity, error) {
	body, err := c.Query(ctx, params)
	if err != nil {
		return nil, err
	}
	var resp entitiesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode entities response: %w", err)
	}
	return resp.Entities, nil
}
