// SPDX-License-Identifier: Apache-2.0

package wikidata

import (
	"encoding/json"
	"fmt"
)

// Datatype tags carried by a snak.
const (
	DatatypeWikibaseItem    = "wikibase-item"
	DatatypeURL             = "url"
	DatatypeMonolingualText = "monolingualtext"
)

// SnakTypeValue marks a snak that carries a datavalue. "somevalue" and
// "novalue" snaks have none.
const SnakTypeValue = "value"

// LangValue is a single language-tagged string as returned for labels,
// descriptions and aliases.
type LangValue struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// Entity is one element of the "entities" object of a wbgetentities response.
type Entity struct {
	ID           string                 `json:"id"`
	Type         string                 `json:"type"`
	Missing      *string                `json:"missing,omitempty"`
	Labels       map[string]LangValue   `json:"labels"`
	Descriptions map[string]LangValue   `json:"descriptions"`
	Aliases      map[string][]LangValue `json:"aliases"`
	Claims       map[string][]Statement `json:"claims"`
}

// Label returns the label for lang, if the entity has one.
func (e *Entity) Label(lang string) (string, bool) {
	if e == nil {
		return "", false
	}
	v, ok := e.Labels[lang]
	if !ok {
		return "", false
	}
	return v.Value, true
}

// Statement is one claim attached to an entity under a property.
type Statement struct {
	ID         string            `json:"id,omitempty"`
	Type       string            `json:"type,omitempty"`
	Rank       string            `json:"rank,omitempty"`
	MainSnak   Snak              `json:"mainsnak"`
	Qualifiers map[string][]Snak `json:"qualifiers,omitempty"`
}

type Snak struct {
	SnakType  string     `json:"snaktype"`
	Property  string     `json:"property"`
	Datatype  string     `json:"datatype"`
	DataValue *DataValue `json:"datavalue,omitempty"`
}

// HasValue reports whether the snak carries a decodable datavalue.
func (s Snak) HasValue() bool {
	return s.SnakType == SnakTypeValue && s.DataValue != nil
}

// DataValue keeps the value payload raw; its shape depends on the snak's
// datatype and is decoded on demand.
type DataValue struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type entityIDValue struct {
	EntityType string `json:"entity-type"`
	NumericID  int64  `json:"numeric-id"`
	ID         string `json:"id"`
}

type monolingualTextValue struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// EntityID decodes a wikibase-entityid payload.
func (d *DataValue) EntityID() (string, error) {
	var v entityIDValue
	if err := json.Unmarshal(d.Value, &v); err != nil {
		return "", fmt.Errorf("failed to decode entity id value: %w", err)
	}
	if v.ID == "" {
		return "", fmt.Errorf("entity id value has no id")
	}
	return v.ID, nil
}

// StringValue decodes a plain string payload such as a url.
func (d *DataValue) StringValue() (string, error) {
	var s string
	if err := json.Unmarshal(d.Value, &s); err != nil {
		return "", fmt.Errorf("failed to decode string value: %w", err)
	}
	return s, nil
}

// MonolingualText decodes a monolingualtext payload into its text and
// language tag.
func (d *DataValue) MonolingualText() (text, lang string, err error) {
	var v monolingualTextValue
	if err := json.Unmarshal(d.Value, &v); err != nil {
		return "", "", fmt.Errorf("failed to decode monolingual text value: %w", err)
	}
	return v.Text, v.Language, nil
}

// SearchHit is one candidate returned by wbsearchentities.
type SearchHit struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	ConceptURI  string `json:"concepturi"`
}

type searchResponse struct {
	Search []SearchHit `json:"search"`
}

type entitiesResponse struct {
	Entities map[string]*Entity `json:"entities"`
}
