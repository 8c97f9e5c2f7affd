// SPDX-License-Identifier: Apache-2.0

package normalize

import "encoding/json"

// Semantic property names the normalizer recognizes in the name map.
const (
	NameIndustry        = "industry"
	NameFoundedBy       = "founded by"
	NameHeadquarters    = "headquarters location"
	NameCountry         = "country"
	NameOfficialWebsite = "official website"
	NameHasParts        = "has part(s)"
)

// LangEntry is a single-language label or description.
type LangEntry struct {
	Lang  string `json:"lang"`
	Value string `json:"value"`
}

// AliasEntry holds the joined aliases of a single language.
type AliasEntry struct {
	Lang  string   `json:"lang"`
	Value []string `json:"value"`
}

// Reference is one referenced entity inside a ReferenceBlock.
type Reference struct {
	Identifier string `json:"identifier"`
	Label      string `json:"label"`
}

// ReferenceBlock records which property a reference came from. A block with
// no source serializes as an empty object.
type ReferenceBlock struct {
	Source []string    `json:"source,omitempty"`
	Value  []Reference `json:"value,omitempty"`
}

func (b ReferenceBlock) MarshalJSON() ([]byte, error) {
	if len(b.Source) == 0 {
		return []byte("{}"), nil
	}
	value := b.Value
	if value == nil {
		value = []Reference{}
	}
	return json.Marshal(struct {
		Source []string    `json:"source"`
		Value  []Reference `json:"value"`
	}{b.Source, value})
}

// Record is the stable output schema. Every field is always present.
type Record struct {
	SourceID        string         `json:"source_wikidata_id"`
	CorpID          string         `json:"corp_id"`
	Label           []LangEntry    `json:"label"`
	Descriptions    []LangEntry    `json:"descriptions"`
	Aliases         []AliasEntry   `json:"aliases"`
	Industry        ReferenceBlock `json:"industry"`
	FoundedBy       ReferenceBlock `json:"founded by"`
	Headquarters    [][]string     `json:"headquarters location"`
	Country         [][]string     `json:"country"`
	OfficialWebsite []string       `json:"official website"`
	Subsidiary      ReferenceBlock `json:"subsidiary"`
}
