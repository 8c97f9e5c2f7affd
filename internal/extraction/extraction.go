// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/corpgraph/corpgraph/internal/wikidata"
)

var (
	// ErrMissingLocalizedLabel marks a linked entity that has no label in
	// the lookup language. The value is dropped, processing continues.
	ErrMissingLocalizedLabel = errors.New("referenced entity has no localized label")

	// ErrMalformedClaim marks a claim whose payload does not match its
	// declared datatype. The value is dropped, processing continues.
	ErrMalformedClaim = errors.New("malformed claim payload")
)

// Mode selects how a name is resolved to an entity.
type Mode int

const (
	// ModeCorporate accepts the first candidate carrying a corporate marker.
	ModeCorporate Mode = iota
	// ModeSubsidiary accepts the last candidate scanned, unconditionally.
	ModeSubsidiary
)

func (m Mode) String() string {
	switch m {
	case ModeCorporate:
		return "corporate"
	case ModeSubsidiary:
		return "subsidiary"
	default:
		return "unknown"
	}
}

// Datatype is the closed set of claim datatypes the parser understands.
type Datatype int

const (
	DatatypeUnsupported Datatype = iota
	DatatypeLinkedEntity
	DatatypeURL
	DatatypeLanguageText
)

// ParseDatatype maps a snak datatype tag onto Datatype. Every tag outside
// the supported set maps to DatatypeUnsupported.
func ParseDatatype(tag string) Datatype {
	switch tag {
	case wikidata.DatatypeWikibaseItem:
		return DatatypeLinkedEntity
	case wikidata.DatatypeURL:
		return DatatypeURL
	case wikidata.DatatypeMonolingualText:
		return DatatypeLanguageText
	default:
		return DatatypeUnsupported
	}
}

func (d Datatype) String() string {
	switch d {
	case DatatypeLinkedEntity:
		return "linked-entity"
	case DatatypeURL:
		return "url"
	case DatatypeLanguageText:
		return "language-tagged-text"
	default:
		return "unsupported"
	}
}

// Value is one parsed claim value: an EntityRef, a URL or a Text.
type Value interface {
	isValue()
}

// EntityRef is a reference to another entity together with its English label.
// It serializes as a two-element array.
type EntityRef struct {
	ID    string
	Label string
}

func (EntityRef) isValue() {}

func (r EntityRef) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{r.ID, r.Label})
}

// URL is the raw string of a url claim.
type URL string

func (URL) isValue() {}

// Text is the text component of a language-tagged claim.
type Text string

func (Text) isValue() {}

// ClaimParser turns a single statement of one datatype into values.
type ClaimParser interface {
	Datatype() Datatype
	Parse(ctx context.Context, stmt wikidata.Statement) ([]Value, error)
	Name() string
}

// EntitySource is the slice of the knowledge-graph client used to resolve
// names to entity documents.
type EntitySource interface {
	SearchEntities(ctx context.Context, text, language string, limit int) ([]wikidata.SearchHit, error)
	GetEntity(ctx context.Context, id string, languages []string) (*wikidata.Entity, error)
}

// LabelSource looks up labels of referenced entities.
type LabelSource interface {
	GetLabels(ctx context.Context, ids ...string) (map[string]*wikidata.Entity, error)
}

// DetailRecord is the per-entity aggregate built by the Extractor. It is not
// mutated after Extract returns.
type DetailRecord struct {
	ID           string
	Labels       map[string]string
	Descriptions map[string]string
	Aliases      map[string][]string
	Properties   map[string][]Value
}
