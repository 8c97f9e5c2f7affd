// SPDX-License-Identifier: Apache-2.0

// Package wikidatatest provides an in-memory knowledge graph and statement
// builders for tests.
package wikidatatest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/corpgraph/corpgraph/internal/wikidata"
)

// Fake serves search results and entity documents from memory. It satisfies
// the lookup interfaces the extraction pipeline depends on.
type Fake struct {
	mu       sync.Mutex
	searches map[string][]wikidata.SearchHit
	entities map[string]*wikidata.Entity
	failures map[string]error
	calls    []string
}

func NewFake() *Fake {
	return &Fake{
		searches: make(map[string][]wikidata.SearchHit),
		entities: make(map[string]*wikidata.Entity),
		failures: make(map[string]error),
	}
}

// AddSearch registers the candidates returned for text, in order.
func (f *Fake) AddSearch(text string, ids ...string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	hits := make([]wikidata.SearchHit, 0, len(ids))
	for _, id := range ids {
		hits = append(hits, wikidata.SearchHit{ID: id})
	}
	f.searches[text] = hits
	return f
}

// AddEntity registers entity documents by id.
func (f *Fake) AddEntity(entities ...*wikidata.Entity) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range entities {
		f.entities[e.ID] = e
	}
	return f
}

// FailOn makes any call touching key (a search text or an entity id) return err.
func (f *Fake) FailOn(key string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[key] = err
	return f
}

// Calls returns the calls made so far, formatted as "search:<text>",
// "get:<id>" or "labels:<ids>".
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *Fake) SearchEntities(_ context.Context, text, _ string, limit int) ([]wikidata.SearchHit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "search:"+text)
	if err, ok := f.failures[text]; ok {
		return nil, err
	}
	hits := f.searches[text]
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return append([]wikidata.SearchHit(nil), hits...), nil
}

func (f *Fake) GetEntity(_ context.Context, id string, _ []string) (*wikidata.Entity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "get:"+id)
	if err, ok := f.failures[id]; ok {
		return nil, err
	}
	e, ok := f.entities[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", wikidata.ErrEntityMissing, id)
	}
	return e, nil
}

func (f *Fake) GetLabels(_ context.Context, ids ...string) (map[string]*wikidata.Entity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "labels:"+strings.Join(ids, "|"))
	out := make(map[string]*wikidata.Entity, len(ids))
	for _, id := range ids {
		if err, ok := f.failures[id]; ok {
			return nil, err
		}
		e, ok := f.entities[id]
		if !ok {
			out[id] = &wikidata.Entity{ID: id, Labels: map[string]wikidata.LangValue{}}
			continue
		}
		out[id] = &wikidata.Entity{ID: id, Labels: e.Labels}
	}
	return out, nil
}

// Entity builds an entity document with an English label and the given claims.
// An empty label leaves the labels map empty.
func Entity(id, label string, claims ...wikidata.Statement) *wikidata.Entity {
	e := &wikidata.Entity{
		ID:           id,
		Type:         "item",
		Labels:       map[string]wikidata.LangValue{},
		Descriptions: map[string]wikidata.LangValue{},
		Aliases:      map[string][]wikidata.LangValue{},
		Claims:       map[string][]wikidata.Statement{},
	}
	if label != "" {
		e.Labels["en"] = wikidata.LangValue{Language: "en", Value: label}
	}
	for _, c := range claims {
		pid := c.MainSnak.Property
		e.Claims[pid] = append(e.Claims[pid], c)
	}
	return e
}

// Statement builds a value statement with an arbitrary datatype and payload.
func Statement(pid, datatype string, value any) wikidata.Statement {
	raw, err := json.Marshal(value)
	if err != nil {
		panic(err)
	}
	return wikidata.Statement{
		Type: "statement",
		Rank: "normal",
		MainSnak: wikidata.Snak{
			SnakType:  wikidata.SnakTypeValue,
			Property:  pid,
			Datatype:  datatype,
			DataValue: &wikidata.DataValue{Value: raw},
		},
	}
}

// Item builds a wikibase-item statement pointing at target. Each qualifier
// pid is attached with an empty value snak.
func Item(pid, target string, qualifiers ...string) wikidata.Statement {
	stmt := Statement(pid, wikidata.DatatypeWikibaseItem, map[string]any{
		"entity-type": "item",
		"id":          target,
	})
	stmt.MainSnak.DataValue.Type = "wikibase-entityid"
	if len(qualifiers) > 0 {
		stmt.Qualifiers = make(map[string][]wikidata.Snak, len(qualifiers))
		for _, q := range qualifiers {
			stmt.Qualifiers[q] = append(stmt.Qualifiers[q], wikidata.Snak{SnakType: wikidata.SnakTypeValue, Property: q})
		}
	}
	return stmt
}

// URL builds a url statement.
func URL(pid, url string) wikidata.Statement {
	stmt := Statement(pid, wikidata.DatatypeURL, url)
	stmt.MainSnak.DataValue.Type = "string"
	return stmt
}

// Text builds a monolingualtext statement.
func Text(pid, text, lang string) wikidata.Statement {
	stmt := Statement(pid, wikidata.DatatypeMonolingualText, map[string]string{"text": text, "language": lang})
	stmt.MainSnak.DataValue.Type = "monolingualtext"
	return stmt
}
