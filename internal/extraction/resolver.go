// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/thoas/go-funk"

	"github.com/corpgraph/corpgraph/internal/wikidata"
)

const (
	_defaultSearchLanguage = "en"
	_defaultSearchLimit    = 3
)

// Resolution is a resolved entity together with its full document.
type Resolution struct {
	ID     string
	Entity *wikidata.Entity
}

// Resolver turns free-text names into entity documents.
type Resolver struct {
	source           EntitySource
	corporateMarkers []string
	searchLanguage   string
	searchLimit      int
	languages        []string
	logger           *log.Logger
}

// ResolverParams configures a Resolver.
type ResolverParams struct {
	Source EntitySource
	// CorporateMarkers are the property ids whose presence marks an entity
	// as a corporate entity.
	CorporateMarkers []string
	SearchLanguage   string
	SearchLimit      int
	// Languages are requested for labels, descriptions and aliases.
	Languages []string
	Logger    *log.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(params ResolverParams) *Resolver {
	r := &Resolver{
		source:           params.Source,
		corporateMarkers: params.CorporateMarkers,
		searchLanguage:   params.SearchLanguage,
		searchLimit:      params.SearchLimit,
		languages:        params.Languages,
		logger:           params.Logger,
	}
	if r.searchLanguage == "" {
		r.searchLanguage = _defaultSearchLanguage
	}
	if r.searchLimit <= 0 {
		r.searchLimit = _defaultSearchLimit
	}
	if len(r.languages) == 0 {
		r.languages = []string{_defaultSearchLanguage}
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r
}

// Resolve dispatches to ResolveCorporate or ResolveSubsidiary.
func (r *Resolver) Resolve(ctx context.Context, name string, mode Mode) (*Resolution, error) {
	if mode == ModeSubsidiary {
		return r.ResolveSubsidiary(ctx, name)
	}
	return r.ResolveCorporate(ctx, name)
}

// ResolveCorporate returns the first search candidate whose claims carry a
// corporate marker. A nil Resolution with a nil error means no candidate
// qualified.
func (r *Resolver) ResolveCorporate(ctx context.Context, name string) (*Resolution, error) {
	var match *Resolution
	err := r.scan(ctx, name, func(res *Resolution) bool {
		if r.IsCorporateEntity(res.Entity.Claims) {
			match = res
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if match == nil {
		r.logger.Info("no corporate entity matched", "name", name)
	}
	return match, nil
}

// ResolveSubsidiary returns the last search candidate scanned, without
// checking for corporate markers. The result is a best available match.
func (r *Resolver) ResolveSubsidiary(ctx context.Context, name string) (*Resolution, error) {
	var last *Resolution
	err := r.scan(ctx, name, func(res *Resolution) bool {
		last = res
		return true
	})
	if err != nil {
		return nil, err
	}
	if last == nil {
		r.logger.Info("no entity matched", "name", name)
	}
	return last, nil
}

// IsCorporateEntity reports whether claims contain any corporate marker.
func (r *Resolver) IsCorporateEntity(claims map[string][]wikidata.Statement) bool {
	for pid := range claims {
		if funk.ContainsString(r.corporateMarkers, pid) {
			return true
		}
	}
	return false
}

// scan searches for name and fetches each candidate in search order until
// visit returns false.
func (r *Resolver) scan(ctx context.Context, name string, visit func(*Resolution) bool) error {
	hits, err := r.source.SearchEntities(ctx, name, r.searchLanguage, r.searchLimit)
	if err != nil {
		return fmt.Errorf("search for %q failed: %w", name, err)
	}
	for _, hit := range hits {
		entity, err := r.source.GetEntity(ctx, hit.ID, r.languages)
		if err != nil {
			return fmt.Errorf("fetching candidate %s for %q failed: %w", hit.ID, name, err)
		}
		if !visit(&Resolution{ID: hit.ID, Entity: entity}) {
			return nil
		}
	}
	return nil
}
