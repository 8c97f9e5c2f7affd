// SPDX-License-Identifier: Apache-2.0

package crawl_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corpgraph/corpgraph/internal/crawl"
	"github.com/corpgraph/corpgraph/internal/extraction"
	"github.com/corpgraph/corpgraph/internal/extraction/claims"
	"github.com/corpgraph/corpgraph/internal/normalize"
	"github.com/corpgraph/corpgraph/internal/sink"
	"github.com/corpgraph/corpgraph/internal/wikidata"
	"github.com/corpgraph/corpgraph/internal/wikidata/wikidatatest"
)

var quiet = log.New(io.Discard)

var nameMap = map[string]string{
	"P452": "industry",
	"P856": "official website",
	"P355": "subsidiary",
	"P527": "has part(s)",
}

func newRunner(t *testing.T, fake *wikidatatest.Fake, out sink.Sink, maxDepth int) *crawl.Runner {
	t.Helper()
	resolver := extraction.NewResolver(extraction.ResolverParams{
		Source:           fake,
		CorporateMarkers: []string{"P452"},
		Logger:           quiet,
	})
	extractor := extraction.NewExtractor(extraction.ExtractorParams{
		Resolver:    resolver,
		Properties:  extraction.NewPropertyParser(quiet, claims.Default(fake)...),
		PropertyIDs: []string{"P452", "P856", "P355", "P527"},
		Logger:      quiet,
	})
	validator, err := normalize.NewValidator()
	require.NoError(t, err)

	return crawl.NewRunner(crawl.RunnerParams{
		Extractor:       extractor,
		Normalizer:      normalize.NewNormalizer(normalize.NormalizerParams{NameMap: nameMap}),
		Validator:       validator,
		Sink:            out,
		NameMap:         nameMap,
		SubsidiaryProps: []string{crawl.PropSubsidiary, crawl.PropHasParts},
		MaxDepth:        maxDepth,
		Logger:          quiet,
	})
}

// Parent (Q1) owns SubA (Q2, corporate) via P355 and SubB (Q3, not
// corporate) via P527.
func groupFake() *wikidatatest.Fake {
	return wikidatatest.NewFake().
		AddSearch("Parent", "Q1").
		AddSearch("SubA", "Q2").
		AddSearch("SubB", "Q3").
		AddEntity(
			wikidatatest.Entity("Q1", "Parent",
				wikidatatest.Item("P452", "Q100"),
				wikidatatest.URL("P856", "https://parent.example"),
				wikidatatest.Item("P355", "Q2"),
				wikidatatest.Item("P527", "Q3"),
			),
			wikidatatest.Entity("Q2", "SubA", wikidatatest.Item("P452", "Q100")),
			wikidatatest.Entity("Q3", "SubB", wikidatatest.URL("P856", "https://subb.example")),
			wikidatatest.Entity("Q100", "Conglomerate"),
		)
}

func TestRunner_ParentAndSubsidiaries(t *testing.T) {
	out := sink.NewMemorySink()
	report, err := newRunner(t, groupFake(), out, 1).Run(context.Background(), "Parent")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"company-Parent",
		"company-SubA",
		"hasPart-SubB",
		"subsidiary-SubA",
	}, out.Keys())
	assert.Equal(t, []string{"SubB"}, report.NotFound)

	require.Len(t, report.Entities, 2)
	assert.Equal(t, "Q1", report.Entities[0].ID)
	assert.ElementsMatch(t, []string{"SubA", "SubB"}, report.Entities[0].Subsidiaries)
	assert.Equal(t, "Q2", report.Entities[1].ID)
	assert.Equal(t, 1, report.Entities[1].Depth)

	data, ok := out.Get("company-Parent")
	require.True(t, ok)
	var company map[string]normalize.Record
	require.NoError(t, json.Unmarshal(data, &company))
	require.Contains(t, company, "Parent")
	assert.Equal(t, "Q1", company["Parent"].SourceID)
	assert.Equal(t, []string{"https://parent.example"}, company["Parent"].OfficialWebsite)

	data, ok = out.Get("hasPart-SubB")
	require.True(t, ok)
	var subsidiary map[string]any
	require.NoError(t, json.Unmarshal(data, &subsidiary))
	assert.Equal(t, "Q3", subsidiary["_id"])
	assert.Equal(t, []any{"https://subb.example"}, subsidiary["official website"])
	assert.NotContains(t, subsidiary, "P856")
}

func TestRunner_MaxDepthZero(t *testing.T) {
	out := sink.NewMemorySink()
	report, err := newRunner(t, groupFake(), out, 0).Run(context.Background(), "Parent")
	require.NoError(t, err)

	assert.Equal(t, []string{"company-Parent", "hasPart-SubB", "subsidiary-SubA"}, out.Keys())
	assert.Len(t, report.Entities, 1)
}

func TestRunner_CycleGuard(t *testing.T) {
	fake := wikidatatest.NewFake().
		AddSearch("Alpha", "Q1").
		AddSearch("Beta", "Q2").
		AddEntity(
			wikidatatest.Entity("Q1", "Alpha", wikidatatest.Item("P452", "Q100"), wikidatatest.Item("P355", "Q2")),
			wikidatatest.Entity("Q2", "Beta", wikidatatest.Item("P452", "Q100"), wikidatatest.Item("P355", "Q1")),
			wikidatatest.Entity("Q100", "Conglomerate"),
		)
	out := sink.NewMemorySink()

	report, err := newRunner(t, fake, out, 10).Run(context.Background(), "Alpha", "alpha")
	require.NoError(t, err)

	require.Len(t, report.Entities, 2)
	assert.Equal(t, "Q1", report.Entities[0].ID)
	assert.Equal(t, "Q2", report.Entities[1].ID)
	assert.ElementsMatch(t, []string{"alpha", "Alpha"}, report.Duplicates)
	assert.Equal(t, []string{"company-Alpha", "company-Beta", "subsidiary-Alpha", "subsidiary-Beta"}, out.Keys())
}

func TestRunner_FailureIsIsolated(t *testing.T) {
	fake := groupFake().FailOn("Broken", &wikidata.APIError{Action: "wbsearchentities"})
	out := sink.NewMemorySink()

	report, err := newRunner(t, fake, out, 0).Run(context.Background(), "Broken", "Parent")
	require.Error(t, err)
	assert.ErrorIs(t, err, wikidata.ErrAPIFailure)
	assert.Equal(t, []string{"Broken"}, report.Failed)
	assert.Contains(t, out.Keys(), "company-Parent")
	assert.NotContains(t, out.Keys(), "company-Broken")
}

func TestRunner_SubsidiaryFailureWritesNothing(t *testing.T) {
	fake := groupFake().FailOn("SubB", &wikidata.APIError{Action: "wbsearchentities"})
	out := sink.NewMemorySink()

	report, err := newRunner(t, fake, out, 1).Run(context.Background(), "Parent")
	require.Error(t, err)
	assert.ErrorIs(t, err, wikidata.ErrAPIFailure)
	assert.Empty(t, out.Keys(), "no partial output for a failed entity")
	assert.Equal(t, []string{"Parent"}, report.Failed)
}

func TestRunner_NotFound(t *testing.T) {
	out := sink.NewMemorySink()
	report, err := newRunner(t, groupFake(), out, 1).Run(context.Background(), "Unknown", "  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Unknown"}, report.NotFound)
	assert.Empty(t, out.Keys())
}

func TestRunner_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner(t, groupFake(), sink.NewMemorySink(), 1).Run(ctx, "Parent")
	assert.ErrorIs(t, err, context.Canceled)
}
