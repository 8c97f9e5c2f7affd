// SPDX-License-Identifier: Apache-2.0

// Package crawl drives extraction over a list of company names and follows
// their subsidiaries.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/thoas/go-funk"

	"github.com/corpgraph/corpgraph/internal/extraction"
	"github.com/corpgraph/corpgraph/internal/normalize"
	"github.com/corpgraph/corpgraph/internal/sink"
)

// Property ids whose references are written under a dedicated key prefix.
const (
	PropSubsidiary = "P355"
	PropHasParts   = "P527"
)

// Extractor builds the DetailRecord for a name.
type Extractor interface {
	Extract(ctx context.Context, name string, mode extraction.Mode) (*extraction.DetailRecord, error)
}

// Runner processes names from a FIFO queue. Each discovered subsidiary is
// written as a renamed detail record and, while within MaxDepth, queued again
// as a company of its own. Names and entity ids are processed at most once
// per Run, which also breaks reference cycles.
type Runner struct {
	extractor       Extractor
	normalizer      *normalize.Normalizer
	validator       *normalize.Validator
	sink            sink.Sink
	nameMap         map[string]string
	subsidiaryProps []string
	maxDepth        int
	logger          *log.Logger
}

// RunnerParams configures a Runner. Validator is optional.
type RunnerParams struct {
	Extractor       Extractor
	Normalizer      *normalize.Normalizer
	Validator       *normalize.Validator
	Sink            sink.Sink
	NameMap         map[string]string
	SubsidiaryProps []string
	MaxDepth        int
	Logger          *log.Logger
}

// NewRunner creates a new Runner.
func NewRunner(params RunnerParams) *Runner {
	logger := params.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		extractor:       params.Extractor,
		normalizer:      params.Normalizer,
		validator:       params.Validator,
		sink:            params.Sink,
		nameMap:         params.NameMap,
		subsidiaryProps: params.SubsidiaryProps,
		maxDepth:        params.MaxDepth,
		logger:          logger,
	}
}

// EntityReport describes one company that was written.
type EntityReport struct {
	Name         string
	ID           string
	Depth        int
	Keys         []string
	Subsidiaries []string
}

// Report summarizes a Run.
type Report struct {
	Entities   []EntityReport
	NotFound   []string
	Duplicates []string
	Failed     []string
}

var errNotFound = errors.New("no corporate entity found")

type workItem struct {
	name  string
	depth int
}

type document struct {
	key   string
	value any
}

type state struct {
	names map[string]bool
	ids   map[string]bool
}

// Run processes names and everything reachable from them within MaxDepth.
// A failing entity is reported and skipped; its siblings are still
// processed. All failures are returned joined once the queue is drained.
func (r *Runner) Run(ctx context.Context, names ...string) (*Report, error) {
	queue := make([]workItem, 0, len(names))
	for _, name := range names {
		queue = append(queue, workItem{name: name})
	}

	st := &state{names: map[string]bool{}, ids: map[string]bool{}}
	report := &Report{}
	var errs []error

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		item := queue[0]
		queue = queue[1:]

		key := strings.ToLower(strings.TrimSpace(item.name))
		if key == "" {
			continue
		}
		if st.names[key] {
			report.Duplicates = append(report.Duplicates, item.name)
			continue
		}
		st.names[key] = true

		r.logger.Info("fetching data", "name", item.name, "depth", item.depth)
		entity, docs, err := r.process(ctx, item, st)
		switch {
		case errors.Is(err, errNotFound):
			report.NotFound = append(report.NotFound, item.name)
			continue
		case err != nil:
			r.logger.Error("entity failed", "name", item.name, "err", err)
			report.Failed = append(report.Failed, item.name)
			errs = append(errs, err)
			continue
		case entity == nil:
			continue
		}

		if err := r.persist(ctx, docs); err != nil {
			r.logger.Error("persisting entity failed", "name", item.name, "err", err)
			report.Failed = append(report.Failed, item.name)
			errs = append(errs, err)
			continue
		}
		for _, d := range docs {
			entity.Keys = append(entity.Keys, d.key)
		}
		report.Entities = append(report.Entities, *entity)

		if item.depth < r.maxDepth {
			for _, sub := range entity.Subsidiaries {
				queue = append(queue, workItem{name: sub, depth: item.depth + 1})
			}
		}
	}

	return report, errors.Join(errs...)
}

// process extracts one company and its subsidiaries. Nothing is written
// here; documents are returned for the caller to persist together.
func (r *Runner) process(ctx context.Context, item workItem, st *state) (*EntityReport, []document, error) {
	record, err := r.extractor.Extract(ctx, item.name, extraction.ModeCorporate)
	if err != nil {
		return nil, nil, fmt.Errorf("extracting %q: %w", item.name, err)
	}
	if record == nil {
		r.logger.Warn("no corporate entity found", "name", item.name)
		return nil, nil, errNotFound
	}
	if st.ids[record.ID] {
		r.logger.Info("entity already processed", "name", item.name, "eid", record.ID)
		return nil, nil, nil
	}
	st.ids[record.ID] = true

	var docs []document
	var subsidiaries []string
	for _, pid := range r.subsidiaryProps {
		for _, v := range record.Properties[pid] {
			ref, ok := v.(extraction.EntityRef)
			if !ok {
				continue
			}
			subsidiaries = append(subsidiaries, ref.Label)

			sub, err := r.extractor.Extract(ctx, ref.Label, extraction.ModeSubsidiary)
			if err != nil {
				return nil, nil, fmt.Errorf("extracting subsidiary %q of %q: %w", ref.Label, item.name, err)
			}
			if sub == nil {
				r.logger.Warn("subsidiary not found", "name", ref.Label, "parent", item.name)
				continue
			}
			docs = append(docs, document{
				key:   subsidiaryKeyPrefix(pid) + ref.Label,
				value: extraction.RenamePropertyIDs(r.nameMap, sub.Flatten()),
			})
		}
	}

	normalized := r.normalizer.Normalize(record)
	if r.validator != nil {
		if err := r.validator.Validate(normalized); err != nil {
			return nil, nil, err
		}
	}
	docs = append(docs, document{
		key:   "company-" + item.name,
		value: map[string]normalize.Record{item.name: normalized},
	})

	return &EntityReport{
		Name:         item.name,
		ID:           record.ID,
		Depth:        item.depth,
		Subsidiaries: funk.UniqString(subsidiaries),
	}, docs, nil
}

func (r *Runner) persist(ctx context.Context, docs []document) error {
	for _, d := range docs {
		if err := r.sink.Put(ctx, d.key, d.value); err != nil {
			return err
		}
		r.logger.Info("output written", "key", d.key, "sink", r.sink.Name())
	}
	return nil
}

func subsidiaryKeyPrefix(pid string) string {
	if pid == PropHasParts {
		return "hasPart-"
	}
	return "subsidiary-"
}
