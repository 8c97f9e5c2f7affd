// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/corpgraph/corpgraph/internal/config"
	"github.com/corpgraph/corpgraph/internal/extraction"
	"github.com/corpgraph/corpgraph/internal/extraction/claims"
	"github.com/corpgraph/corpgraph/internal/normalize"
	"github.com/corpgraph/corpgraph/internal/sink"
	"github.com/corpgraph/corpgraph/internal/wikidata"
)

// pipeline holds the components shared by the run and serve commands.
type pipeline struct {
	extractor  *extraction.Extractor
	normalizer *normalize.Normalizer
	validator  *normalize.Validator
}

func newPipeline(cfg *config.Config, source interface {
	extraction.EntitySource
	extraction.LabelSource
}, logger *log.Logger) (*pipeline, error) {
	resolver := extraction.NewResolver(extraction.ResolverParams{
		Source:           source,
		CorporateMarkers: cfg.CorporateCompanyProps,
		SearchLimit:      cfg.SearchLimit,
		Languages:        cfg.Languages,
		Logger:           logger,
	})
	extractor := extraction.NewExtractor(extraction.ExtractorParams{
		Resolver:    resolver,
		Properties:  extraction.NewPropertyParser(logger, claims.Default(source)...),
		PropertyIDs: cfg.PropsToFetch,
		Logger:      logger,
	})
	validator, err := normalize.NewValidator()
	if err != nil {
		return nil, err
	}
	return &pipeline{
		extractor: extractor,
		normalizer: normalize.NewNormalizer(normalize.NormalizerParams{
			NameMap:            cfg.PropsNameMap,
			PreferredLanguages: cfg.PreferredLanguages,
		}),
		validator: validator,
	}, nil
}

func newWikidataClient(cfg *config.Config, logger *log.Logger) *wikidata.Client {
	return wikidata.NewClient(wikidata.ClientParams{
		BaseURL:           cfg.APIURL,
		UserAgent:         cfg.UserAgent,
		Timeout:           cfg.TimeoutDuration(),
		RequestsPerSecond: cfg.RequestsPerSecond,
		Logger:            logger,
	})
}

func newSink(ctx context.Context, out config.Output) (sink.Sink, error) {
	switch out.Backend {
	case config.BackendFile:
		fs, err := sink.NewFileSink(out.Dir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case config.BackendS3:
		client, err := sink.NewS3Client(ctx, sink.S3Params{
			Region:    out.Region,
			Endpoint:  out.Endpoint,
			AccessKey: out.AccessKey,
			SecretKey: out.SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return sink.NewS3Sink(client, out.Bucket, out.Prefix), nil
	default:
		return nil, fmt.Errorf("unsupported output backend %q", out.Backend)
	}
}
