package generator

import (
	"context"
	"time"

	"github.com/teranos/cmdstub/config"
	"github.com/teranos/cmdstub/docs"
	"github.com/teranos/cmdstub/errors"
	"github.com/teranos/cmdstub/host"
	"github.com/teranos/cmdstub/logger"
	"github.com/teranos/cmdstub/typemap"
)

// Pipeline owns the resources a configured generator holds open
type Pipeline struct {
	*Generator
	Session *host.Session
	cache   *docs.PageCache
}

// Close releases the page cache and the host session
func (p *Pipeline) Close() error {
	var err error
	if p.cache != nil {
		err = p.cache.Close()
	}
	if p.Session != nil {
		if serr := p.Session.Close(); err == nil {
			err = serr
		}
	}
	return err
}

// Build acquires the host, loads the override tables and opens the
// documentation source described by cfg. The caller must Close the pipeline.
func Build(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	tables, err := typemap.LoadTables(cfg.Overrides.Dir)
	if err != nil {
		return nil, err
	}

	session, err := host.Open(ctx, host.Options{
		Snapshot: cfg.Host.Snapshot,
		Command:  cfg.Host.Command,
		Timeout:  time.Duration(cfg.Host.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	p := &Pipeline{Session: session}

	source, err := p.openSource(ctx, cfg)
	if err != nil {
		p.Close()
		return nil, err
	}

	p.Generator = New(session, source, typemap.NewMapper(tables), Options{
		Output:              cfg.Output.Path,
		IncludeUndocumented: cfg.Generate.IncludeUndocumented,
		SequenceParams:      cfg.Generate.SequenceParams,
		Strict:              cfg.Generate.Strict,
	})
	return p, nil
}

func (p *Pipeline) openSource(ctx context.Context, cfg *config.Config) (docs.Source, error) {
	log := logger.ComponentLogger("generator")

	if cfg.Docs.Dir != "" {
		log.Infow("Reading documentation from directory", logger.FieldPath, cfg.Docs.Dir)
		return docs.NewDirSource(cfg.Docs.Dir), nil
	}

	version := cfg.Docs.Version
	if version == "" {
		hostVersion, err := p.Session.Version(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read host version")
		}
		if version, err = docs.DocsVersion(hostVersion); err != nil {
			return nil, err
		}
	}

	if cfg.Cache.Enabled {
		cache, err := docs.OpenPageCache(cfg.Cache.Path)
		if err != nil {
			return nil, err
		}
		p.cache = cache
	}

	fetcher := docs.NewFetcher(docs.FetcherOptions{
		Timeout:           time.Duration(cfg.Docs.TimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.Docs.RequestsPerSecond,
		UserAgent:         cfg.Docs.UserAgent,
		BlockPrivateIP:    cfg.Docs.BlockPrivateIP,
		Cache:             p.cache,
	})
	urls := docs.URLBuilder{BaseURL: cfg.Docs.BaseURL, Version: version}
	log.Infow("Reading documentation online", logger.FieldURL, urls.PageURL(cfg.Docs.IndexPage), logger.FieldVersion, version)
	return docs.NewIndexSource(fetcher, urls, cfg.Docs.IndexPage), nil
}
