package docs

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/cmdstub/errors"
	"github.com/teranos/cmdstub/internal/httpclient"
	"github.com/teranos/cmdstub/internal/util"
	"github.com/teranos/cmdstub/logger"
)

// maxPageBytes bounds a single documentation page
const maxPageBytes = 8 << 20

// FetcherOptions configures a Fetcher
type FetcherOptions struct {
	Timeout           time.Duration
	RequestsPerSecond float64 // <= 0 disables throttling
	UserAgent         string
	BlockPrivateIP    bool
	Cache             *PageCache // nil disables caching
}

// Fetcher downloads documentation pages with throttling and an optional cache
type Fetcher struct {
	client  *httpclient.SaferClient
	limiter *rate.Limiter
	cache   *PageCache
	timeout time.Duration
	log     *zap.SugaredLogger
}

// NewFetcher creates a Fetcher
func NewFetcher(opts FetcherOptions) *Fetcher {
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	return &Fetcher{
		client: httpclient.NewSaferClientWithOptions(opts.Timeout, httpclient.SaferClientOptions{
			BlockPrivateIP: util.Ptr(opts.BlockPrivateIP),
			UserAgent:      opts.UserAgent,
		}),
		limiter: rate.NewLimiter(limit, 1),
		cache:   opts.Cache,
		timeout: opts.Timeout,
		log:     logger.ComponentLogger("docs.fetch"),
	}
}

// Fetch returns the body of url. A 404 yields errors.ErrNotFound.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.cache != nil {
		body, ok, err := f.cache.Get(ctx, url)
		switch {
		case err != nil:
			f.log.Warnw("Page cache read failed", logger.FieldURL, url, logger.FieldError, err)
		case ok:
			if logger.ShouldOutput(logger.Verbosity, logger.OutputFetches) {
				f.log.Debugw("Cache hit", logger.FieldURL, url)
			}
			return body, nil
		}
	}

	body, err := f.download(ctx, url)
	if err != nil {
		return "", err
	}

	if f.cache != nil {
		if err := f.cache.Put(ctx, url, body); err != nil {
			f.log.Warnw("Page cache write failed", logger.FieldURL, url, logger.FieldError, err)
		}
	}
	return body, nil
}

func (f *Fetcher) download(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", errors.Wrap(err, "rate limiter")
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := f.client.Get(ctx, url)
	if err != nil {
		return "", errors.Wrapf(err, "failed to fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", errors.Wrapf(errors.ErrNotFound, "page %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf("failed to fetch %s: HTTP %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", url)
	}

	if logger.ShouldOutput(logger.Verbosity, logger.OutputFetches) {
		f.log.Debugw("Fetched page",
			logger.FieldURL, url,
			"bytes", len(data),
			logger.FieldDurationMS, time.Since(start).Milliseconds())
	}
	return string(data), nil
}
