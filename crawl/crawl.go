// Package crawl orchestrates article harvesting. It coordinates listing
// discovery, retrying fetches, paywall filtering, extraction, translation,
// classification, and delivery of records to the sinks.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/harvest"
	"golang.org/x/sync/errgroup"
)

// MaxConcurrency is the upper bound on concurrent article workers.
const MaxConcurrency = 8

// Pipeline harvests the articles linked from one listing page.
// Converter, Metadata, KnowledgeBase, Archive, RateLimiter, Translator,
// Classifier and Logger are optional.
type Pipeline struct {
	Fetcher       harvest.Fetcher
	Links         harvest.LinkExtractor
	Processor     harvest.DocumentProcessor
	Classifier    harvest.Classifier
	Translator    harvest.Translator
	Converter     harvest.Converter
	Metadata      harvest.MetadataExtractor
	KnowledgeBase harvest.KnowledgeBase
	Archive       harvest.RecordSaver
	RateLimiter   harvest.DomainLimiter
	Logger        *slog.Logger

	ListingURL  string
	PathPrefix  string
	Concurrency int
	Retry       RetryPolicy

	// Now is used to time the run. Defaults to time.Now.
	Now func() time.Time
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Title     string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
// It is always called from a single goroutine.
type ProgressFunc func(event ProgressEvent)

// articleResult holds the outcome of processing a single article.
type articleResult struct {
	position int
	url      harvest.ArticleReference
	record   *harvest.Record
	skipped  bool
	err      error
}

// Run discovers article links on the listing page and processes each one.
// A listing that cannot be fetched yields an empty report and no error.
// Per-article failures are recorded in the report and never abort the run.
// If ctx is canceled, dispatch stops and the partial report is returned
// together with the context error. Articles never dispatched appear in no
// count, so Succeeded+Skipped+Failed may be less than Discovered.
func (p *Pipeline) Run(ctx context.Context, progress ProgressFunc) (*harvest.BatchReport, error) {
	start := p.now()
	report := &harvest.BatchReport{}
	log := p.logger()

	links, err := p.discover(ctx)
	if err != nil {
		if harvest.ErrorCode(err) == harvest.EINVALID {
			return nil, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			report.Duration = p.now().Sub(start)
			return report, ctxErr
		}
		log.Error("listing fetch failed", "url", p.ListingURL, "err", err)
		report.Duration = p.now().Sub(start)
		return report, nil
	}
	report.Discovered = len(links)

	if len(links) == 0 {
		log.Warn("no article links found", "url", p.ListingURL)
		report.Duration = p.now().Sub(start)
		return report, nil
	}
	log.Info("discovered articles", "url", p.ListingURL, "count", len(links))

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	concurrency = min(concurrency, MaxConcurrency)

	resultCh := make(chan *articleResult, len(links))
	total := len(links)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, link := range links {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				resultCh <- p.processArticle(gctx, i, link)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results; slots stay nil for articles never dispatched.
	results := make([]*articleResult, len(links))
	completed := 0
	for result := range resultCh {
		completed++
		results[result.position] = result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Completed: completed,
			Total:     total,
			URL:       string(result.url),
		}
		switch {
		case result.err != nil:
			event.Type = ProgressFailed
			event.Error = result.err
		case result.skipped:
			event.Type = ProgressSkipped
		default:
			event.Type = ProgressCompleted
			event.Title = result.record.Title
		}
		progress(event)
	}

	for _, result := range results {
		switch {
		case result == nil:
			continue
		case result.err != nil:
			report.Failed++
			report.FailedURLs = append(report.FailedURLs, result.url)
		case result.skipped:
			report.Skipped++
		default:
			report.Succeeded++
			report.Records = append(report.Records, result.record)
		}
	}

	if p.Archive != nil && len(report.Records) > 0 {
		if err := p.Archive.Save(ctx, report.Records); err != nil {
			log.Error("archive save failed", "count", len(report.Records), "err", err)
		}
	}

	report.Duration = p.now().Sub(start)

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: completed,
			Total:     total,
		})
	}

	log.Info("batch complete",
		"discovered", report.Discovered,
		"succeeded", report.Succeeded,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"duration", report.Duration)
	for _, u := range report.FailedURLs {
		log.Warn("article failed", "url", string(u))
	}

	return report, ctx.Err()
}

// discover fetches the listing page and extracts article links.
func (p *Pipeline) discover(ctx context.Context) ([]harvest.ArticleReference, error) {
	listing, err := url.Parse(p.ListingURL)
	if err != nil || listing.Host == "" {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid listing URL %q", p.ListingURL)
	}

	if p.RateLimiter != nil {
		if err := p.RateLimiter.Wait(ctx, listing.Host); err != nil {
			return nil, err
		}
	}

	raw, err := FetchWithRetry(ctx, p.ListingURL, p.Fetcher.Fetch, p.Retry, p.retryLogger())
	if err != nil {
		return nil, err
	}

	prefix := p.PathPrefix
	if prefix == "" {
		prefix = harvest.DefaultPathPrefix
	}
	return p.Links.ExtractLinks(raw.Body, p.ListingURL, prefix)
}

// processArticle fetches and processes a single article.
func (p *Pipeline) processArticle(ctx context.Context, position int, link harvest.ArticleReference) *articleResult {
	result := &articleResult{
		position: position,
		url:      link,
	}
	log := p.logger().With("url", string(link))

	if err := ctx.Err(); err != nil {
		result.err = err
		return result
	}

	if p.RateLimiter != nil {
		u, err := url.Parse(string(link))
		if err != nil {
			result.err = err
			return result
		}
		if err := p.RateLimiter.Wait(ctx, u.Host); err != nil {
			result.err = err
			return result
		}
	}

	raw, err := FetchWithRetry(ctx, string(link), p.Fetcher.Fetch, p.Retry, p.retryLogger())
	if err != nil {
		log.Warn("article fetch failed", "err", err)
		result.err = err
		return result
	}

	switch outcome := p.Processor.Process(raw).(type) {
	case *harvest.Paywalled:
		log.Info("skipping paywalled article")
		result.skipped = true
	case *harvest.Failed:
		log.Warn("article processing failed", "err", outcome.Cause)
		result.err = outcome.Cause
	case *harvest.Extracted:
		if strings.TrimSpace(outcome.Title) == "" {
			result.err = harvest.Errorf(harvest.EINVALID, "empty title for %s", link)
			log.Warn("article has no title")
			return result
		}
		result.record = p.buildRecord(ctx, outcome, raw, log)
		p.persist(ctx, result.record, log)
		log.Info("article harvested", "title", result.record.Title, "category", string(result.record.Category))
	default:
		result.err = harvest.Errorf(harvest.EINTERNAL, "unexpected outcome %T", outcome)
	}

	return result
}

// buildRecord translates, classifies and enriches an extracted article.
// Failures of the optional stages are logged and leave their fields empty.
func (p *Pipeline) buildRecord(ctx context.Context, ex *harvest.Extracted, raw *harvest.RawDocument, log *slog.Logger) *harvest.Record {
	rec := &harvest.Record{
		Title:       ex.Title,
		URL:         ex.SourceURL,
		Content:     ex.Body,
		ContentHash: ComputeHash(ex.Body),
		CrawledAt:   ex.FetchedAt,
	}

	translated := ex.Body
	if p.Translator != nil && ex.Body != harvest.NoContentFound {
		t, err := p.Translator.Translate(ctx, ex.Body)
		if err != nil {
			log.Warn("translation failed, keeping original text", "err", err)
		} else {
			translated = t
		}
	}
	rec.TranslatedContent = translated

	rec.Category = harvest.CategoryOther
	if p.Classifier != nil {
		rec.Category = p.Classifier.Classify(translated)
	}

	if p.Converter != nil && ex.BodyHTML != "" {
		md, err := p.Converter.Convert(ex.BodyHTML)
		if err != nil {
			log.Warn("markdown conversion failed", "err", err)
		} else {
			rec.Markdown = md
		}
	}

	if p.Metadata != nil {
		md, err := p.Metadata.ExtractMetadata(string(raw.Body))
		if err != nil {
			log.Debug("metadata extraction failed", "err", err)
		} else {
			rec.Author = md.Author
			rec.Excerpt = md.Excerpt
		}
	}

	return rec
}

// persist writes the record to the knowledge base. Errors are logged only.
func (p *Pipeline) persist(ctx context.Context, rec *harvest.Record, log *slog.Logger) {
	if p.KnowledgeBase == nil {
		return
	}
	if err := p.KnowledgeBase.Write(ctx, rec); err != nil {
		log.Error("knowledge base write failed", "err", harvest.Errorf(harvest.ESINK, "%v", err))
	}
}

func (p *Pipeline) retryLogger() LogFunc {
	log := p.logger()
	return func(format string, args ...any) {
		log.Info(fmt.Sprintf(format, args...))
	}
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

func (p *Pipeline) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}
