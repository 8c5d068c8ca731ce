package pagination

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/apeissigma/artic-gallery/pkg/gallery"
	"github.com/rs/zerolog/log"
)

// Config holds batch fetcher configuration.
type Config struct {
	// Pages is the number of pages to fetch. 0 means fetch every page
	// the API reports. Deployments of the gallery have used 1 and 10.
	Pages int

	// MaxConcurrency is the maximum number of parallel requests.
	MaxConcurrency int

	// Timeout per page fetch.
	Timeout time.Duration
}

// DefaultConfig returns the default batch fetcher configuration.
func DefaultConfig() Config {
	return Config{
		Pages:          1,
		MaxConcurrency: 10,
		Timeout:        15 * time.Second,
	}
}

// PageFetcher fetches a single page of the artwork listing.
// Implemented by the artic client.
type PageFetcher interface {
	// FetchPage fetches one page and returns its records plus the total
	// page count reported by the API.
	FetchPage(ctx context.Context, page int) ([]gallery.Artwork, int, error)
}

// pageResult is the outcome of fetching one page.
type pageResult struct {
	PageNumber int
	Data       []gallery.Artwork
	Error      error
}

// BatchFetcher fetches multiple pages in parallel with all-or-nothing
// semantics: every page is attempted (in-flight siblings are not
// cancelled by a failure), all fetches are joined, and any page failure
// fails the whole batch.
type BatchFetcher struct {
	fetcher PageFetcher
	config  Config
}

// NewBatchFetcher creates a new batch fetcher.
func NewBatchFetcher(fetcher PageFetcher, config Config) *BatchFetcher {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 10
	}
	if config.Timeout <= 0 {
		config.Timeout = 15 * time.Second
	}

	return &BatchFetcher{
		fetcher: fetcher,
		config:  config,
	}
}

// FetchAll fetches the configured number of pages and returns them in
// page order. Page 1 is fetched first to learn the total page count;
// the rest fan out across the worker pool. If any page fails, the whole
// batch fails with the lowest-numbered page error after every in-flight
// fetch has completed.
func (bf *BatchFetcher) FetchAll(ctx context.Context) ([][]gallery.Artwork, error) {
	start := time.Now()

	firstPage, totalPages, err := bf.fetcher.FetchPage(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("fetch first page: %w", err)
	}

	pages := bf.config.Pages
	if pages <= 0 || (totalPages > 0 && pages > totalPages) {
		pages = totalPages
	}
	if pages < 1 {
		pages = 1
	}

	// Single page optimization
	if pages == 1 {
		log.Info().
			Int("pages", 1).
			Int("artworks", len(firstPage)).
			Dur("duration", time.Since(start)).
			Msg("Fetch complete (single page)")
		return [][]gallery.Artwork{firstPage}, nil
	}

	log.Info().
		Int("pages", pages).
		Int("total_pages", totalPages).
		Msg("Starting parallel page fetch")

	results := make([][]gallery.Artwork, pages)
	results[0] = firstPage
	pageErrs := make([]error, pages)

	pageQueue := make(chan int, pages)
	pageResults := make(chan pageResult, pages)

	// Fill page queue (skip page 1, already fetched)
	go func() {
		for page := 2; page <= pages; page++ {
			pageQueue <- page
		}
		close(pageQueue)
	}()

	var wg sync.WaitGroup
	for i := 0; i < bf.config.MaxConcurrency; i++ {
		wg.Add(1)
		go bf.worker(ctx, pageQueue, pageResults, &wg, i)
	}

	go func() {
		wg.Wait()
		close(pageResults)
	}()

	fetched := 1
	for result := range pageResults {
		if result.Error != nil {
			log.Warn().
				Err(result.Error).
				Int("page", result.PageNumber).
				Msg("Page fetch failed")
			pageErrs[result.PageNumber-1] = result.Error
			continue
		}
		results[result.PageNumber-1] = result.Data
		fetched++
	}

	// All-or-nothing: surface the lowest-numbered page failure
	for _, pageErr := range pageErrs {
		if pageErr != nil {
			return nil, pageErr
		}
	}

	log.Info().
		Int("pages", fetched).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return results, nil
}

// worker processes pages from the queue. Workers keep draining the
// queue after a failure so that every page is attempted before the
// batch is joined.
func (bf *BatchFetcher) worker(ctx context.Context, pageQueue <-chan int, results chan<- pageResult, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()
	pagesProcessed := 0

	for pageNum := range pageQueue {
		select {
		case <-ctx.Done():
			results <- pageResult{PageNumber: pageNum, Error: ctx.Err()}
			continue
		default:
		}

		pageCtx, cancel := context.WithTimeout(ctx, bf.config.Timeout)
		data, _, err := bf.fetcher.FetchPage(pageCtx, pageNum)
		cancel()

		results <- pageResult{
			PageNumber: pageNum,
			Data:       data,
			Error:      err,
		}
		pagesProcessed++
	}

	if pagesProcessed > 0 {
		log.Debug().
			Int("worker_id", workerID).
			Int("pages_processed", pagesProcessed).
			Msg("Worker completed")
	}
}
