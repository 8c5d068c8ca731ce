// Package pagination provides parallel batch fetching for the paginated
// artworks listing.
//
// The museum API reports total_pages in its pagination block and serves
// pages independently, so pages 2..N can be fetched in parallel once
// page 1 is in. This package implements a worker pool over the page
// range with join semantics: all pages are attempted, the caller waits
// for every fetch to complete, and a single page failure fails the
// whole batch (the gallery load is all-or-nothing).
//
// Example usage:
//
//	config := pagination.DefaultConfig()
//	config.Pages = 10
//	fetcher := pagination.NewBatchFetcher(articClient, config)
//	pages, err := fetcher.FetchAll(ctx)
//
// The batch fetcher:
//   - Fetches page 1 to determine the total page count
//   - Spawns a worker pool (default 10 workers)
//   - Distributes the remaining pages across workers
//   - Assembles results in page order
//   - Fails the batch on any page error, after all fetches settle
package pagination
