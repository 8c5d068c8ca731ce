package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/apeissigma/artic-gallery/pkg/gallery"
)

func intPtr(v int) *int {
	return &v
}

// fakeFetcher serves canned pages and records which pages were requested.
type fakeFetcher struct {
	mu         sync.Mutex
	pages      map[int][]gallery.Artwork
	failPages  map[int]error
	totalPages int
	requested  map[int]int
}

func newFakeFetcher(totalPages int) *fakeFetcher {
	return &fakeFetcher{
		pages:      make(map[int][]gallery.Artwork),
		failPages:  make(map[int]error),
		totalPages: totalPages,
		requested:  make(map[int]int),
	}
}

func (f *fakeFetcher) FetchPage(ctx context.Context, page int) ([]gallery.Artwork, int, error) {
	f.mu.Lock()
	f.requested[page]++
	f.mu.Unlock()

	if err, ok := f.failPages[page]; ok {
		return nil, 0, err
	}
	return f.pages[page], f.totalPages, nil
}

func (f *fakeFetcher) requests(page int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requested[page]
}

func pageOf(startID, count int) []gallery.Artwork {
	artworks := make([]gallery.Artwork, 0, count)
	for i := 0; i < count; i++ {
		artworks = append(artworks, gallery.Artwork{
			ID:        startID + i,
			Title:     fmt.Sprintf("Artwork %d", startID+i),
			DateStart: intPtr(1900 + i),
		})
	}
	return artworks
}

func TestFetchAll_SinglePage(t *testing.T) {
	fetcher := newFakeFetcher(1)
	fetcher.pages[1] = pageOf(1, 3)

	bf := NewBatchFetcher(fetcher, Config{Pages: 1})

	pages, err := bf.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll() failed: %v", err)
	}

	if len(pages) != 1 {
		t.Fatalf("pages = %d, want 1", len(pages))
	}
	if len(pages[0]) != 3 {
		t.Errorf("page 1 records = %d, want 3", len(pages[0]))
	}
	if fetcher.requests(2) != 0 {
		t.Error("single-page config must not fetch page 2")
	}
}

func TestFetchAll_MultiPageOrdered(t *testing.T) {
	fetcher := newFakeFetcher(3)
	fetcher.pages[1] = pageOf(1, 2)
	fetcher.pages[2] = pageOf(100, 2)
	fetcher.pages[3] = pageOf(200, 2)

	bf := NewBatchFetcher(fetcher, Config{Pages: 3, MaxConcurrency: 2})

	pages, err := bf.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll() failed: %v", err)
	}

	if len(pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(pages))
	}
	// Results come back in page order regardless of fetch order.
	if pages[0][0].ID != 1 || pages[1][0].ID != 100 || pages[2][0].ID != 200 {
		t.Errorf("page order = [%d %d %d], want [1 100 200]",
			pages[0][0].ID, pages[1][0].ID, pages[2][0].ID)
	}
}

func TestFetchAll_DiscoversTotalPages(t *testing.T) {
	fetcher := newFakeFetcher(3)
	fetcher.pages[1] = pageOf(1, 1)
	fetcher.pages[2] = pageOf(2, 1)
	fetcher.pages[3] = pageOf(3, 1)

	// Pages 0 means "fetch everything the API reports".
	bf := NewBatchFetcher(fetcher, Config{Pages: 0})

	pages, err := bf.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll() failed: %v", err)
	}
	if len(pages) != 3 {
		t.Errorf("pages = %d, want 3 (discovered from the API)", len(pages))
	}
}

func TestFetchAll_CapsAtTotalPages(t *testing.T) {
	fetcher := newFakeFetcher(2)
	fetcher.pages[1] = pageOf(1, 1)
	fetcher.pages[2] = pageOf(2, 1)

	bf := NewBatchFetcher(fetcher, Config{Pages: 10})

	pages, err := bf.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll() failed: %v", err)
	}
	if len(pages) != 2 {
		t.Errorf("pages = %d, want 2 (capped at total_pages)", len(pages))
	}
	if fetcher.requests(3) != 0 {
		t.Error("must not request pages beyond total_pages")
	}
}

func TestFetchAll_AllOrNothing(t *testing.T) {
	fetcher := newFakeFetcher(4)
	fetcher.pages[1] = pageOf(1, 1)
	fetcher.pages[3] = pageOf(3, 1)
	fetcher.pages[4] = pageOf(4, 1)
	pageErr := errors.New("server exploded")
	fetcher.failPages[2] = pageErr

	bf := NewBatchFetcher(fetcher, Config{Pages: 4, MaxConcurrency: 2})

	pages, err := bf.FetchAll(context.Background())
	if err == nil {
		t.Fatal("FetchAll() should fail when any page fails")
	}
	if !errors.Is(err, pageErr) {
		t.Errorf("err = %v, want the page error", err)
	}
	if pages != nil {
		t.Error("failed batch must not return partial results")
	}

	// Join semantics: siblings still run to completion.
	for page := 2; page <= 4; page++ {
		if fetcher.requests(page) != 1 {
			t.Errorf("page %d requested %d times, want 1 (no cancellation, no retry)",
				page, fetcher.requests(page))
		}
	}
}

func TestFetchAll_FirstPageFailure(t *testing.T) {
	fetcher := newFakeFetcher(3)
	pageErr := errors.New("boom")
	fetcher.failPages[1] = pageErr

	bf := NewBatchFetcher(fetcher, Config{Pages: 3})

	if _, err := bf.FetchAll(context.Background()); !errors.Is(err, pageErr) {
		t.Errorf("err = %v, want the first page error", err)
	}
	if fetcher.requests(2) != 0 {
		t.Error("a failed first page aborts the batch before fan-out")
	}
}
