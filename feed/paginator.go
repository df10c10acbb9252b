// Package feed accumulates paginated CMS listings into one ordered,
// de-duplicated post list.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/eringen/spacetraveling/content"
)

var (
	// ErrExhausted is returned by LoadMore when there is no next page.
	ErrExhausted = errors.New("feed: no more pages")
	// ErrLoadInProgress is returned by LoadMore while another load is running.
	ErrLoadInProgress = errors.New("feed: load already in progress")
	// ErrCursorLoop is returned by Collect when the CMS repeats a cursor.
	ErrCursorLoop = errors.New("feed: continuation cursor repeated")
)

// Fetcher retrieves the page a continuation cursor points at.
type Fetcher interface {
	FetchPage(ctx context.Context, cursor string) (content.Feed, error)
}

// FetchError wraps a failed page fetch. The paginator state is unchanged
// when it is returned, so the same load can be retried.
type FetchError struct {
	Cursor string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("feed: fetch page: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Paginator holds the posts seen so far and the cursor of the next page.
// LoadMore calls are serialized: while one is fetching, others are rejected.
type Paginator struct {
	fetcher Fetcher

	mu         sync.Mutex
	posts      []content.Post
	seen       map[string]struct{}
	next       string
	loading    bool
	generation uint64
}

// New creates an empty Paginator that loads further pages from f.
func New(f Fetcher) *Paginator {
	return &Paginator{fetcher: f, seen: make(map[string]struct{})}
}

// Initialize replaces the accumulated state with a freshly fetched feed.
// A load still in flight from before is discarded when it completes.
func (p *Paginator) Initialize(f content.Feed) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	p.posts = nil
	p.seen = make(map[string]struct{})
	p.appendLocked(f.Posts)
	p.next = f.NextPage
}

// LoadMore fetches the next page and appends its posts.
func (p *Paginator) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	if !content.HasNextPage(p.next) {
		p.mu.Unlock()
		return ErrExhausted
	}
	if p.loading {
		p.mu.Unlock()
		return ErrLoadInProgress
	}
	p.loading = true
	cursor := p.next
	gen := p.generation
	p.mu.Unlock()

	page, err := p.fetcher.FetchPage(ctx, cursor)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return &FetchError{Cursor: cursor, Err: err}
	}
	if gen != p.generation {
		return nil
	}
	p.appendLocked(page.Posts)
	p.next = page.NextPage
	return nil
}

func (p *Paginator) appendLocked(posts []content.Post) {
	for _, post := range posts {
		if post.UID != "" {
			if _, dup := p.seen[post.UID]; dup {
				continue
			}
			p.seen[post.UID] = struct{}{}
		}
		p.posts = append(p.posts, post)
	}
}

// Posts returns a copy of the accumulated posts in CMS order.
func (p *Paginator) Posts() []content.Post {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]content.Post, len(p.posts))
	copy(out, p.posts)
	return out
}

// HasMore reports whether LoadMore can fetch another page.
func (p *Paginator) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return content.HasNextPage(p.next)
}

// NextPage returns the current continuation cursor, or "" when exhausted.
func (p *Paginator) NextPage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !content.HasNextPage(p.next) {
		return ""
	}
	return p.next
}

// Collect follows every continuation cursor starting from first and returns
// the complete feed in CMS order.
func Collect(ctx context.Context, f Fetcher, first content.Feed) ([]content.Post, error) {
	p := New(f)
	p.Initialize(first)
	followed := make(map[string]struct{})
	for p.HasMore() {
		cursor := p.NextPage()
		if _, ok := followed[cursor]; ok {
			return nil, ErrCursorLoop
		}
		followed[cursor] = struct{}{}
		if err := p.LoadMore(ctx); err != nil {
			return nil, err
		}
	}
	return p.Posts(), nil
}
