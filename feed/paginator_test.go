package feed

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/eringen/spacetraveling/content"
)

type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]content.Feed
	errs  map[string]error
	calls []string
}

func (f *fakeFetcher) FetchPage(ctx context.Context, cursor string) (content.Feed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cursor)
	if err, ok := f.errs[cursor]; ok {
		return content.Feed{}, err
	}
	page, ok := f.pages[cursor]
	if !ok {
		return content.Feed{}, errors.New("unknown cursor " + cursor)
	}
	return page, nil
}

func posts(uids ...string) []content.Post {
	out := make([]content.Post, len(uids))
	for i, u := range uids {
		out[i] = content.Post{UID: u, Title: "Post " + u}
	}
	return out
}

func uids(ps []content.Post) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.UID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLoadMoreAppendsInOrder(t *testing.T) {
	f := &fakeFetcher{pages: map[string]content.Feed{
		"page2": {Posts: posts("d", "e"), NextPage: ""},
	}}
	p := New(f)
	p.Initialize(content.Feed{Posts: posts("a", "b", "c"), NextPage: "page2"})

	if !p.HasMore() {
		t.Fatal("expected HasMore after initialize with a cursor")
	}
	if err := p.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	if got := uids(p.Posts()); !equal(got, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("Posts = %v", got)
	}
	if p.HasMore() {
		t.Error("expected HasMore=false after last page")
	}
}

func TestHasMoreNormalizesEmptyTokens(t *testing.T) {
	for _, token := range []string{"", " ", "\n"} {
		p := New(&fakeFetcher{})
		p.Initialize(content.Feed{Posts: posts("a"), NextPage: token})
		if p.HasMore() {
			t.Errorf("HasMore with token %q = true, want false", token)
		}
		if p.NextPage() != "" {
			t.Errorf("NextPage with token %q = %q, want empty", token, p.NextPage())
		}
	}
}

func TestLoadMoreWhenExhaustedIsRejected(t *testing.T) {
	f := &fakeFetcher{}
	p := New(f)
	p.Initialize(content.Feed{Posts: posts("a")})

	err := p.LoadMore(context.Background())
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("LoadMore error = %v, want ErrExhausted", err)
	}
	if len(f.calls) != 0 {
		t.Errorf("fetcher called %d times, want 0", len(f.calls))
	}
}

func TestLoadMoreFailureLeavesStateUnchanged(t *testing.T) {
	cause := errors.New("connection reset")
	f := &fakeFetcher{
		pages: map[string]content.Feed{"page2": {Posts: posts("c")}},
		errs:  map[string]error{"page2": cause},
	}
	p := New(f)
	p.Initialize(content.Feed{Posts: posts("a", "b"), NextPage: "page2"})

	err := p.LoadMore(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("LoadMore error = %v, want *FetchError", err)
	}
	if fe.Cursor != "page2" || !errors.Is(err, cause) {
		t.Errorf("FetchError = %+v", fe)
	}
	if got := uids(p.Posts()); !equal(got, []string{"a", "b"}) {
		t.Errorf("Posts after failure = %v", got)
	}
	if p.NextPage() != "page2" {
		t.Errorf("NextPage after failure = %q", p.NextPage())
	}

	// Retry succeeds once the CMS recovers.
	f.mu.Lock()
	delete(f.errs, "page2")
	f.mu.Unlock()
	if err := p.LoadMore(context.Background()); err != nil {
		t.Fatalf("retry LoadMore: %v", err)
	}
	if got := uids(p.Posts()); !equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Posts after retry = %v", got)
	}
}

func TestDuplicatesDroppedKeepingFirst(t *testing.T) {
	f := &fakeFetcher{pages: map[string]content.Feed{
		"page2": {Posts: []content.Post{{UID: "b", Title: "second copy"}, {UID: "c"}}},
	}}
	p := New(f)
	p.Initialize(content.Feed{Posts: []content.Post{{UID: "a"}, {UID: "b", Title: "first copy"}, {UID: "a"}}, NextPage: "page2"})
	if err := p.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	got := p.Posts()
	if !equal(uids(got), []string{"a", "b", "c"}) {
		t.Fatalf("Posts = %v", uids(got))
	}
	if got[1].Title != "first copy" {
		t.Errorf("kept %q, want first occurrence", got[1].Title)
	}
}

func TestPostsWithoutUIDAreKept(t *testing.T) {
	p := New(&fakeFetcher{})
	p.Initialize(content.Feed{Posts: []content.Post{{Title: "x"}, {Title: "y"}}})
	if n := len(p.Posts()); n != 2 {
		t.Errorf("len(Posts) = %d, want 2", n)
	}
}

func TestPostsReturnsCopy(t *testing.T) {
	p := New(&fakeFetcher{})
	p.Initialize(content.Feed{Posts: posts("a")})
	got := p.Posts()
	got[0].UID = "mutated"
	if p.Posts()[0].UID != "a" {
		t.Error("Posts exposed internal slice")
	}
}

type blockingFetcher struct {
	started chan struct{}
	release chan struct{}
	page    content.Feed
}

func (b *blockingFetcher) FetchPage(ctx context.Context, cursor string) (content.Feed, error) {
	close(b.started)
	<-b.release
	return b.page, nil
}

func TestConcurrentLoadMoreIsRejected(t *testing.T) {
	b := &blockingFetcher{
		started: make(chan struct{}),
		release: make(chan struct{}),
		page:    content.Feed{Posts: posts("b")},
	}
	p := New(b)
	p.Initialize(content.Feed{Posts: posts("a"), NextPage: "page2"})

	done := make(chan error, 1)
	go func() { done <- p.LoadMore(context.Background()) }()
	<-b.started

	if err := p.LoadMore(context.Background()); !errors.Is(err, ErrLoadInProgress) {
		t.Errorf("second LoadMore error = %v, want ErrLoadInProgress", err)
	}
	close(b.release)
	if err := <-done; err != nil {
		t.Fatalf("first LoadMore: %v", err)
	}
	if got := uids(p.Posts()); !equal(got, []string{"a", "b"}) {
		t.Errorf("Posts = %v", got)
	}
}

func TestInitializeDiscardsInFlightLoad(t *testing.T) {
	b := &blockingFetcher{
		started: make(chan struct{}),
		release: make(chan struct{}),
		page:    content.Feed{Posts: posts("stale"), NextPage: "page3"},
	}
	p := New(b)
	p.Initialize(content.Feed{Posts: posts("a"), NextPage: "page2"})

	done := make(chan error, 1)
	go func() { done <- p.LoadMore(context.Background()) }()
	<-b.started
	p.Initialize(content.Feed{Posts: posts("x")})
	close(b.release)
	if err := <-done; err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	if got := uids(p.Posts()); !equal(got, []string{"x"}) {
		t.Errorf("Posts = %v, want [x]", got)
	}
	if p.HasMore() {
		t.Error("stale cursor should not be applied")
	}
}

func TestCollect(t *testing.T) {
	f := &fakeFetcher{pages: map[string]content.Feed{
		"p2": {Posts: posts("c", "d"), NextPage: "p3"},
		"p3": {Posts: posts("e")},
	}}
	all, err := Collect(context.Background(), f, content.Feed{Posts: posts("a", "b"), NextPage: "p2"})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if got := uids(all); !equal(got, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("Collect = %v", got)
	}
}

func TestCollectStopsOnError(t *testing.T) {
	f := &fakeFetcher{errs: map[string]error{"p2": errors.New("boom")}}
	_, err := Collect(context.Background(), f, content.Feed{Posts: posts("a"), NextPage: "p2"})
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("Collect error = %v, want *FetchError", err)
	}
}

func TestCollectDetectsCursorLoop(t *testing.T) {
	f := &fakeFetcher{pages: map[string]content.Feed{
		"p2": {Posts: posts("b"), NextPage: "p2"},
	}}
	_, err := Collect(context.Background(), f, content.Feed{Posts: posts("a"), NextPage: "p2"})
	if !errors.Is(err, ErrCursorLoop) {
		t.Fatalf("Collect error = %v, want ErrCursorLoop", err)
	}
}
