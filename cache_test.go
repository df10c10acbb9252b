package spacetraveling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eringen/spacetraveling/content"
)

func countingLoader(calls *int, err *error) FeedLoader {
	return func(ctx context.Context) ([]content.Post, error) {
		*calls++
		if *err != nil {
			return nil, *err
		}
		return []content.Post{{UID: "a"}, {UID: "b"}}, nil
	}
}

func TestFeedCacheDisabled(t *testing.T) {
	var calls int
	var err error
	c := NewFeedCache(countingLoader(&calls, &err), 0)
	for i := 0; i < 3; i++ {
		if _, err := c.Posts(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestFeedCacheTTL(t *testing.T) {
	var calls int
	var err error
	c := NewFeedCache(countingLoader(&calls, &err), 100*time.Millisecond)
	ctx := context.Background()

	posts, _ := c.Posts(ctx)
	c.Posts(ctx)
	if calls != 1 || len(posts) != 2 {
		t.Fatalf("calls = %d posts = %d", calls, len(posts))
	}

	time.Sleep(150 * time.Millisecond)
	c.Posts(ctx)
	if calls != 2 {
		t.Fatalf("calls after expiry = %d, want 2", calls)
	}

	c.Invalidate()
	c.Posts(ctx)
	if calls != 3 {
		t.Fatalf("calls after invalidate = %d, want 3", calls)
	}
}

func TestFeedCacheDoesNotCacheErrors(t *testing.T) {
	var calls int
	err := errors.New("cms down")
	c := NewFeedCache(countingLoader(&calls, &err), time.Minute)
	ctx := context.Background()

	if _, got := c.Posts(ctx); got == nil {
		t.Fatal("expected error")
	}
	err = nil
	posts, got := c.Posts(ctx)
	if got != nil || len(posts) != 2 {
		t.Fatalf("posts = %v err = %v", posts, got)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}
