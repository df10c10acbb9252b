package spacetraveling

import (
	"context"

	"github.com/eringen/spacetraveling/content"
	"github.com/eringen/spacetraveling/feed"
)

// ContentFetcher is the CMS boundary. The prismic.Client implements it.
type ContentFetcher interface {
	feed.Fetcher
	QueryByType(ctx context.Context, docType string, opts content.QueryOptions) (content.Feed, error)
	GetByUID(ctx context.Context, docType, uid string) (content.Post, error)
}
