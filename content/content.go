// Package content holds the post and feed types shared by the CMS client,
// the paginator and the page views, plus the pure helpers computed from them.
package content

import (
	"errors"
	"strings"
	"time"

	"github.com/eringen/spacetraveling/richtext"
)

// ErrNotFound is returned when the CMS has no post for a requested uid.
var ErrNotFound = errors.New("content: post not found")

// Post is a single CMS document of the posts type.
type Post struct {
	UID                  string
	FirstPublicationDate *time.Time
	LastPublicationDate  *time.Time
	Title                string
	Subtitle             string
	Author               string
	BannerURL            string
	Content              []Section
}

// Section is one heading/body block of a post.
type Section struct {
	Heading string
	Body    richtext.RichText
}

// Feed is one page of posts in CMS order. NextPage is the opaque
// continuation token; empty means there are no further pages.
type Feed struct {
	Posts    []Post
	NextPage string
}

// QueryOptions controls a listing query. Page is 1-based.
type QueryOptions struct {
	PageSize int
	Page     int
}

// PostRef is the minimal link target used for prev/next navigation.
type PostRef struct {
	UID   string
	Title string
}

// Ref returns the navigation reference for p.
func (p Post) Ref() PostRef {
	return PostRef{UID: p.UID, Title: p.Title}
}

// Refs projects posts onto their navigation references, keeping order.
func Refs(posts []Post) []PostRef {
	refs := make([]PostRef, len(posts))
	for i, p := range posts {
		refs[i] = p.Ref()
	}
	return refs
}

// HasNextPage reports whether a continuation token points at another page.
// A null token decodes to "", and an empty or blank token is treated the same.
func HasNextPage(token string) bool {
	return strings.TrimSpace(token) != ""
}
