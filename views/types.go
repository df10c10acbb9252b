package views

import "github.com/eringen/spacetraveling/content"

// SiteConfig holds the site-wide values every page template reads.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
	Locale      string // BCP 47 tag, e.g. "pt-BR"
}

// HomePage is the first page of the listing.
type HomePage struct {
	Site     SiteConfig
	Posts    []content.Post
	NextPage string
	HasMore  bool
}

func (p HomePage) PageTitle() string { return p.Site.Name }

// MorePostsPage is the fragment appended by "load more". When Failed is set
// the fragment offers a retry against the same Cursor instead of posts.
type MorePostsPage struct {
	Site     SiteConfig
	Posts    []content.Post
	NextPage string
	HasMore  bool
	Failed   bool
	Cursor   string
}

// PostPage is a single post with its reading time and neighbors.
type PostPage struct {
	Site        SiteConfig
	Post        content.Post
	ReadingTime int
	Neighbors   content.NeighborPair

	// StructuredData is emitted as a JSON-LD script when set.
	StructuredData map[string]interface{}
}

func (p PostPage) PageTitle() string {
	if p.Post.Title == "" {
		return p.Site.Name
	}
	return p.Post.Title + " | " + p.Site.Name
}

// StatusPage backs the loading, not-found and error pages.
type StatusPage struct {
	Site    SiteConfig
	Title   string
	Message string
}

func (p StatusPage) PageTitle() string { return p.Title + " | " + p.Site.Name }
