package prismic

import (
	"bytes"
	"encoding/json"
	"net/url"
	"time"

	"github.com/eringen/spacetraveling/content"
	"github.com/eringen/spacetraveling/richtext"
)

// Prismic timestamps look like 2021-03-15T19:25:28+0000.
const dateLayout = "2006-01-02T15:04:05-0700"

type apiResponse struct {
	Refs []struct {
		ID          string `json:"id"`
		Ref         string `json:"ref"`
		Label       string `json:"label"`
		IsMasterRef bool   `json:"isMasterRef"`
	} `json:"refs"`
}

type searchResponse struct {
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	NextPage   *string    `json:"next_page"`
	Results    []document `json:"results"`
}

func (r searchResponse) feed() content.Feed {
	f := content.Feed{Posts: make([]content.Post, 0, len(r.Results))}
	for _, d := range r.Results {
		f.Posts = append(f.Posts, d.post())
	}
	if r.NextPage != nil {
		f.NextPage = stripToken(*r.NextPage)
	}
	return f
}

// stripToken removes access_token from a cursor before it reaches a browser.
// FetchPage adds it back.
func stripToken(cursor string) string {
	u, err := url.Parse(cursor)
	if err != nil {
		return cursor
	}
	q := u.Query()
	if q.Get("access_token") == "" {
		return cursor
	}
	q.Del("access_token")
	u.RawQuery = q.Encode()
	return u.String()
}

type document struct {
	ID                   string   `json:"id"`
	UID                  string   `json:"uid"`
	Type                 string   `json:"type"`
	FirstPublicationDate *string  `json:"first_publication_date"`
	LastPublicationDate  *string  `json:"last_publication_date"`
	Data                 postData `json:"data"`
}

type postData struct {
	Title    text `json:"title"`
	Subtitle text `json:"subtitle"`
	Author   text `json:"author"`
	Banner   struct {
		URL string `json:"url"`
	} `json:"banner"`
	Content []struct {
		Heading text              `json:"heading"`
		Body    richtext.RichText `json:"body"`
	} `json:"content"`
}

func (d document) post() content.Post {
	p := content.Post{
		UID:                  d.UID,
		FirstPublicationDate: parseDate(d.FirstPublicationDate),
		LastPublicationDate:  parseDate(d.LastPublicationDate),
		Title:                string(d.Data.Title),
		Subtitle:             string(d.Data.Subtitle),
		Author:               string(d.Data.Author),
		BannerURL:            d.Data.Banner.URL,
	}
	for _, s := range d.Data.Content {
		p.Content = append(p.Content, content.Section{Heading: string(s.Heading), Body: s.Body})
	}
	return p
}

func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t
		}
	}
	return nil
}

// text decodes either a key-text string or a title/rich-text field.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	var rt richtext.RichText
	if err := json.Unmarshal(b, &rt); err != nil {
		return err
	}
	*t = text(richtext.AsText(rt))
	return nil
}
