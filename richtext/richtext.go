// Package richtext renders Prismic structured text as HTML or plain text.
package richtext

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/a-h/templ"
)

// RichText is an ordered list of structured-text blocks.
type RichText []Block

// Block is one paragraph-level element: a heading, paragraph, list item,
// preformatted run, image or embed.
type Block struct {
	Type       string      `json:"type"`
	Text       string      `json:"text"`
	Spans      []Span      `json:"spans"`
	URL        string      `json:"url,omitempty"`
	Alt        string      `json:"alt,omitempty"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
	Oembed     *Oembed     `json:"oembed,omitempty"`
}

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Oembed struct {
	EmbedURL     string `json:"embed_url"`
	Title        string `json:"title"`
	ProviderName string `json:"provider_name"`
}

// Span marks up Text[Start:End]. Offsets count UTF-16 code units.
type Span struct {
	Start int      `json:"start"`
	End   int      `json:"end"`
	Type  string   `json:"type"`
	Data  SpanData `json:"data"`
}

// SpanData carries hyperlink targets and label names.
type SpanData struct {
	LinkType string `json:"link_type"`
	URL      string `json:"url"`
	Target   string `json:"target"`
	ID       string `json:"id"`
	UID      string `json:"uid"`
	Type     string `json:"type"`
	Label    string `json:"label"`
}

// LinkResolver maps a hyperlink span to an href.
type LinkResolver func(SpanData) string

// DefaultLinkResolver sends document links to the post page and leaves web
// and media links untouched.
func DefaultLinkResolver(d SpanData) string {
	if d.LinkType == "Document" && d.UID != "" {
		return "/post/" + url.PathEscape(d.UID) + "/"
	}
	return d.URL
}

var headingTags = map[string]string{
	"heading1": "h1",
	"heading2": "h2",
	"heading3": "h3",
	"heading4": "h4",
	"heading5": "h5",
	"heading6": "h6",
}

var spanTags = map[string]string{
	"strong":    "strong",
	"em":        "em",
	"hyperlink": "a",
	"label":     "span",
}

// AsText returns the plain text of rt with blocks joined by a single space.
func AsText(rt RichText) string {
	parts := make([]string, len(rt))
	for i, b := range rt {
		parts[i] = b.Text
	}
	return strings.Join(parts, " ")
}

// AsHTML returns the HTML for rt.
func AsHTML(rt RichText, resolve LinkResolver) string {
	var buf bytes.Buffer
	Render(&buf, rt, resolve)
	return buf.String()
}

// Component returns a templ.Component that renders rt with the default resolver.
func Component(rt RichText) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		Render(&buf, rt, nil)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Render writes the HTML representation of rt to buf. A nil resolver means
// DefaultLinkResolver.
func Render(buf *bytes.Buffer, rt RichText, resolve LinkResolver) {
	if resolve == nil {
		resolve = DefaultLinkResolver
	}
	inList := false
	inOrderedList := false

	flushList := func() {
		if inList {
			buf.WriteString("</ul>")
			inList = false
		}
	}
	flushOrderedList := func() {
		if inOrderedList {
			buf.WriteString("</ol>")
			inOrderedList = false
		}
	}

	for _, b := range rt {
		switch b.Type {
		case "list-item":
			flushOrderedList()
			if !inList {
				buf.WriteString("<ul>")
				inList = true
			}
			buf.WriteString("<li>")
			writeSpans(buf, b.Text, b.Spans, resolve)
			buf.WriteString("</li>")
			continue
		case "o-list-item":
			flushList()
			if !inOrderedList {
				buf.WriteString("<ol>")
				inOrderedList = true
			}
			buf.WriteString("<li>")
			writeSpans(buf, b.Text, b.Spans, resolve)
			buf.WriteString("</li>")
			continue
		}

		flushList()
		flushOrderedList()

		if tag, ok := headingTags[b.Type]; ok {
			buf.WriteString("<" + tag + ">")
			writeSpans(buf, b.Text, b.Spans, resolve)
			buf.WriteString("</" + tag + ">")
			continue
		}

		switch b.Type {
		case "paragraph":
			buf.WriteString("<p>")
			writeSpans(buf, b.Text, b.Spans, resolve)
			buf.WriteString("</p>")
		case "preformatted":
			buf.WriteString("<pre>")
			writeSpans(buf, b.Text, b.Spans, resolve)
			buf.WriteString("</pre>")
		case "image":
			writeImage(buf, b)
		case "embed":
			writeEmbed(buf, b)
		}
	}
	flushList()
	flushOrderedList()
}

func writeImage(buf *bytes.Buffer, b Block) {
	src := SafeURL(b.URL)
	if src == "" {
		return
	}
	buf.WriteString(`<p class="block-img"><img src="` + src + `" alt="` + html.EscapeString(b.Alt) + `"`)
	if b.Dimensions != nil && b.Dimensions.Width > 0 && b.Dimensions.Height > 0 {
		buf.WriteString(` width="` + strconv.Itoa(b.Dimensions.Width) + `" height="` + strconv.Itoa(b.Dimensions.Height) + `"`)
	}
	buf.WriteString(` loading="lazy" decoding="async"/></p>`)
}

func writeEmbed(buf *bytes.Buffer, b Block) {
	if b.Oembed == nil {
		return
	}
	href := SafeURL(b.Oembed.EmbedURL)
	if href == "" {
		return
	}
	label := b.Oembed.Title
	if label == "" {
		label = b.Oembed.EmbedURL
	}
	buf.WriteString(`<div data-oembed="` + href + `"><a href="` + href + `" target="_blank" rel="noopener noreferrer">`)
	buf.WriteString(html.EscapeString(label))
	buf.WriteString("</a></div>")
}

// writeSpans writes text with its spans applied. Spans that overlap without
// nesting are closed and reopened around the boundary so tags stay balanced.
func writeSpans(buf *bytes.Buffer, text string, spans []Span, resolve LinkResolver) {
	units := utf16.Encode([]rune(text))
	n := len(units)

	var valid []Span
	for _, s := range spans {
		if _, ok := spanTags[s.Type]; !ok {
			continue
		}
		if s.Start < 0 {
			s.Start = 0
		}
		if s.End > n {
			s.End = n
		}
		if s.Start >= s.End {
			continue
		}
		valid = append(valid, s)
	}
	// Outer spans open first when two start at the same offset.
	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Start != valid[j].Start {
			return valid[i].Start < valid[j].Start
		}
		return valid[i].End > valid[j].End
	})

	bounds := []int{0, n}
	for _, s := range valid {
		bounds = append(bounds, s.Start, s.End)
	}
	sort.Ints(bounds)
	uniq := bounds[:1]
	for _, b := range bounds[1:] {
		if b != uniq[len(uniq)-1] {
			uniq = append(uniq, b)
		}
	}

	var stack []Span
	next := 0
	for i, pos := range uniq {
		stack = closeSpansAt(buf, stack, pos, resolve)
		for next < len(valid) && valid[next].Start == pos {
			openSpan(buf, valid[next], resolve)
			stack = append(stack, valid[next])
			next++
		}
		if i+1 < len(uniq) {
			writeText(buf, string(utf16.Decode(units[pos:uniq[i+1]])))
		}
	}
	for j := len(stack) - 1; j >= 0; j-- {
		closeSpan(buf, stack[j])
	}
}

func closeSpansAt(buf *bytes.Buffer, stack []Span, pos int, resolve LinkResolver) []Span {
	if !endsAt(stack, pos) {
		return stack
	}
	var reopen []Span
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		closeSpan(buf, top)
		if top.End != pos {
			reopen = append(reopen, top)
		}
		if !endsAt(stack, pos) {
			break
		}
	}
	for j := len(reopen) - 1; j >= 0; j-- {
		openSpan(buf, reopen[j], resolve)
		stack = append(stack, reopen[j])
	}
	return stack
}

func endsAt(stack []Span, pos int) bool {
	for _, s := range stack {
		if s.End == pos {
			return true
		}
	}
	return false
}

func openSpan(buf *bytes.Buffer, s Span, resolve LinkResolver) {
	switch s.Type {
	case "hyperlink":
		href := SafeURL(resolve(s.Data))
		if href == "" {
			buf.WriteString("<a>")
			return
		}
		buf.WriteString(`<a href="` + href + `"`)
		if s.Data.Target != "" {
			buf.WriteString(` target="` + html.EscapeString(s.Data.Target) + `" rel="noopener noreferrer"`)
		}
		buf.WriteString(">")
	case "label":
		buf.WriteString(`<span class="` + html.EscapeString(s.Data.Label) + `">`)
	default:
		buf.WriteString("<" + spanTags[s.Type] + ">")
	}
}

func closeSpan(buf *bytes.Buffer, s Span) {
	buf.WriteString("</" + spanTags[s.Type] + ">")
}

func writeText(buf *bytes.Buffer, s string) {
	buf.WriteString(strings.ReplaceAll(html.EscapeString(s), "\n", "<br />"))
}

// SafeURL validates and sanitizes a URL for use in HTML attributes.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
