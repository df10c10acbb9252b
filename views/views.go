// Package views holds the default page templates. Each page is exposed as a
// templ.Component so callers render it the same way as any templ view.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/goodsign/monday"
	"golang.org/x/text/language"

	"github.com/eringen/spacetraveling/richtext"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"formatDate":   FormatDate,
	"formatEdited": FormatEdited,
	"htmlLang":     htmlLang,
	"moreURL":      MoreURL,
	"postURL":      PostURL,
	"richText":     richText,
}).ParseFS(files, "templates/*.html"))

func component(name string, data interface{}) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return templates.ExecuteTemplate(w, name, data)
	})
}

func Home(p HomePage) templ.Component           { return component("home", p) }
func MorePosts(p MorePostsPage) templ.Component { return component("more", p) }
func Post(p PostPage) templ.Component           { return component("post", p) }

// Loading is the placeholder served for posts that were not pre-rendered.
func Loading(site SiteConfig) templ.Component {
	return component("status", StatusPage{Site: site, Title: "Carregando", Message: "Carregando..."})
}

func NotFound(site SiteConfig) templ.Component {
	return component("status", StatusPage{Site: site, Title: "Página não encontrada", Message: "O post que você procura não existe."})
}

func ServerError(site SiteConfig) templ.Component {
	return component("status", StatusPage{Site: site, Title: "Erro", Message: "Algo deu errado. Tente novamente em instantes."})
}

// MoreURL is the load-more endpoint for a continuation cursor.
func MoreURL(cursor string) string {
	return "/posts/?partial=1&cursor=" + url.QueryEscape(cursor)
}

// PostURL is the canonical path of a post.
func PostURL(uid string) string {
	return "/post/" + url.PathEscape(uid) + "/"
}

// FormatDate renders a publication date as "15 mar 2021" in the site locale.
// A nil date (an unpublished draft) renders empty.
func FormatDate(t *time.Time, locale string) string {
	if t == nil {
		return ""
	}
	return monday.Format(*t, "02 Jan 2006", localeOf(locale))
}

// FormatEdited renders the last-edit line shown under a post title.
func FormatEdited(t *time.Time, locale string) string {
	if t == nil {
		return ""
	}
	return monday.Format(*t, "* editado em 02 de January, às 15:04", localeOf(locale))
}

func localeOf(tag string) monday.Locale {
	t, err := language.Parse(tag)
	if err != nil {
		return monday.LocaleEnUS
	}
	return monday.Locale(strings.ReplaceAll(t.String(), "-", "_"))
}

func htmlLang(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return "en"
	}
	return t.String()
}

func richText(rt richtext.RichText) template.HTML {
	return template.HTML(richtext.AsHTML(rt, nil))
}
