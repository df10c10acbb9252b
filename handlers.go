package spacetraveling

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/spacetraveling/content"
	"github.com/eringen/spacetraveling/feed"
	"github.com/eringen/spacetraveling/prismic"
	"github.com/eringen/spacetraveling/views"
)

func (a *App) handleHome(c echo.Context) error {
	page, err := a.homePage(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(page))
}

func (a *App) homePage(ctx context.Context) (views.HomePage, error) {
	first, err := a.Fetcher.QueryByType(ctx, a.Config.DocumentType, content.QueryOptions{PageSize: a.Config.PageSize})
	if err != nil {
		return views.HomePage{}, fmt.Errorf("query posts: %w", err)
	}
	p := feed.New(a.Fetcher)
	p.Initialize(first)
	return views.HomePage{
		Site:     a.site(),
		Posts:    p.Posts(),
		NextPage: p.NextPage(),
		HasMore:  p.HasMore(),
	}, nil
}

// handleMorePosts follows a continuation cursor on behalf of the browser.
// HTMX and ?partial=1 requests get an HTML fragment; everything else gets
// the listing JSON.
func (a *App) handleMorePosts(c echo.Context) error {
	if !a.moreLimiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests. Try again later.")
	}

	cursor := c.QueryParam("cursor")
	partial := c.QueryParam("partial") != "" || c.Request().Header.Get("HX-Request") == "true"

	p := feed.New(a.Fetcher)
	p.Initialize(content.Feed{NextPage: cursor})
	err := p.LoadMore(c.Request().Context())
	switch {
	case errors.Is(err, feed.ErrExhausted):
		return echo.NewHTTPError(http.StatusBadRequest, "cursor is required")
	case errors.Is(err, prismic.ErrForeignCursor):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid cursor")
	case err != nil:
		a.Log.Warnw("load more failed", "cursor", cursor, "error", err)
		if partial {
			return Render(c, a.Views.MorePosts(views.MorePostsPage{Site: a.site(), Failed: true, Cursor: cursor}))
		}
		return echo.NewHTTPError(http.StatusBadGateway, "failed to load posts")
	}

	if partial {
		return Render(c, a.Views.MorePosts(views.MorePostsPage{
			Site:     a.site(),
			Posts:    p.Posts(),
			NextPage: p.NextPage(),
			HasMore:  p.HasMore(),
		}))
	}
	return c.JSON(http.StatusOK, newPostsPagination(p.Posts(), p.NextPage()))
}

func (a *App) handlePost(c echo.Context) error {
	page, err := a.postPage(c.Request().Context(), c.Param("uid"))
	if errors.Is(err, content.ErrNotFound) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
	}
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(page))
}

func (a *App) postPage(ctx context.Context, uid string) (views.PostPage, error) {
	post, err := a.Fetcher.GetByUID(ctx, a.Config.DocumentType, uid)
	if err != nil {
		return views.PostPage{}, err
	}
	all, err := a.Cache.Posts(ctx)
	if err != nil {
		return views.PostPage{}, fmt.Errorf("collect feed: %w", err)
	}
	return a.newPostPage(post, all), nil
}

func (a *App) newPostPage(post content.Post, all []content.Post) views.PostPage {
	return views.PostPage{
		Site:           a.site(),
		Post:           post,
		ReadingTime:    content.EstimateReadingTime(post.Content),
		Neighbors:      content.ResolveNeighbors(content.Refs(all), post.UID),
		StructuredData: blogPostingData(post, a.Config),
	}
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeXML(c.Response(), a.newSitemap(posts))
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeXML(c.Response(), a.newRSS(posts))
}

func handleFavicon(c echo.Context) error {
	return c.Blob(http.StatusOK, "image/svg+xml", mustAsset("favicon.svg"))
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, a.robotsTxt())
}

func (a *App) robotsTxt() string {
	return "User-agent: *\nAllow: /\n\nSitemap: " + BuildURL(a.Config.URL) + "sitemap.xml\n"
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 && !isJSONRoute(c) {
		a.Log.Errorw("server error", "uri", c.Request().RequestURI, "error", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func isJSONRoute(c echo.Context) bool {
	return c.Path() == "/posts/"
}

// postsPagination mirrors the CMS listing body: results plus next_page,
// which is null when there are no more pages.
type postsPagination struct {
	NextPage *string         `json:"next_page"`
	Results  []paginatedPost `json:"results"`
}

type paginatedPost struct {
	UID                  string     `json:"uid"`
	FirstPublicationDate *time.Time `json:"first_publication_date"`
	Data                 postFields `json:"data"`
}

type postFields struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Author   string `json:"author"`
}

func newPostsPagination(posts []content.Post, next string) postsPagination {
	out := postsPagination{Results: make([]paginatedPost, 0, len(posts))}
	if content.HasNextPage(next) {
		out.NextPage = &next
	}
	for _, p := range posts {
		out.Results = append(out.Results, paginatedPost{
			UID:                  p.UID,
			FirstPublicationDate: p.FirstPublicationDate,
			Data:                 postFields{Title: p.Title, Subtitle: p.Subtitle, Author: p.Author},
		})
	}
	return out
}
