package spacetraveling

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
)

// BuildOptions controls a static export.
type BuildOptions struct {
	OutDir string // Output directory (default "dist")

	// Paths caps how many post pages are pre-rendered, newest first.
	// Zero or less renders every post.
	Paths int

	// Fallback writes post/fallback/index.html with the loading view, for
	// hosts that serve it while an un-rendered post is generated.
	Fallback bool
}

// BuildResult summarizes a finished export.
type BuildResult struct {
	Posts    int      // posts in the feed
	Rendered int      // post pages written
	Files    []string // every file written, relative to OutDir
}

// Build renders the site to static files: the home page, one page per post,
// the not-found page, the RSS feed, the sitemap, and the bundled assets.
func (a *App) Build(ctx context.Context, opts BuildOptions) (BuildResult, error) {
	var res BuildResult
	if err := a.Setup(); err != nil {
		return res, err
	}
	if opts.OutDir == "" {
		opts.OutDir = "dist"
	}

	write := func(rel string, cmp templ.Component) error {
		if err := renderFile(ctx, filepath.Join(opts.OutDir, filepath.FromSlash(rel)), cmp); err != nil {
			return fmt.Errorf("write %s: %w", rel, err)
		}
		res.Files = append(res.Files, rel)
		return nil
	}

	home, err := a.homePage(ctx)
	if err != nil {
		return res, err
	}
	if err := write("index.html", a.Views.Home(home)); err != nil {
		return res, err
	}

	all, err := a.collectFeed(ctx)
	if err != nil {
		return res, fmt.Errorf("collect feed: %w", err)
	}
	res.Posts = len(all)

	for i, post := range all {
		if opts.Paths > 0 && i >= opts.Paths {
			break
		}
		if !safeUID(post.UID) {
			a.Log.Warnw("skipping post with unusable uid", "uid", post.UID, "title", post.Title)
			continue
		}
		if err := write("post/"+post.UID+"/index.html", a.Views.Post(a.newPostPage(post, all))); err != nil {
			return res, err
		}
		res.Rendered++
	}

	if err := write("404.html", a.Views.NotFound(a.site())); err != nil {
		return res, err
	}
	if opts.Fallback {
		if err := write("post/fallback/index.html", a.Views.Loading(a.site())); err != nil {
			return res, err
		}
	}

	files := map[string]interface{}{
		"feed.xml":    a.newRSS(all),
		"sitemap.xml": a.newSitemap(all),
	}
	for _, name := range []string{"feed.xml", "sitemap.xml"} {
		if err := a.writeFile(opts.OutDir, name, func(w io.Writer) error { return writeXML(w, files[name]) }); err != nil {
			return res, err
		}
		res.Files = append(res.Files, name)
	}
	if err := a.writeFile(opts.OutDir, "robots.txt", func(w io.Writer) error {
		_, err := io.WriteString(w, a.robotsTxt())
		return err
	}); err != nil {
		return res, err
	}
	res.Files = append(res.Files, "robots.txt")

	for _, name := range embeddedAssetNames() {
		rel := "public/" + name
		if err := a.writeFile(opts.OutDir, rel, func(w io.Writer) error {
			_, err := w.Write(mustAsset(name))
			return err
		}); err != nil {
			return res, err
		}
		res.Files = append(res.Files, rel)
	}

	a.Log.Infow("build finished", "out", opts.OutDir, "posts", res.Posts, "rendered", res.Rendered, "files", len(res.Files))
	return res, nil
}

func (a *App) writeFile(outDir, rel string, fill func(io.Writer) error) error {
	if err := createFile(filepath.Join(outDir, filepath.FromSlash(rel)), fill); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

// safeUID reports whether uid can be used as a single path segment.
func safeUID(uid string) bool {
	return uid != "" && uid != "." && uid != ".." && !strings.ContainsAny(uid, `/\`)
}
