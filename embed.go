package spacetraveling

import (
	"embed"
	"io/fs"
	"sort"
)

// EmbeddedAssets contains static assets shipped with the site:
// loadmore.js, style.css, and the logo and icon SVGs.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

func embeddedAssetNames() []string {
	entries, err := fs.ReadDir(EmbeddedAssets, "embedded")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func mustAsset(name string) []byte {
	b, err := EmbeddedAssets.ReadFile("embedded/" + name)
	if err != nil {
		panic(err)
	}
	return b
}
