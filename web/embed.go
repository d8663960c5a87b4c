// Package web embeds the site's static assets into the binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed public
var assets embed.FS

// Public returns the asset tree rooted at the public directory, so
// "index.html" and "css/styles.css" resolve directly.
func Public() fs.FS {
	sub, err := fs.Sub(assets, "public")
	if err != nil {
		// fs.Sub only fails on an invalid path, and "public" is a literal.
		panic(err)
	}
	return sub
}
