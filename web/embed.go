// Package web provides embedded static assets (item images, CSS) for the
// storefront. In development, page styling loads from CDN; product images
// dropped into web/static/items/ are embedded here and served at /static/.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree. In Docker builds, this
// includes the catalog's product images; in local development it may be
// nearly empty.
//
//go:embed all:static
var StaticFS embed.FS
