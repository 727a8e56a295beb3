// Package web bundles the dashboard templates and stylesheet into the binary.
package web

import "embed"

var (
	// Templates holds layouts, pages and partials parsed by internal/view.
	//go:embed templates/layouts/*.html templates/pages/*.html templates/partials/*.html
	Templates embed.FS

	// Static holds assets served under /static/.
	//go:embed static/css/*.css
	Static embed.FS
)
