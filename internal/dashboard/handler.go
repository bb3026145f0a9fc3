// Package dashboard serves the embedded single-page wizard UI.
package dashboard

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

// NewHandler returns a handler serving the wizard frontend.
func NewHandler() http.Handler {
	staticFS, _ := fs.Sub(staticFiles, "static")
	return http.FileServer(http.FS(staticFS))
}
