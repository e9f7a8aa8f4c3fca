// Package site serves the embedded quiz frontend.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded frontend routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Serve the embedded quiz page at root /
	files := http.FileServer(FS())
	mux.Handle("/", files)
}
