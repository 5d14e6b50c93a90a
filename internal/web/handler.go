package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed assets/*
var embeddedAssets embed.FS

// Config captures the settings for the browser UI.
type Config struct {
	Title string
}

// NewHandler builds the HTTP handler serving the UI shell and its
// static assets.
func NewHandler(cfg Config) (http.Handler, error) {
	title := cfg.Title
	if title == "" {
		title = "codelens"
	}
	assets, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(assets))))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := IndexPage(title).Render(r.Context(), w); err != nil {
			http.Error(w, "render error", http.StatusInternalServerError)
		}
	})
	return mux, nil
}
