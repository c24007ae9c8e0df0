package httpapi

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed web
var webFS embed.FS

func (s *HTTPServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := webFS.ReadFile("web/views/index.html")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func publicHandler() http.Handler {
	sub, err := fs.Sub(webFS, "web/public")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/public/", http.FileServer(http.FS(sub)))
}
