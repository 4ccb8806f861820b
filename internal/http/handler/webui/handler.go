// Package webui serves the application pages. The pages are static
// shells; all data flows through the /api endpoints.
package webui

import (
	"embed"
	"net/http"
)

//go:embed pages/*.html
var pagesFS embed.FS

type Handler struct {
	mux *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(authenticate func(http.Handler) http.Handler) *Handler {
	h := &Handler{
		mux: http.NewServeMux(),
	}

	h.mux.Handle("GET /{$}", authenticate(servePage("todo.html")))
	h.mux.Handle("GET /login", servePage("login.html"))
	h.mux.Handle("GET /register", servePage("register.html"))

	return h
}

func servePage(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, err := pagesFS.ReadFile("pages/" + name)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	})
}

var _ http.Handler = &Handler{}
