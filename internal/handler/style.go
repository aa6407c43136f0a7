package handler

import (
	"html/template"
	"log/slog"
	"net/http"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
  <head>
    <title>{{.Title}}</title>
  </head>
  <body>
    <h1>{{.Title}}</h1>
    <p>Welcome to {{.Title}}</p>
  </body>
</html>
`))

// StyleHandler serves the placeholder index page
type StyleHandler struct {
	title string
}

// NewStyleHandler creates a new style handler
func NewStyleHandler() *StyleHandler {
	return &StyleHandler{title: "Festival"}
}

// RegisterRoutes mounts GET /
func (h *StyleHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Index)
}

// Index handles GET /
func (h *StyleHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct{ Title string }{h.title}); err != nil {
		slog.Error("failed to render index", slog.String("error", err.Error()))
	}
}
