// Package web holds the server-rendered pages for the public site and
// the admin panel shell.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

func LoadTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// PageData is what every template receives; Head carries the tracking
// tags built by the injector.
type PageData struct {
	Brand string
	Title string
	Head  template.HTML
}
