package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates static
var files embed.FS

// Templates parses the page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.html")
}

// Static serves the stylesheet and script.
func Static() http.FileSystem {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
