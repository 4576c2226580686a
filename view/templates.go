package view

import (
	"embed"
	"html/template"
	"io/fs"
)

// Template names passed to the gin HTML renderer
const (
	TemplateLanding     = "landing"
	TemplateCollections = "collections"
	TemplateNotFound    = "notfound"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

// Templates parses every page and fragment template
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.tmpl")
}

// Assets is the static file tree served under AssetsPath
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
