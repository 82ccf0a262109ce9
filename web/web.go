// Package web embeds the HTML template and static assets of the lookup page.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"path"

	"github.com/pcvolkmer/ags-example/app/models"
	"github.com/pcvolkmer/ags-example/internal/matcher"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

// IndexTemplate is the name of the lookup page template.
const IndexTemplate = "index.html"

// IndexPage is the data of the lookup page.
type IndexPage struct {
	Query            string
	State            string
	MultipleAssigned models.ZipGroups
	Entries          []models.Entry
	Suggestions      []matcher.Suggestion
}

// Templates parses the embedded templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}).ParseFS(templateFS, "templates/*.html")
}

// Asset returns the content of an embedded asset, e.g. "script.js".
func Asset(name string) ([]byte, error) {
	return fs.ReadFile(assetFS, path.Join("assets", path.Clean("/"+name)))
}

// ContentType returns the media type served for an asset name, or "" when
// the extension has no fixed type.
func ContentType(name string) string {
	switch path.Ext(name) {
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	}
	return ""
}
