package render

import (
	"embed"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("newtab.html").Funcs(template.FuncMap{
		"join": strings.Join,
		"widthOptions": func() []string {
			return []string{"auto", "800", "1000", "1200", "1400"}
		},
	}).ParseFS(templateFS, "templates/newtab.html"),
)

// Render writes the new-tab page as HTML
func Render(w io.Writer, p Page) error {
	return pageTemplate.Execute(w, p)
}
