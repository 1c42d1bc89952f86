// Package templates embeds the server-rendered pages.
package templates

import (
	"embed"
	"html/template"
	"strings"
	"time"
)

//go:embed html/*.html
var files embed.FS

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	},
	"excerpt": func(s string, n int) string {
		runes := []rune(s)
		if len(runes) <= n {
			return s
		}
		return strings.TrimSpace(string(runes[:n])) + "…"
	},
	"add": func(a, b int) int {
		return a + b
	},
}

// Load parses every page. Pages are addressed by file name, e.g. "index.html".
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "html/*.html")
}
