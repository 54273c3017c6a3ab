// Package templates holds the server rendered pages.
package templates

import (
	"embed"
	"html/template"

	"supasocial/internal/utils"
)

//go:embed *.tmpl
var files embed.FS

var funcs = template.FuncMap{
	"excerpt":  utils.Excerpt,
	"initials": utils.Initials,
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	// dict builds the argument of a nested template call
	"dict": func(kv ...any) map[string]any {
		m := make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			if k, ok := kv[i].(string); ok {
				m[k] = kv[i+1]
			}
		}
		return m
	},
}

// New parses every page. It panics on a broken template, which can only
// happen at build time.
func New() *template.Template {
	return template.Must(template.New("supasocial").Funcs(funcs).ParseFS(files, "*.tmpl"))
}
