package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// RenderTemplate executes a named embedded template with the given data.
func RenderTemplate(name string, data any) (string, error) {
	tmpl := templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("mail template %q not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render mail template %q: %w", name, err)
	}
	return buf.String(), nil
}
