package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dcallow/storefront/internal/middleware"
	"github.com/dcallow/storefront/internal/session"
)

//go:embed templates
var templatesFS embed.FS

// Renderer renders a content template inside the shared layout. Pending flash
// messages are drained into every render, and the authenticated user (if any)
// is exposed to the layout for the nav bar.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["Flashes"] = session.PopFlashes(w, r)
	if user, ok := middleware.UserFrom(r.Context()); ok {
		data["CurrentUser"] = user
	}

	layout, err := templatesFS.ReadFile("templates/layout.html")
	if err != nil {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	content, err := templatesFS.ReadFile("templates/" + name)
	if err != nil {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	t := template.Must(template.New("layout").Parse(string(layout)))
	t = template.Must(t.Parse(string(content)))
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("template execute", "template", name, "error", err)
	}
}

// Field describes one input of a rendered form. The generic form template
// walks the list, so every page form shares templates/form.html.
type Field struct {
	Name  string
	Label string
	Type  string // text, email, password, number, checkbox, textarea
	Value string
	Error string
}

// applyErrors copies per-field validation messages onto the field list.
func applyErrors(fields []Field, errs map[string]string) []Field {
	for i := range fields {
		if msg, ok := errs[fields[i].Name]; ok {
			fields[i].Error = msg
		}
	}
	return fields
}
