package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/zainulsyai/eko-hajj/internal/monitoring"
	"github.com/zainulsyai/eko-hajj/internal/shared"
	"github.com/zainulsyai/eko-hajj/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// NavItem is one sidebar entry.
type NavItem struct {
	Label  string
	Path   string
	Icon   string
	Active bool
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	User        string
	Today       string
	Nav         []NavItem
	Data        any
}

var navigation = []NavItem{
	{Label: "Beranda", Path: "/", Icon: "layout-dashboard"},
	{Label: "Data Pengisian", Path: "/portal", Icon: "clipboard-list"},
	{Label: "Laporan Otomatis", Path: "/reports", Icon: "file-text"},
	{Label: "Grafik & Visualisasi", Path: "/visualization", Icon: "bar-chart"},
	{Label: "Pengaturan", Path: "/settings", Icon: "settings"},
}

// Nav marks the entry owning path as active. Form pages belong to the portal.
func Nav(path string) []NavItem {
	items := make([]NavItem, len(navigation))
	copy(items, navigation)
	for i := range items {
		switch {
		case items[i].Path == "/":
			items[i].Active = path == "/"
		case items[i].Path == "/portal":
			items[i].Active = strings.HasPrefix(path, "/portal") || strings.HasPrefix(path, "/forms")
		default:
			items[i].Active = strings.HasPrefix(path, items[i].Path)
		}
	}
	return items
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006 15:04")
		},
		"number": func(v float64) string { return shared.FormatNumber(v, 0) },
		"decimal": func(v float64, places int) string {
			return shared.FormatNumber(v, places)
		},
		"integer": shared.FormatInteger,
		"sar":     shared.FormatSAR,
		"percent": func(v float64) string { return shared.FormatNumber(v, 1) + "%" },
		"field":   monitoring.Field,
		"isoDate": monitoring.DateToISO,
		"picker":  monitoring.TimeToPicker,
		"checked": func(r monitoring.Record, field string) bool {
			return monitoring.ParseBool(monitoring.Field(r, field))
		},
		"lower": strings.ToLower,
		"add":   func(a, b int) int { return a + b },
		"dict": func(pairs ...any) (map[string]any, error) {
			if len(pairs)%2 != 0 {
				return nil, fmt.Errorf("dict: odd argument count")
			}
			out := make(map[string]any, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
				}
				out[key] = pairs[i+1]
			}
			return out, nil
		},
	}
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	tpl, err := template.New("root").Funcs(funcMap()).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Page builds TemplateData for r from its session: the signed-in user, the
// pending flash and the CSRF token.
func Page(r *http.Request, csrf *shared.CSRFManager, title string, data any) TemplateData {
	td := TemplateData{
		Title:       title,
		CurrentPath: r.URL.Path,
		Today:       shared.FormatLongDate(time.Now()),
		Nav:         Nav(r.URL.Path),
		Data:        data,
	}
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return td
	}
	td.User = sess.User()
	td.Flash = sess.PopFlash()
	if csrf != nil {
		if token, err := csrf.EnsureToken(sess); err == nil {
			td.CSRFToken = token
		}
	} else {
		td.CSRFToken = sess.Get(shared.CSRFSessionKey)
	}
	return td
}

// Render executes a named template with TemplateData. Output is buffered so
// a failing template never sends a partial page.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	return e.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus is Render with an explicit status code.
func (e *Engine) RenderStatus(w http.ResponseWriter, status int, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
