package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/buysphere/storefront/internal/format"
	"github.com/buysphere/storefront/internal/order"
	"github.com/buysphere/storefront/internal/platform/observability"
	"github.com/buysphere/storefront/internal/web/session"
)

// templateFuncs are the helpers available to every page template. money and
// f64 accept *float64 so optional prices render without explicit dereference.
var templateFuncs = template.FuncMap{
	"money": func(v any) (string, error) {
		f, err := toFloat(v)
		if err != nil {
			return "", err
		}
		return format.Money(f), nil
	},
	"f64":      toFloat,
	"percent":  format.Percent,
	"date":     format.Date,
	"datetime": format.DateTime,
	"statusLabel": func(s string) string {
		return order.Status(s).Label()
	},
	"mul": func(price float64, quantity int) float64 {
		return price * float64(quantity)
	},
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case *float64:
		if x == nil {
			return 0, nil
		}
		return *x, nil
	case int:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("handlers: cannot format %T as a number", v)
	}
}

// Renderer executes the page templates. In dev mode the template directory is
// re-parsed on every render so edits show up without a restart.
type Renderer struct {
	dir string
	dev bool

	mu   sync.RWMutex
	tmpl *template.Template
}

// NewRenderer parses every .tmpl file under dir.
func NewRenderer(dir string, dev bool) (*Renderer, error) {
	tmpl, err := parseTemplates(dir)
	if err != nil {
		return nil, err
	}
	return &Renderer{dir: dir, dev: dev, tmpl: tmpl}, nil
}

func parseTemplates(dir string) (*template.Template, error) {
	root := template.New("").Funcs(templateFuncs)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".tmpl" {
			return nil
		}
		if _, err := root.ParseFiles(path); err != nil {
			return fmt.Errorf("handlers: parse template %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}

func (r *Renderer) templates() (*template.Template, error) {
	if r.dev {
		tmpl, err := parseTemplates(r.dir)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.tmpl = tmpl
		r.mu.Unlock()
		return tmpl, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tmpl, nil
}

// Viewer is the signed-in user as the layout sees them.
type Viewer struct {
	Name    string
	IsAdmin bool
}

// PageData is the envelope every template receives.
type PageData struct {
	Title  string
	Path   string
	Viewer *Viewer
	Flash  string
	Year   int
	Data   any
}

// render executes the named page template with the standard envelope. The
// session's pending flash message is consumed here.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	sess := session.Get(r)
	page := PageData{
		Title: title,
		Path:  r.URL.Path,
		Flash: sess.PopFlash(),
		Year:  time.Now().Year(),
		Data:  data,
	}
	if sess.SignedIn() {
		page.Viewer = &Viewer{Name: sess.UserName, IsAdmin: sess.IsAdmin}
	}

	tmpl, err := h.renderer.templates()
	if err != nil {
		observability.FromContext(r.Context()).Error("template parse failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, name+".tmpl", page); err != nil {
		observability.FromContext(r.Context()).Error("template render failed",
			zap.String("template", name),
			zap.Error(err),
		)
	}
}
