package httpserver

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/nguyentantai21042004/blogflow/internal/logger"
	"github.com/nguyentantai21042004/blogflow/internal/models"
)

//go:embed templates/*.html
var templateFiles embed.FS

const (
	pageIndex       = "index"
	pageAllBlogs    = "all_blogs"
	pageBlogDetails = "blog_details"
	pageLogin       = "login"
	pageSignup      = "signup"
)

var pages = []string{pageIndex, pageAllBlogs, pageBlogDetails, pageLogin, pageSignup}

func embeddedTemplates() fs.FS {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// pageData is the single data shape every template receives.
type pageData struct {
	User     *models.User
	Error    string
	Form     map[string]string
	Articles []*models.Article
	Article  *models.Article
	Content  template.HTML
}

type templateSet struct {
	source fs.FS
	mu     sync.RWMutex
	pages  map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string { return t.Local().Format("Jan 2, 2006 15:04") },
}

func newTemplateSet(source fs.FS) (*templateSet, error) {
	ts := &templateSet{source: source}
	if err := ts.load(); err != nil {
		return nil, err
	}
	return ts, nil
}

// load parses every page against base.html and swaps the set only if all
// pages parsed.
func (ts *templateSet) load() error {
	parsed := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New(page).Funcs(templateFuncs).ParseFS(ts.source, "base.html", page+".html")
		if err != nil {
			return fmt.Errorf("parse template %s: %w", page, err)
		}
		parsed[page] = t
	}

	ts.mu.Lock()
	ts.pages = parsed
	ts.mu.Unlock()
	return nil
}

func (ts *templateSet) execute(w *bytes.Buffer, page string, data pageData) error {
	ts.mu.RLock()
	t, ok := ts.pages[page]
	ts.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return t.ExecuteTemplate(w, "base", data)
}

func (s *implServer) ReloadTemplates(ctx context.Context, changed string) error {
	if err := s.templates.load(); err != nil {
		return err
	}
	s.logger.Info(ctx, "Templates reloaded after change to %s", changed)
	return nil
}

// renderPage buffers the page so a template error never leaves a partial
// response behind.
func (s *implServer) renderPage(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	if data.User == nil {
		data.User = userFromContext(r.Context())
	}

	var buf bytes.Buffer
	if err := s.templates.execute(&buf, page, data); err != nil {
		logger.FromContext(r.Context(), s.logger).Error(r.Context(), "render %s: %v", page, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
