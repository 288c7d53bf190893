package httpserver

import (
	"io/fs"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/nguyentantai21042004/blogflow/internal/auth"
	"github.com/nguyentantai21042004/blogflow/internal/export"
	"github.com/nguyentantai21042004/blogflow/internal/logger"
	"github.com/nguyentantai21042004/blogflow/internal/pipeline"
	"github.com/nguyentantai21042004/blogflow/internal/store"
)

// Deps are the services the handlers call.
type Deps struct {
	Auth     auth.Service
	Articles store.ArticleStore
	Pipeline pipeline.Pipeline
	Exporter export.Exporter
	// Recorder is optional.
	Recorder RequestRecorder
}

// Options configures cookies and template loading.
type Options struct {
	CookieName   string
	CookieSecure bool
	// TemplatesDir overrides the embedded templates when set.
	TemplatesDir string
}

type implServer struct {
	auth      auth.Service
	articles  store.ArticleStore
	pipeline  pipeline.Pipeline
	exporter  export.Exporter
	recorder  RequestRecorder
	opts      Options
	templates *templateSet
	markdown  *markdownRenderer
	logger    logger.Logger
	router    chi.Router
}

// New parses the templates and mounts every route.
func New(deps Deps, opts Options, log logger.Logger) (Server, error) {
	var source fs.FS = embeddedTemplates()
	if opts.TemplatesDir != "" {
		source = os.DirFS(opts.TemplatesDir)
	}

	templates, err := newTemplateSet(source)
	if err != nil {
		return nil, err
	}

	s := &implServer{
		auth:      deps.Auth,
		articles:  deps.Articles,
		pipeline:  deps.Pipeline,
		exporter:  deps.Exporter,
		recorder:  deps.Recorder,
		opts:      opts,
		templates: templates,
		markdown:  newMarkdownRenderer(),
		logger:    log,
	}
	s.router = s.routes()
	return s, nil
}

func (s *implServer) Router() chi.Router {
	return s.router
}
