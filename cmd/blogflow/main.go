package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/docgen"
	"github.com/nguyentantai21042004/blogflow/internal/auth"
	"github.com/nguyentantai21042004/blogflow/internal/config"
	"github.com/nguyentantai21042004/blogflow/internal/export"
	"github.com/nguyentantai21042004/blogflow/internal/extractor"
	"github.com/nguyentantai21042004/blogflow/internal/httpserver"
	"github.com/nguyentantai21042004/blogflow/internal/logger"
	"github.com/nguyentantai21042004/blogflow/internal/metrics"
	"github.com/nguyentantai21042004/blogflow/internal/pipeline"
	"github.com/nguyentantai21042004/blogflow/internal/store"
	"github.com/nguyentantai21042004/blogflow/internal/synthesizer"
	"github.com/nguyentantai21042004/blogflow/internal/transcriber"
	"github.com/nguyentantai21042004/blogflow/internal/watcher"
	"github.com/nguyentantai21042004/blogflow/pkg/executor"
)

const shutdownTimeout = 15 * time.Second

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to the YAML config file")
		routes     = flag.Bool("routes", false, "print the route table as markdown and exit")
	)
	flag.Parse()

	if err := run(*configPath, *routes); err != nil {
		fmt.Fprintf(os.Stderr, "blogflow: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, printRoutes bool) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	log.Info(ctx, "========================================")
	log.Info(ctx, "blogflow starting")
	log.Info(ctx, "Transcriber: %s | Synthesizer: %s (%s)", cfg.Transcriber.Provider, cfg.Synthesizer.Provider, cfg.Synthesizer.Model)
	log.Info(ctx, "Max concurrent generations: %d (0 = unbounded)", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "========================================")

	if err := ensureDirectories(cfg); err != nil {
		return err
	}

	// Initialize dependencies
	st, err := store.New(ctx, cfg.Database.Path, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ext, err := extractor.New(cfg.YtDlp, cfg.Media.Root, executor.New(), log)
	if err != nil {
		return fmt.Errorf("create extractor: %w", err)
	}
	if n, err := ext.Sweep(ctx); err != nil {
		log.Warn(ctx, "Failed to sweep leftover audio: %v", err)
	} else if n > 0 {
		log.Info(ctx, "Removed %d leftover audio files", n)
	}

	tr, err := transcriber.New(cfg.Transcriber, log)
	if err != nil {
		return fmt.Errorf("create transcriber: %w", err)
	}
	syn, err := synthesizer.New(ctx, cfg.Synthesizer, log)
	if err != nil {
		return fmt.Errorf("create synthesizer: %w", err)
	}
	exp, err := export.New(cfg.Media.Root, log)
	if err != nil {
		return fmt.Errorf("create exporter: %w", err)
	}

	m := metrics.New()
	authSvc := auth.New(st, auth.Options{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
		Cost:   cfg.Session.BcryptCost,
	}, log)
	pipe := pipeline.New(pipeline.Deps{
		Extractor:   ext,
		Transcriber: tr,
		Synthesizer: syn,
		Articles:    st,
		Recorder:    m,
	}, cfg.Performance.MaxConcurrent, log)

	srv, err := httpserver.New(httpserver.Deps{
		Auth:     authSvc,
		Articles: st,
		Pipeline: pipe,
		Exporter: exp,
		Recorder: m,
	}, httpserver.Options{
		CookieName:   cfg.Session.CookieName,
		CookieSecure: cfg.Session.Secure,
		TemplatesDir: cfg.Templates.Dir,
	}, log)
	if err != nil {
		return fmt.Errorf("create http server: %w", err)
	}

	if printRoutes {
		fmt.Println(docgen.MarkdownRoutesDoc(srv.Router(), docgen.MarkdownOpts{
			ProjectPath: "github.com/nguyentantai21042004/blogflow",
			Intro:       "Routes served by blogflow.",
		}))
		return nil
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 3)

	if cfg.Templates.Dir != "" && cfg.Templates.Watch {
		w, err := watcher.New(cfg.Templates.Dir, []string{".html"}, srv.ReloadTemplates, log, 0)
		if err != nil {
			return fmt.Errorf("create template watcher: %w", err)
		}
		defer w.Stop()

		go func() {
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- fmt.Errorf("template watcher: %w", err)
			}
		}()
	}

	servers := []*http.Server{{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if cfg.Server.DiagAddr != "" {
		diag := chi.NewRouter()
		diag.Handle("/metrics", m.Handler())
		servers = append(servers, &http.Server{
			Addr:              cfg.Server.DiagAddr,
			Handler:           diag,
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	for _, s := range servers {
		go func(s *http.Server) {
			log.Info(ctx, "Listening on %s", s.Addr)
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("listen %s: %w", s.Addr, err)
			}
		}(s)
	}

	log.Info(ctx, "blogflow is ready")

	// Wait for shutdown signal or error
	var runErr error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case runErr = <-errChan:
		log.Error(ctx, "Server error: %v", runErr)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil {
			log.Warn(shutdownCtx, "Shutdown %s: %v", s.Addr, err)
		}
	}

	log.Info(context.Background(), "blogflow stopped")
	return runErr
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Media.Root,
		filepath.Dir(cfg.Database.Path),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
