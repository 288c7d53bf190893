package httpserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nguyentantai21042004/blogflow/internal/logger"
	"github.com/nguyentantai21042004/blogflow/internal/models"
	"github.com/nguyentantai21042004/blogflow/internal/store"
)

func (s *implServer) index(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, pageIndex, pageData{})
}

func (s *implServer) listBlogs(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	articles, err := s.articles.ListArticlesByOwner(r.Context(), user.ID)
	if err != nil {
		logger.FromContext(r.Context(), s.logger).Error(r.Context(), "list articles for user %d: %v", user.ID, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.renderPage(w, r, http.StatusOK, pageAllBlogs, pageData{Articles: articles})
}

// articleCtx loads the article named in the URL. Anything but an article the
// caller owns redirects home, so ids of other users' articles are not revealed.
func (s *implServer) articleCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "articleID"), 10, 64)
		if err != nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		article, err := s.articles.GetArticle(r.Context(), id)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			logger.FromContext(r.Context(), s.logger).Error(r.Context(), "load article %d: %v", id, err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		user := userFromContext(r.Context())
		if err != nil || !article.OwnedBy(user.ID) {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyArticle, article)))
	})
}

func (s *implServer) blogDetails(w http.ResponseWriter, r *http.Request) {
	article := r.Context().Value(ctxKeyArticle).(*models.Article)
	s.renderPage(w, r, http.StatusOK, pageBlogDetails, pageData{
		Article: article,
		Content: s.markdown.Render(article.GeneratedContent),
	})
}

func (s *implServer) blogDocx(w http.ResponseWriter, r *http.Request) {
	article := r.Context().Value(ctxKeyArticle).(*models.Article)

	var buf bytes.Buffer
	if err := s.exporter.WriteDocx(r.Context(), article, &buf); err != nil {
		logger.FromContext(r.Context(), s.logger).Error(r.Context(), "export article %d: %v", article.ID, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.docx"`, docxFilename(article)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

var reUnsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func docxFilename(a *models.Article) string {
	name := strings.Trim(reUnsafeFilename.ReplaceAllString(a.SourceVideoTitle, "-"), "-.")
	if name == "" {
		return "article-" + strconv.FormatInt(a.ID, 10)
	}
	if len(name) > 80 {
		name = name[:80]
	}
	return name
}

func (s *implServer) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
