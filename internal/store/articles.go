package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/blogflow/internal/models"
)

const articleColumns = `id, owner_id, source_video_title, source_video_link, generated_content, created_at`

func (s *implStore) CreateArticle(ctx context.Context, a *models.Article) error {
	if a.OwnerID == 0 {
		return fmt.Errorf("insert article: owner is required")
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO articles(owner_id, source_video_title, source_video_link, generated_content, created_at)
		 VALUES(?, ?, ?, ?, ?)`,
		a.OwnerID, a.SourceVideoTitle, a.SourceVideoLink, a.GeneratedContent, a.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("article id: %w", err)
	}
	a.ID = id

	s.logger.Debug(ctx, "Article %d stored for user %d", a.ID, a.OwnerID)
	return nil
}

func (s *implStore) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)

	a, err := scanArticle(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

// ListArticlesByOwner returns the owner's articles, newest first.
func (s *implStore) ListArticlesByOwner(ctx context.Context, ownerID int64) ([]*models.Article, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE owner_id = ? ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		a, err := scanArticle(rows.Scan)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}

	return articles, nil
}

func scanArticle(scan func(dest ...any) error) (*models.Article, error) {
	var (
		a       models.Article
		created int64
	)
	if err := scan(&a.ID, &a.OwnerID, &a.SourceVideoTitle, &a.SourceVideoLink, &a.GeneratedContent, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan article: %w", err)
	}
	a.CreatedAt = time.Unix(0, created).UTC()
	return &a, nil
}
