package models

import "time"

// Article is a blog post generated from one video. It is never updated after
// creation and always belongs to exactly one user.
type Article struct {
	ID               int64     `json:"id"`
	OwnerID          int64     `json:"owner_id"`
	SourceVideoTitle string    `json:"source_video_title"`
	SourceVideoLink  string    `json:"source_video_link"`
	GeneratedContent string    `json:"generated_content"`
	CreatedAt        time.Time `json:"created_at"`
}

// OwnedBy reports whether userID owns the article.
func (a *Article) OwnedBy(userID int64) bool {
	return a != nil && a.OwnerID == userID
}
