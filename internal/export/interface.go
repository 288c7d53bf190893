package export

import (
	"context"
	"io"

	"github.com/nguyentantai21042004/blogflow/internal/models"
)

// Exporter renders an article into a downloadable document.
type Exporter interface {
	WriteDocx(ctx context.Context, article *models.Article, w io.Writer) error
}
