package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/blogflow/internal/models"
)

const (
	fontName  = "Georgia"
	fontSize  = 12
	textColor = "000000"
	metaColor = "666666"
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[\-\*+]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^\d+[.)]\s+(.+)$`)
	reLink     = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// WriteDocx builds the document in a scratch file and copies it to w. The
// scratch file is removed before returning.
func (e *implExporter) WriteDocx(ctx context.Context, article *models.Article, w io.Writer) error {
	path := e.scratchPath()
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			e.logger.Warn(ctx, "Failed to remove export scratch file %s: %v", path, err)
		}
	}()

	if err := articleToDocx(article, path); err != nil {
		return fmt.Errorf("build docx: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open docx: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(w, f)
	if err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	e.logger.Debug(ctx, "Exported article %d as docx (%d bytes)", article.ID, n)
	return nil
}

func articleToDocx(article *models.Article, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addRun(doc.AddParagraph(""), article.SourceVideoTitle, true, 18, textColor)
	meta := article.SourceVideoLink
	if !article.CreatedAt.IsZero() {
		meta = article.CreatedAt.Format("January 2, 2006") + " · " + meta
	}
	addRun(doc.AddParagraph(""), meta, false, 10, metaColor)

	for _, b := range parseBlocks(article.GeneratedContent) {
		p := doc.AddParagraph("")
		switch b.kind {
		case blockHeading:
			addRun(p, b.text, true, headingSize(b.level), textColor)
		case blockBullet:
			addInline(p, "• "+b.text)
		default:
			addInline(p, b.text)
		}
	}

	return doc.SaveTo(outputPath)
}

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockBullet
)

type block struct {
	kind  blockKind
	level int
	text  string
}

// parseBlocks splits markdown into one block per non-empty line. Consecutive
// plain lines are joined into a single paragraph.
func parseBlocks(markdown string) []block {
	var (
		blocks []block
		para   []string
	)
	flush := func() {
		if len(para) > 0 {
			blocks = append(blocks, block{kind: blockParagraph, text: strings.Join(para, " ")})
			para = nil
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || trimmed == "---" || strings.HasPrefix(trimmed, "```"):
			flush()
		case reHeading.MatchString(trimmed):
			flush()
			m := reHeading.FindStringSubmatch(trimmed)
			blocks = append(blocks, block{kind: blockHeading, level: len(m[1]), text: m[2]})
		case reBullet.MatchString(trimmed):
			flush()
			blocks = append(blocks, block{kind: blockBullet, text: reBullet.FindStringSubmatch(trimmed)[1]})
		case reNumbered.MatchString(trimmed):
			flush()
			blocks = append(blocks, block{kind: blockParagraph, text: trimmed})
		default:
			para = append(para, trimmed)
		}
	}
	flush()
	return blocks
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64, color string) {
	run := p.AddText(stripInline(text)).Font(fontName).Size(size).Color(color)
	if bold {
		run.Bold(true)
	}
}

// addInline writes text with **bold** spans as bold runs.
func addInline(p *docx.Paragraph, text string) {
	text = reLink.ReplaceAllString(text, "$1 ($2)")
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(stripInline(part)).Font(fontName).Size(fontSize).Color(textColor)
		}
		if i < len(matches) {
			p.AddText(stripInline(matches[i][1])).Font(fontName).Size(fontSize).Color(textColor).Bold(true)
		}
	}
}

func stripInline(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}
