package source

import (
	"bytes"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-readability"

	"github.com/boostaproject/bap-api/app/importer"
	"github.com/boostaproject/bap-api/app/slug"
)

// parseHTML extracts the main article of a standalone page. The slug comes
// from the file name so re-exports of the same page update in place.
func parseHTML(path string, data []byte) ([]importer.Record, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("HTML data is empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	pageURL := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}

	article, err := readability.FromReader(bytes.NewReader(data), pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}
	if article.Content == "" {
		return nil, fmt.Errorf("no content extracted from HTML data")
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s := slug.Make(name)
	if s == "" {
		s = slug.Make(article.Title)
	}

	rec := importer.Record{
		"slug":             s,
		"title":            article.Title,
		"excerpt":          article.Excerpt,
		"image":            article.Image,
		"content":          article.Content,
		"meta_description": article.Excerpt,
		"meta_keywords":    "",
	}
	if article.Byline != "" {
		rec["author"] = article.Byline
	}
	if article.PublishedTime != nil {
		rec["date"] = article.PublishedTime.UTC().Format("2006-01-02")
	}

	return []importer.Record{rec}, nil
}
