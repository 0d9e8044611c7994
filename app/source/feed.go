package source

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/boostaproject/bap-api/app/importer"
	"github.com/boostaproject/bap-api/app/slug"
)

// parseFeed turns each RSS/Atom item into an article record. Items whose
// title yields no slug are dropped.
func (l *Loader) parseFeed(data []byte) ([]importer.Record, error) {
	feed, err := l.feedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	records := make([]importer.Record, 0, len(feed.Items))
	for _, item := range feed.Items {
		s := slug.Make(item.Title)
		if s == "" {
			slog.Debug("Skipping feed item without title", "feed", feed.Title, "link", item.Link)
			continue
		}
		records = append(records, itemRecord(s, item))
	}

	slog.Debug("Parsed feed", "title", feed.Title, "items", len(records))
	return records, nil
}

func itemRecord(s string, item *gofeed.Item) importer.Record {
	content := coalesce(item.Content, item.Description)

	rec := importer.Record{
		"slug":             s,
		"title":            item.Title,
		"excerpt":          item.Description,
		"image":            itemImage(item),
		"content":          content,
		"meta_description": item.Description,
		"meta_keywords":    strings.Join(item.Categories, ","),
	}

	if item.Author != nil && item.Author.Name != "" {
		rec["author"] = item.Author.Name
	}
	if item.PublishedParsed != nil {
		rec["date"] = item.PublishedParsed.UTC().Format("2006-01-02")
	}

	return rec
}

func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

// coalesce returns the first non-empty string from the provided values
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
