package importer

import (
	"context"
	"fmt"

	"github.com/boostaproject/bap-api/app/database"
)

var requiredArticleKeys = []string{
	"slug", "title", "excerpt", "image", "content", "meta_description", "meta_keywords",
}

// ImportArticles upserts every record by slug, committing each record on its
// own. A malformed record or a storage error aborts the call; records before
// it stay committed and are listed in the returned report.
func (imp *Importer) ImportArticles(ctx context.Context, records []Record) (*Report, error) {
	report := &Report{}

	for i, rec := range records {
		article, err := parseArticle(i, rec)
		if err != nil {
			return report, err
		}

		res, err := imp.upsertArticle(ctx, article, rec.has("image_alt"))
		if err != nil {
			return report, fmt.Errorf("failed to import article %s: %w", article.Slug, err)
		}
		report.add(res)
	}

	return report, nil
}

func parseArticle(index int, rec Record) (*database.Article, error) {
	values := make(map[string]string, len(requiredArticleKeys))
	for _, key := range requiredArticleKeys {
		v, ok := rec[key]
		if !ok {
			return nil, &RecordError{Index: index, Key: key, Reason: "missing required key"}
		}
		s, ok := v.(string)
		if !ok {
			return nil, &RecordError{Index: index, Key: key, Reason: "expected string for key"}
		}
		values[key] = s
	}

	article := &database.Article{
		Slug:            values["slug"],
		Title:           values["title"],
		Excerpt:         values["excerpt"],
		Image:           values["image"],
		Content:         values["content"],
		MetaDescription: values["meta_description"],
		MetaKeywords:    values["meta_keywords"],
	}

	// The incoming id, if any, is ignored: identity is always storage-assigned.
	var err error
	if article.Author, err = rec.str("author"); err != nil {
		return nil, &RecordError{Index: index, Key: "author", Reason: "expected string for key"}
	}
	if article.Date, err = rec.str("date"); err != nil {
		return nil, &RecordError{Index: index, Key: "date", Reason: "expected string for key"}
	}
	if article.Related, err = rec.stringList("related"); err != nil {
		return nil, &RecordError{Index: index, Key: "related", Reason: "expected list of strings for key"}
	}
	switch alt := rec["image_alt"].(type) {
	case nil:
	case string:
		article.ImageAlt = &alt
	default:
		return nil, &RecordError{Index: index, Key: "image_alt", Reason: "expected string for key"}
	}

	return article, nil
}

func (imp *Importer) upsertArticle(ctx context.Context, incoming *database.Article, hasAlt bool) (Result, error) {
	session, err := imp.sessions.Begin(ctx)
	if err != nil {
		return Result{}, err
	}
	defer session.Rollback()

	repo := session.Articles()
	existing, err := repo.GetArticle(ctx, incoming.Slug)
	if err != nil {
		return Result{}, err
	}

	now := imp.now()
	outcome := Created

	if existing != nil {
		existing.Title = incoming.Title
		existing.Excerpt = incoming.Excerpt
		existing.Image = incoming.Image
		existing.Content = incoming.Content
		existing.MetaDescription = incoming.MetaDescription
		existing.MetaKeywords = incoming.MetaKeywords
		if hasAlt {
			existing.ImageAlt = incoming.ImageAlt
		}
		existing.UpdatedAt = &now

		if err := repo.UpdateArticle(ctx, existing); err != nil {
			return Result{}, err
		}
		outcome = Updated
	} else {
		incoming.CreatedAt = now
		if err := repo.CreateArticle(ctx, incoming); err != nil {
			return Result{}, err
		}
	}

	if err := session.Commit(); err != nil {
		return Result{}, err
	}

	return Result{Kind: KindArticle, Identity: incoming.Slug, Outcome: outcome}, nil
}
