package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const articleColumns = `id, slug, title, author, date, excerpt, image, image_alt, content,
	related, meta_description, meta_keywords, created_at, updated_at`

type articleRepository struct {
	q querier
}

var _ ArticleRepository = (*articleRepository)(nil)

func NewArticleRepository(db *DB) ArticleRepository {
	return &articleRepository{q: db.DB}
}

func scanArticle(row rowScanner) (*Article, error) {
	var article Article
	var imageAlt, related sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&article.ID, &article.Slug, &article.Title, &article.Author, &article.Date,
		&article.Excerpt, &article.Image, &imageAlt, &article.Content,
		&related, &article.MetaDescription, &article.MetaKeywords,
		&article.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	article.ImageAlt = stringPtr(imageAlt)
	article.UpdatedAt = timePtr(updatedAt)
	if related.Valid && related.String != "" {
		if err := json.Unmarshal([]byte(related.String), &article.Related); err != nil {
			return nil, fmt.Errorf("failed to decode related slugs: %w", err)
		}
	}

	return &article, nil
}

func encodeRelated(related []string) (any, error) {
	if related == nil {
		return nil, nil
	}
	data, err := json.Marshal(related)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (r *articleRepository) GetArticle(ctx context.Context, slug string) (*Article, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE slug = ?`, slug)

	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return article, nil
}

func (r *articleRepository) ListArticles(ctx context.Context, limit, offset int) ([]Article, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := []Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		articles = append(articles, *article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}

func (r *articleRepository) GetArticleCount(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}

func (r *articleRepository) CreateArticle(ctx context.Context, article *Article) error {
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now().UTC()
	}

	related, err := encodeRelated(article.Related)
	if err != nil {
		return fmt.Errorf("failed to encode related slugs: %w", err)
	}

	res, err := r.q.ExecContext(ctx, `
		INSERT INTO articles (
			slug, title, author, date, excerpt, image, image_alt, content,
			related, meta_description, meta_keywords, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, article.Slug, article.Title, article.Author, article.Date, article.Excerpt,
		article.Image, nullableString(article.ImageAlt), article.Content,
		related, article.MetaDescription, article.MetaKeywords,
		article.CreatedAt.UTC(), nullableTime(article.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read article id: %w", err)
	}
	article.ID = id

	return nil
}

func (r *articleRepository) UpdateArticle(ctx context.Context, article *Article) error {
	related, err := encodeRelated(article.Related)
	if err != nil {
		return fmt.Errorf("failed to encode related slugs: %w", err)
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE articles
		SET title = ?, author = ?, date = ?, excerpt = ?, image = ?, image_alt = ?,
		    content = ?, related = ?, meta_description = ?, meta_keywords = ?, updated_at = ?
		WHERE slug = ?
	`, article.Title, article.Author, article.Date, article.Excerpt, article.Image,
		nullableString(article.ImageAlt), article.Content, related,
		article.MetaDescription, article.MetaKeywords, nullableTime(article.UpdatedAt),
		article.Slug)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}

	return affectedOrNotFound(res)
}

func (r *articleRepository) DeleteArticle(ctx context.Context, slug string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM articles WHERE slug = ?`, slug)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}

	return affectedOrNotFound(res)
}
