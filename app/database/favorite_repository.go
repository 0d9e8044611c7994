package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type favoriteRepository struct {
	q querier
}

var _ FavoriteRepository = (*favoriteRepository)(nil)

func NewFavoriteRepository(db *DB) FavoriteRepository {
	return &favoriteRepository{q: db.DB}
}

// ListFavorites returns the user's favorites joined with their projects, newest first.
func (r *favoriteRepository) ListFavorites(ctx context.Context, userID int64) ([]Favorite, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT f.id, f.user_id, f.project_id, f.created_at,
		       p.id, p.slug, p.title, p.subtitle, p.description, p.status, p.category, p.featured,
		       p.priority, p.main_image_url, p.gallery, p.investment_data, p.content_sections,
		       p.views, p.created_at, p.updated_at
		FROM favorites f
		JOIN projects p ON p.id = f.project_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, f.id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := []Favorite{}
	for rows.Next() {
		var fav Favorite
		var project Project
		var gallery, investmentData, contentSections sql.NullString
		var updatedAt sql.NullTime

		err := rows.Scan(
			&fav.ID, &fav.UserID, &fav.ProjectID, &fav.CreatedAt,
			&project.ID, &project.Slug, &project.Title, &project.Subtitle, &project.Description,
			&project.Status, &project.Category, &project.Featured, &project.Priority,
			&project.MainImageURL, &gallery, &investmentData, &contentSections,
			&project.Views, &project.CreatedAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}

		project.Gallery = rawJSON(gallery)
		project.InvestmentData = rawJSON(investmentData)
		project.ContentSections = rawJSON(contentSections)
		project.UpdatedAt = timePtr(updatedAt)
		fav.Project = &project

		favorites = append(favorites, fav)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorite rows: %w", err)
	}

	return favorites, nil
}

func (r *favoriteRepository) GetFavorite(ctx context.Context, userID, projectID int64) (*Favorite, error) {
	var fav Favorite

	err := r.q.QueryRowContext(ctx, `
		SELECT id, user_id, project_id, created_at
		FROM favorites
		WHERE user_id = ? AND project_id = ?
	`, userID, projectID).Scan(&fav.ID, &fav.UserID, &fav.ProjectID, &fav.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}

	return &fav, nil
}

func (r *favoriteRepository) CreateFavorite(ctx context.Context, favorite *Favorite) error {
	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now().UTC()
	}

	res, err := r.q.ExecContext(ctx, `
		INSERT INTO favorites (user_id, project_id, created_at)
		VALUES (?, ?, ?)
	`, favorite.UserID, favorite.ProjectID, favorite.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to create favorite: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read favorite id: %w", err)
	}
	favorite.ID = id

	return nil
}

func (r *favoriteRepository) DeleteFavorite(ctx context.Context, userID, projectID int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = ? AND project_id = ?`, userID, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	return affectedOrNotFound(res)
}
