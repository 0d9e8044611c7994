package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const projectColumns = `id, slug, title, subtitle, description, status, category, featured,
	priority, main_image_url, gallery, investment_data, content_sections, views,
	created_at, updated_at`

type projectRepository struct {
	q querier
}

var _ ProjectRepository = (*projectRepository)(nil)

func NewProjectRepository(db *DB) ProjectRepository {
	return &projectRepository{q: db.DB}
}

func scanProject(row rowScanner) (*Project, error) {
	var project Project
	var gallery, investmentData, contentSections sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&project.ID, &project.Slug, &project.Title, &project.Subtitle, &project.Description,
		&project.Status, &project.Category, &project.Featured, &project.Priority,
		&project.MainImageURL, &gallery, &investmentData, &contentSections, &project.Views,
		&project.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	project.Gallery = rawJSON(gallery)
	project.InvestmentData = rawJSON(investmentData)
	project.ContentSections = rawJSON(contentSections)
	project.UpdatedAt = timePtr(updatedAt)

	return &project, nil
}

func (r *projectRepository) getOne(ctx context.Context, where string, arg any) (*Project, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE `+where+` LIMIT 1`, arg)

	project, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

func (r *projectRepository) GetProject(ctx context.Context, slug string) (*Project, error) {
	return r.getOne(ctx, "slug = ?", slug)
}

func (r *projectRepository) GetProjectByID(ctx context.Context, id int64) (*Project, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetProjectByTitle returns the oldest project with the given title.
func (r *projectRepository) GetProjectByTitle(ctx context.Context, title string) (*Project, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE title = ? ORDER BY id LIMIT 1`, title)

	project, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project by title: %w", err)
	}

	return project, nil
}

// ListProjects returns featured projects first, then by priority.
func (r *projectRepository) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+projectColumns+`
		FROM projects
		ORDER BY featured DESC, priority DESC, created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

func (r *projectRepository) GetProjectCount(ctx context.Context) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get project count: %w", err)
	}
	return count, nil
}

func (r *projectRepository) CreateProject(ctx context.Context, project *Project) error {
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	if project.Status == "" {
		project.Status = ProjectStatusOpen
	}

	res, err := r.q.ExecContext(ctx, `
		INSERT INTO projects (
			slug, title, subtitle, description, status, category, featured, priority,
			main_image_url, gallery, investment_data, content_sections, views,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, project.Slug, project.Title, project.Subtitle, project.Description, project.Status,
		project.Category, project.Featured, project.Priority, project.MainImageURL,
		nullableJSON(project.Gallery), nullableJSON(project.InvestmentData),
		nullableJSON(project.ContentSections), project.Views,
		project.CreatedAt.UTC(), nullableTime(project.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read project id: %w", err)
	}
	project.ID = id

	return nil
}

// UpdateProject rewrites every mutable column of the project identified by slug.
func (r *projectRepository) UpdateProject(ctx context.Context, project *Project) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE projects
		SET title = ?, subtitle = ?, description = ?, status = ?, category = ?,
		    featured = ?, priority = ?, main_image_url = ?, gallery = ?,
		    investment_data = ?, content_sections = ?, views = ?, updated_at = ?
		WHERE slug = ?
	`, project.Title, project.Subtitle, project.Description, project.Status, project.Category,
		project.Featured, project.Priority, project.MainImageURL,
		nullableJSON(project.Gallery), nullableJSON(project.InvestmentData),
		nullableJSON(project.ContentSections), project.Views, nullableTime(project.UpdatedAt),
		project.Slug)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	return affectedOrNotFound(res)
}

func (r *projectRepository) DeleteProject(ctx context.Context, slug string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM projects WHERE slug = ?`, slug)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return affectedOrNotFound(res)
}
