package database

import (
	"context"
	"errors"
)

// ErrNotFound is returned by mutations that target a row which does not exist.
// Lookups return (nil, nil) instead.
var ErrNotFound = errors.New("record not found")

type ArticleRepository interface {
	GetArticle(ctx context.Context, slug string) (*Article, error)
	ListArticles(ctx context.Context, limit, offset int) ([]Article, error)
	GetArticleCount(ctx context.Context) (int, error)

	CreateArticle(ctx context.Context, article *Article) error
	UpdateArticle(ctx context.Context, article *Article) error
	DeleteArticle(ctx context.Context, slug string) error
}

type ProjectRepository interface {
	GetProject(ctx context.Context, slug string) (*Project, error)
	GetProjectByID(ctx context.Context, id int64) (*Project, error)
	GetProjectByTitle(ctx context.Context, title string) (*Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	GetProjectCount(ctx context.Context) (int, error)

	CreateProject(ctx context.Context, project *Project) error
	UpdateProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, slug string) error
}

type UserRepository interface {
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
}

type FavoriteRepository interface {
	ListFavorites(ctx context.Context, userID int64) ([]Favorite, error)
	GetFavorite(ctx context.Context, userID, projectID int64) (*Favorite, error)
	CreateFavorite(ctx context.Context, favorite *Favorite) error
	DeleteFavorite(ctx context.Context, userID, projectID int64) error
}

// Session is a unit of work over one database transaction. Savepoints let
// a caller undo part of the pending work without losing the rest.
type Session interface {
	Articles() ArticleRepository
	Projects() ProjectRepository

	Savepoint(ctx context.Context, name string) error
	RollbackTo(ctx context.Context, name string) error
	Release(ctx context.Context, name string) error

	Commit() error
	Rollback() error
}

type SessionFactory interface {
	Begin(ctx context.Context) (Session, error)
}
