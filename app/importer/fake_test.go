package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/boostaproject/bap-api/app/database"
)

// memStore is an in-memory SessionFactory. Each session works on a copy of
// the committed state and publishes it on Commit.
type memStore struct {
	articles map[string]database.Article
	projects map[string]database.Project
	nextID   int64

	failCreate map[string]error // project or article slug -> error
	commitErr  error
	commits    int
}

var _ database.SessionFactory = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		articles:   map[string]database.Article{},
		projects:   map[string]database.Project{},
		failCreate: map[string]error{},
	}
}

type memState struct {
	articles map[string]database.Article
	projects map[string]database.Project
	nextID   int64
}

func (s memState) clone() memState {
	c := memState{
		articles: make(map[string]database.Article, len(s.articles)),
		projects: make(map[string]database.Project, len(s.projects)),
		nextID:   s.nextID,
	}
	for k, v := range s.articles {
		c.articles[k] = v
	}
	for k, v := range s.projects {
		c.projects[k] = v
	}
	return c
}

func (m *memStore) Begin(ctx context.Context) (database.Session, error) {
	state := memState{articles: m.articles, projects: m.projects, nextID: m.nextID}.clone()
	return &memSession{store: m, state: state, savepoints: map[string]memState{}}, nil
}

type memSession struct {
	store      *memStore
	state      memState
	savepoints map[string]memState
	done       bool
}

func (s *memSession) Articles() database.ArticleRepository { return memArticles{s} }
func (s *memSession) Projects() database.ProjectRepository { return memProjects{s} }

func (s *memSession) Savepoint(ctx context.Context, name string) error {
	s.savepoints[name] = s.state.clone()
	return nil
}

func (s *memSession) RollbackTo(ctx context.Context, name string) error {
	snap, ok := s.savepoints[name]
	if !ok {
		return fmt.Errorf("no such savepoint: %s", name)
	}
	s.state = snap.clone()
	return nil
}

func (s *memSession) Release(ctx context.Context, name string) error {
	delete(s.savepoints, name)
	return nil
}

func (s *memSession) Commit() error {
	if s.done {
		return errors.New("session already closed")
	}
	s.done = true
	if s.store.commitErr != nil {
		return s.store.commitErr
	}
	s.store.articles = s.state.articles
	s.store.projects = s.state.projects
	s.store.nextID = s.state.nextID
	s.store.commits++
	return nil
}

func (s *memSession) Rollback() error {
	s.done = true
	return nil
}

type memArticles struct{ s *memSession }

func (r memArticles) GetArticle(ctx context.Context, slug string) (*database.Article, error) {
	a, ok := r.s.state.articles[slug]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r memArticles) ListArticles(ctx context.Context, limit, offset int) ([]database.Article, error) {
	var out []database.Article
	for _, a := range r.s.state.articles {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memArticles) GetArticleCount(ctx context.Context) (int, error) {
	return len(r.s.state.articles), nil
}

func (r memArticles) CreateArticle(ctx context.Context, a *database.Article) error {
	if err := r.s.store.failCreate[a.Slug]; err != nil {
		return err
	}
	if _, ok := r.s.state.articles[a.Slug]; ok {
		return errors.New("UNIQUE constraint failed: articles.slug")
	}
	r.s.state.nextID++
	a.ID = r.s.state.nextID
	r.s.state.articles[a.Slug] = *a
	return nil
}

func (r memArticles) UpdateArticle(ctx context.Context, a *database.Article) error {
	if _, ok := r.s.state.articles[a.Slug]; !ok {
		return database.ErrNotFound
	}
	r.s.state.articles[a.Slug] = *a
	return nil
}

func (r memArticles) DeleteArticle(ctx context.Context, slug string) error {
	delete(r.s.state.articles, slug)
	return nil
}

type memProjects struct{ s *memSession }

func (r memProjects) GetProject(ctx context.Context, slug string) (*database.Project, error) {
	p, ok := r.s.state.projects[slug]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProjects) GetProjectByID(ctx context.Context, id int64) (*database.Project, error) {
	for _, p := range r.s.state.projects {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (r memProjects) GetProjectByTitle(ctx context.Context, title string) (*database.Project, error) {
	for _, p := range r.s.state.projects {
		if p.Title == title {
			return &p, nil
		}
	}
	return nil, nil
}

func (r memProjects) ListProjects(ctx context.Context) ([]database.Project, error) {
	var out []database.Project
	for _, p := range r.s.state.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memProjects) GetProjectCount(ctx context.Context) (int, error) {
	return len(r.s.state.projects), nil
}

func (r memProjects) CreateProject(ctx context.Context, p *database.Project) error {
	if err := r.s.store.failCreate[p.Slug]; err != nil {
		return err
	}
	if _, ok := r.s.state.projects[p.Slug]; ok {
		return errors.New("UNIQUE constraint failed: projects.slug")
	}
	r.s.state.nextID++
	p.ID = r.s.state.nextID
	r.s.state.projects[p.Slug] = *p
	return nil
}

func (r memProjects) UpdateProject(ctx context.Context, p *database.Project) error {
	if _, ok := r.s.state.projects[p.Slug]; !ok {
		return database.ErrNotFound
	}
	r.s.state.projects[p.Slug] = *p
	return nil
}

func (r memProjects) DeleteProject(ctx context.Context, slug string) error {
	delete(r.s.state.projects, slug)
	return nil
}
