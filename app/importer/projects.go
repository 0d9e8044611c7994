package importer

import (
	"context"
	"fmt"

	"github.com/boostaproject/bap-api/app/database"
)

type ProjectOptions struct {
	// Legacy treats records as the rigid real-estate format: fields are
	// remapped into the generic shape and an existing slug or title is
	// skipped instead of updated.
	Legacy bool
}

// ImportProjects stages every record inside one session and commits once at
// the end. A failing record is rolled back to its own savepoint and reported;
// a failing commit discards the whole batch and sets Report.Err.
func (imp *Importer) ImportProjects(ctx context.Context, records []Record, opts ProjectOptions) *Report {
	report := &Report{}

	session, err := imp.sessions.Begin(ctx)
	if err != nil {
		report.Err = err
		return report
	}

	abort := func(err error) *Report {
		session.Rollback()
		report.Err = err
		return report
	}

	for i, rec := range records {
		sp := fmt.Sprintf("sp_%d", i)
		if err := session.Savepoint(ctx, sp); err != nil {
			return abort(err)
		}

		var res Result
		if opts.Legacy {
			res, err = imp.importLegacyProject(ctx, session.Projects(), rec)
		} else {
			res, err = imp.importProject(ctx, session.Projects(), rec)
		}
		if err != nil {
			if rbErr := session.RollbackTo(ctx, sp); rbErr != nil {
				return abort(rbErr)
			}
			res = Result{Kind: KindProject, Identity: titleOf(rec), Outcome: Failed, Detail: err.Error()}
		}

		if err := session.Release(ctx, sp); err != nil {
			return abort(err)
		}
		report.add(res)
	}

	if err := session.Commit(); err != nil {
		return abort(err)
	}

	return report
}

func (imp *Importer) importProject(ctx context.Context, repo database.ProjectRepository, rec Record) (Result, error) {
	slug, ok := rec.label("slug")
	if !ok {
		return Result{Kind: KindProject, Identity: titleOf(rec), Outcome: Skipped, Reason: ReasonNoSlug}, nil
	}

	existing, err := repo.GetProject(ctx, slug)
	if err != nil {
		return Result{}, err
	}
	if existing == nil {
		return imp.createProject(ctx, repo, slug, rec)
	}

	if err := mergeProject(existing, rec); err != nil {
		return Result{}, err
	}
	now := imp.now()
	existing.UpdatedAt = &now

	if err := repo.UpdateProject(ctx, existing); err != nil {
		return Result{}, err
	}

	return Result{Kind: KindProject, Identity: slug, Outcome: Updated}, nil
}

func (imp *Importer) importLegacyProject(ctx context.Context, repo database.ProjectRepository, rec Record) (Result, error) {
	mapped, err := mapLegacyProject(rec)
	if err != nil {
		return Result{}, err
	}

	slug, hasSlug := mapped.label("slug")
	title, hasTitle := mapped.label("title")

	var existing *database.Project
	if hasSlug {
		if existing, err = repo.GetProject(ctx, slug); err != nil {
			return Result{}, err
		}
	}
	if existing == nil && hasTitle {
		if existing, err = repo.GetProjectByTitle(ctx, title); err != nil {
			return Result{}, err
		}
	}
	if existing != nil {
		identity, ok := rec.label("slug")
		if !ok {
			identity = title
		}
		return Result{Kind: KindProject, Identity: identity, Outcome: Skipped, Reason: ReasonDuplicate}, nil
	}

	if !hasSlug {
		return Result{Kind: KindProject, Identity: titleOf(rec), Outcome: Skipped, Reason: ReasonNoSlug}, nil
	}

	return imp.createProject(ctx, repo, slug, mapped)
}

func (imp *Importer) createProject(ctx context.Context, repo database.ProjectRepository, slug string, rec Record) (Result, error) {
	project := &database.Project{
		Slug:   slug,
		Status: database.ProjectStatusOpen,
	}
	if err := mergeProject(project, rec); err != nil {
		return Result{}, err
	}
	project.Views = 0
	project.CreatedAt = imp.now()

	if err := repo.CreateProject(ctx, project); err != nil {
		return Result{}, err
	}

	return Result{Kind: KindProject, Identity: slug, Outcome: Created}, nil
}

// mergeProject overwrites each mutable field whose key is present in rec,
// even when the value is falsy. Absent keys leave the field untouched.
func mergeProject(p *database.Project, rec Record) error {
	var err error
	for _, key := range []string{
		"title", "subtitle", "description", "status", "category", "featured",
		"priority", "main_image_url", "gallery", "investment_data", "content_sections",
	} {
		if !rec.has(key) {
			continue
		}

		switch key {
		case "title":
			p.Title, err = rec.str(key)
		case "subtitle":
			p.Subtitle, err = rec.str(key)
		case "description":
			p.Description, err = rec.str(key)
		case "category":
			p.Category, err = rec.str(key)
		case "main_image_url":
			p.MainImageURL, err = rec.str(key)
		case "status":
			p.Status, err = rec.str(key)
			if err == nil && p.Status == "" {
				p.Status = database.ProjectStatusOpen
			}
		case "featured":
			p.Featured, err = rec.boolean(key)
		case "priority":
			p.Priority, err = rec.integer(key)
		case "gallery":
			p.Gallery, err = rec.rawJSON(key)
		case "investment_data":
			p.InvestmentData, err = rec.rawJSON(key)
		case "content_sections":
			p.ContentSections, err = rec.rawJSON(key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
