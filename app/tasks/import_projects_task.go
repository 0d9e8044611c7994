package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/boostaproject/bap-api/app/database"
	"github.com/boostaproject/bap-api/app/importer"
	"github.com/boostaproject/bap-api/app/source"
)

type ImportProjectsTask struct {
	Task
	Path    string
	Options importer.ProjectOptions
	// OnlyIfEmpty skips the import when any project is already stored.
	OnlyIfEmpty bool

	Existing int
	Report   *importer.Report

	loader   *source.Loader
	importer *importer.Importer
	projects database.ProjectRepository
}

func NewImportProjectsTask(path string, opts importer.ProjectOptions, onlyIfEmpty bool,
	loader *source.Loader, imp *importer.Importer, projects database.ProjectRepository) *ImportProjectsTask {
	return &ImportProjectsTask{
		Task:        NewTask(TaskTypeImportProjects),
		Path:        path,
		Options:     opts,
		OnlyIfEmpty: onlyIfEmpty,
		loader:      loader,
		importer:    imp,
		projects:    projects,
	}
}

func (t *ImportProjectsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if t.OnlyIfEmpty {
		count, err := t.projects.GetProjectCount(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			t.Existing = count
			slog.Info("Projects already present, skipping import", "count", count)
			return nil
		}
	}

	batch, err := t.loader.Load(t.Path)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	report := t.importer.ImportProjects(ctx, batch.Records, t.Options)
	t.Report = report
	logReport(t.Type, report)
	if report.Err != nil {
		return fmt.Errorf("project batch was rolled back: %w", report.Err)
	}

	slog.Info("Task completed",
		"type", string(t.Type),
		"path", t.Path,
		"legacy", t.Options.Legacy,
		"created", report.Count(importer.Created),
		"updated", report.Count(importer.Updated),
		"skipped", report.Count(importer.Skipped),
		"failed", report.Count(importer.Failed),
		"duration", t.GetDuration())

	return nil
}
