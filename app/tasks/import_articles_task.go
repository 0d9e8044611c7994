package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/boostaproject/bap-api/app/database"
	"github.com/boostaproject/bap-api/app/importer"
	"github.com/boostaproject/bap-api/app/source"
)

type ImportArticlesTask struct {
	Task
	Path string
	// OnlyIfEmpty skips the import when any article is already stored.
	OnlyIfEmpty bool

	Existing int
	Report   *importer.Report

	loader   *source.Loader
	importer *importer.Importer
	articles database.ArticleRepository
}

func NewImportArticlesTask(path string, onlyIfEmpty bool, loader *source.Loader,
	imp *importer.Importer, articles database.ArticleRepository) *ImportArticlesTask {
	return &ImportArticlesTask{
		Task:        NewTask(TaskTypeImportArticles),
		Path:        path,
		OnlyIfEmpty: onlyIfEmpty,
		loader:      loader,
		importer:    imp,
		articles:    articles,
	}
}

func (t *ImportArticlesTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if t.OnlyIfEmpty {
		count, err := t.articles.GetArticleCount(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			t.Existing = count
			slog.Info("Articles already present, skipping import", "count", count)
			return nil
		}
	}

	batch, err := t.loader.Load(t.Path)
	if err != nil {
		return fmt.Errorf("failed to load articles: %w", err)
	}

	report, err := t.importer.ImportArticles(ctx, batch.Records)
	t.Report = report
	logReport(t.Type, report)
	if err != nil {
		return err
	}

	slog.Info("Task completed",
		"type", string(t.Type),
		"path", t.Path,
		"created", report.Count(importer.Created),
		"updated", report.Count(importer.Updated),
		"duration", t.GetDuration())

	return nil
}

// logReport writes every operator line to the application log.
func logReport(taskType TaskType, report *importer.Report) {
	if report == nil {
		return
	}
	for _, line := range report.Lines() {
		slog.Info(line, "type", string(taskType))
	}
}
