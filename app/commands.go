package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/boostaproject/bap-api/app/api"
	"github.com/boostaproject/bap-api/app/auth"
	"github.com/boostaproject/bap-api/app/cfg"
	"github.com/boostaproject/bap-api/app/database"
	"github.com/boostaproject/bap-api/app/importer"
	"github.com/boostaproject/bap-api/app/source"
	"github.com/boostaproject/bap-api/app/tasks"
)

const (
	tokenIssuer = "bap-api"
	separator   = "------------------------------------------------------------"
)

// stdout receives the operator-facing output of the import commands.
var stdout io.Writer = os.Stdout

func echo(format string, args ...any) {
	fmt.Fprintf(stdout, format+"\n", args...)
}

func openDatabase(c *cfg.Cfg) (*database.DB, error) {
	if dir := filepath.Dir(c.DBPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := database.NewConnection(c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	slog.Debug("Database ready", "path", c.DBPath, "version", version, "dirty", dirty)

	return db, nil
}

func articlesPath(c *cfg.Cfg, override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(c.DataDir, "articles.json")
}

func projectsPath(c *cfg.Cfg, override string) string {
	if override != "" {
		return override
	}
	return filepath.Join(c.DataDir, "projects")
}

type serveCommand struct {
	command
	Bootstrap bool `long:"bootstrap" env:"BOOTSTRAP" description:"Import seed articles and projects into empty tables before serving"`
	Legacy    bool `long:"legacy" description:"Read seed projects with the legacy field layout"`
}

func (s *serveCommand) Run(ctx context.Context, c *cfg.Cfg) error {
	if c.JWTSecret == "" {
		return errors.New("jwt secret is required to serve the API (set JWT_SECRET)")
	}

	slog.Info("Starting BAP API", "version", c.Version)

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if s.Bootstrap {
		if err := tasks.Run(ctx, bootstrapTasks(c, db, s.Legacy, true)...); err != nil {
			return err
		}
	}

	tokens := auth.NewTokens(c.JWTSecret, c.TokenTTL, tokenIssuer)
	handler := api.NewHandler(db, tokens, c.Version)
	server := api.NewServer(handler, c.CORSOrigins)

	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", c.Port, "base_url", c.BaseUrl)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case serveErr = <-serverErrChan:
		slog.Error("Server error", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	return serveErr
}

// bootstrapTasks builds the seed pipeline. Sources that do not exist are
// left out so a fresh checkout without seed data still starts.
func bootstrapTasks(c *cfg.Cfg, db *database.DB, legacy, onlyIfEmpty bool) []tasks.TaskInterface {
	var pipeline []tasks.TaskInterface

	if c.AdminEmail != "" && c.AdminPassword != "" {
		pipeline = append(pipeline, tasks.NewCreateAdminTask(tasks.AdminAccount{
			Email:    c.AdminEmail,
			Username: c.AdminUsername,
			LastName: c.AdminLastName,
			Password: c.AdminPassword,
		}, database.NewUserRepository(db)))
	}

	loader := source.NewLoader()
	imp := importer.New(db)

	if path := articlesPath(c, ""); exists(path) {
		pipeline = append(pipeline, tasks.NewImportArticlesTask(path, onlyIfEmpty, loader, imp,
			database.NewArticleRepository(db)))
	} else {
		slog.Warn("Article seed file not found", "path", path)
	}

	if path := projectsPath(c, ""); exists(path) {
		pipeline = append(pipeline, tasks.NewImportProjectsTask(path, importer.ProjectOptions{Legacy: legacy},
			onlyIfEmpty, loader, imp, database.NewProjectRepository(db)))
	} else {
		slog.Warn("Project seed directory not found", "path", path)
	}

	return pipeline
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

type migrateCommand struct {
	command
}

func (m *migrateCommand) Run(_ context.Context, c *cfg.Cfg) error {
	db, err := database.NewConnection(c.DBPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		return err
	}
	echo("✅ Migraciones aplicadas (versión %d, dirty=%t)", version, dirty)
	return nil
}

type importArticlesCommand struct {
	command
	File string `long:"file" short:"f" description:"Article source file (default: <data-dir>/articles.json)"`
}

func (i *importArticlesCommand) Run(ctx context.Context, c *cfg.Cfg) error {
	path := articlesPath(c, i.File)
	if !exists(path) {
		echo("✗ Archivo no encontrado: %s", path)
		return nil
	}

	batch, err := source.NewLoader().Load(path)
	if err != nil {
		echo("✗ Error: %v", err)
		return err
	}
	if failed := batch.Failed(); len(failed) > 0 {
		for _, f := range failed {
			echo("✗ Error parseando %s: %v", filepath.Base(f.Path), f.Err)
		}
		return failed[0].Err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	echo("📂 Encontrados %d artículos", len(batch.Records))
	echo(separator)

	report, err := importer.New(db).ImportArticles(ctx, batch.Records)
	printReport(report)
	if err != nil {
		echo("✗ Error: %v", err)
		return err
	}

	echo(separator)
	echo("✅ Importación de artículos completada")
	return nil
}

type importProjectsCommand struct {
	command
	Dir    string `long:"dir" short:"d" description:"Project source directory (default: <data-dir>/projects)"`
	Legacy bool   `long:"legacy" description:"Map the legacy project field layout before importing"`
}

func (i *importProjectsCommand) Run(ctx context.Context, c *cfg.Cfg) error {
	dir := projectsPath(c, i.Dir)
	if !exists(dir) {
		echo("✗ Directorio no encontrado: %s", dir)
		return nil
	}

	batch, err := source.NewLoader().Load(dir)
	if errors.Is(err, source.ErrNoFiles) {
		echo("✗ No se encontraron archivos importables en: %s", dir)
		return nil
	}
	if err != nil {
		return err
	}

	echo("📂 Encontrados %d archivo(s)", len(batch.Files))
	echo(separator)
	for _, f := range batch.Files {
		name := filepath.Base(f.Path)
		switch {
		case f.Err != nil:
			echo("✗ Error parseando %s: %v", name, f.Err)
		case f.Count == 1:
			echo("✓ %s - 1 proyecto", name)
		default:
			echo("✓ %s - %d proyecto(s)", name, f.Count)
		}
	}
	echo(separator)

	if len(batch.Records) == 0 {
		echo("✗ No se encontraron datos válidos")
		return nil
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	echo("🔄 Importando %d proyecto(s)...", len(batch.Records))
	echo(separator)

	report := importer.New(db).ImportProjects(ctx, batch.Records, importer.ProjectOptions{Legacy: i.Legacy})
	printReport(report)

	echo(separator)
	if report.Err != nil {
		return fmt.Errorf("project import rolled back: %w", report.Err)
	}
	echo("✅ Importación de proyectos completada")
	return nil
}

func printReport(report *importer.Report) {
	if report == nil {
		return
	}
	for _, line := range report.Lines() {
		echo("%s", line)
	}
}

type initDataCommand struct {
	command
	Legacy bool `long:"legacy" description:"Read seed projects with the legacy field layout"`
}

func (i *initDataCommand) Run(ctx context.Context, c *cfg.Cfg) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline := bootstrapTasks(c, db, i.Legacy, true)
	if err := tasks.Run(ctx, pipeline...); err != nil {
		return err
	}

	for _, task := range pipeline {
		switch t := task.(type) {
		case *tasks.CreateAdminTask:
			if t.Created {
				echo("✅ Usuario administrador creado correctamente.")
			} else {
				echo("⚠️  Ya existe un usuario administrador con este email.")
			}
		case *tasks.ImportArticlesTask:
			if t.Report == nil {
				echo("ℹ️  Ya existen %d artículos, importación omitida", t.Existing)
				continue
			}
			echo("✅ Artículos: %d creados, %d actualizados",
				t.Report.Count(importer.Created), t.Report.Count(importer.Updated))
		case *tasks.ImportProjectsTask:
			if t.Report == nil {
				echo("ℹ️  Ya existen %d proyectos, importación omitida", t.Existing)
				continue
			}
			echo("✅ Proyectos: %d creados, %d actualizados, %d omitidos, %d con error",
				t.Report.Count(importer.Created), t.Report.Count(importer.Updated),
				t.Report.Count(importer.Skipped), t.Report.Count(importer.Failed))
		}
	}
	return nil
}

type createAdminCommand struct {
	command
	Email    string `long:"email" description:"Administrator email (default: ADMIN_EMAIL)"`
	Username string `long:"username" description:"Administrator username (default: ADMIN_USERNAME)"`
	LastName string `long:"last-name" description:"Administrator last name (default: ADMIN_LAST_NAME)"`
	Password string `long:"password" description:"Administrator password (default: ADMIN_PASSWORD)"`
}

func (a *createAdminCommand) Run(ctx context.Context, c *cfg.Cfg) error {
	account := tasks.AdminAccount{
		Email:    cmp.Or(a.Email, c.AdminEmail),
		Username: cmp.Or(a.Username, c.AdminUsername),
		LastName: cmp.Or(a.LastName, c.AdminLastName),
		Password: cmp.Or(a.Password, c.AdminPassword),
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	task := tasks.NewCreateAdminTask(account, database.NewUserRepository(db))
	if err := tasks.Run(ctx, task); err != nil {
		return err
	}

	if task.Created {
		echo("✅ Usuario administrador creado correctamente.")
	} else {
		echo("⚠️  Ya existe un usuario administrador con este email.")
	}
	return nil
}
