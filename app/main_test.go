package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boostaproject/bap-api/app/database"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	prev := stdout
	stdout = buf
	t.Cleanup(func() { stdout = prev })
	return buf
}

func setupDataDir(t *testing.T) (dataDir, dbPath string) {
	t.Helper()

	root := t.TempDir()
	dataDir = filepath.Join(root, "data")
	if err := os.MkdirAll(filepath.Join(dataDir, "projects"), 0o755); err != nil {
		t.Fatalf("Failed to create data dir: %v", err)
	}
	return dataDir, filepath.Join(root, "db", "bap.db")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestImportProjectsCommand(t *testing.T) {
	out := captureStdout(t)
	dataDir, dbPath := setupDataDir(t)

	writeFile(t, filepath.Join(dataDir, "projects", "a.json"),
		`[{"slug": "uno", "title": "Uno"}, {"slug": "dos", "title": "Dos"}]`)
	writeFile(t, filepath.Join(dataDir, "projects", "b.json"), `{"slug": "tres", "title": "Tres"}`)
	writeFile(t, filepath.Join(dataDir, "projects", "c.json"), `{not json`)

	err := run(context.Background(), []string{"--db-path", dbPath, "--data-dir", dataDir, "import-projects"})
	if err != nil {
		t.Fatalf("import-projects failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"📂 Encontrados 3 archivo(s)",
		"✓ a.json - 2 proyecto(s)",
		"✓ b.json - 1 proyecto",
		"✗ Error parseando c.json",
		"🔄 Importando 3 proyecto(s)...",
		"Proyecto creado: uno",
		"Proyecto creado: dos",
		"Proyecto creado: tres",
		"✅ Importación de proyectos completada",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, got)
		}
	}

	db, err := database.NewConnection(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db.Close()

	count, err := database.NewProjectRepository(db).GetProjectCount(context.Background())
	if err != nil {
		t.Fatalf("GetProjectCount failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 projects, got %d", count)
	}
}

func TestImportArticlesCommand(t *testing.T) {
	out := captureStdout(t)
	dataDir, dbPath := setupDataDir(t)

	writeFile(t, filepath.Join(dataDir, "articles.json"), `[
	  {"slug": "a1", "title": "A1", "excerpt": "", "image": "", "content": "",
	   "meta_description": "", "meta_keywords": ""}
	]`)

	args := []string{"--db-path", dbPath, "--data-dir", dataDir, "import-articles"}
	if err := run(context.Background(), args); err != nil {
		t.Fatalf("First import failed: %v", err)
	}
	if err := run(context.Background(), args); err != nil {
		t.Fatalf("Second import failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Artículo creado: a1") {
		t.Errorf("Expected created line, got:\n%s", got)
	}
	if !strings.Contains(got, "Artículo actualizado: a1") {
		t.Errorf("Expected updated line, got:\n%s", got)
	}
}

func TestImportArticlesCommand_MissingFile(t *testing.T) {
	out := captureStdout(t)
	dataDir, dbPath := setupDataDir(t)

	err := run(context.Background(), []string{"--db-path", dbPath, "--data-dir", dataDir, "import-articles"})
	if err != nil {
		t.Fatalf("Expected missing file to be reported, not returned: %v", err)
	}
	if !strings.Contains(out.String(), "✗ Archivo no encontrado") {
		t.Errorf("Expected not-found message, got:\n%s", out.String())
	}
}

func TestInitDataCommand(t *testing.T) {
	out := captureStdout(t)
	dataDir, dbPath := setupDataDir(t)

	writeFile(t, filepath.Join(dataDir, "projects", "p.json"), `{"slug": "uno", "title": "Uno"}`)

	args := []string{
		"--db-path", dbPath, "--data-dir", dataDir,
		"--admin-email", "admin@example.com", "--admin-password", "secret123",
		"init-data",
	}
	if err := run(context.Background(), args); err != nil {
		t.Fatalf("init-data failed: %v", err)
	}
	if err := run(context.Background(), args); err != nil {
		t.Fatalf("Second init-data failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"✅ Usuario administrador creado correctamente.",
		"✅ Proyectos: 1 creados, 0 actualizados, 0 omitidos, 0 con error",
		"⚠️  Ya existe un usuario administrador con este email.",
		"ℹ️  Ya existen 1 proyectos, importación omitida",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestServeCommand_RequiresSecret(t *testing.T) {
	dataDir, dbPath := setupDataDir(t)
	t.Setenv("JWT_SECRET", "")

	err := run(context.Background(), []string{"--db-path", dbPath, "--data-dir", dataDir, "serve"})
	if err == nil || !strings.Contains(err.Error(), "jwt secret") {
		t.Errorf("Expected jwt secret error, got %v", err)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	if err := run(context.Background(), []string{"nope"}); err == nil {
		t.Error("Expected error for unknown command")
	}
}
