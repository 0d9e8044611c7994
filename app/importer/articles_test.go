package importer

import (
	"context"
	"errors"
	"testing"
)

const articleJSON = `[{
	"id": 99,
	"slug": "guia-inversion",
	"title": "Guía de inversión",
	"excerpt": "Resumen",
	"image": "/img/guia.jpg",
	"image_alt": "Portada",
	"content": "<p>Contenido</p>",
	"meta_description": "desc",
	"meta_keywords": "inversion,guia",
	"author": "Equipo",
	"date": "2024-05-01",
	"related": ["otro-articulo"]
}]`

func TestImportArticlesCreateThenUpdate(t *testing.T) {
	store := newMemStore()
	imp := newTestImporter(store)
	ctx := context.Background()

	report, err := imp.ImportArticles(ctx, decodeRecords(t, articleJSON))
	if err != nil {
		t.Fatalf("ImportArticles failed: %v", err)
	}
	assertLines(t, report, "Artículo creado: guia-inversion")

	created := store.articles["guia-inversion"]
	if created.ID == 99 {
		t.Error("Expected incoming id to be ignored")
	}
	if created.Author != "Equipo" || len(created.Related) != 1 {
		t.Errorf("Expected optional fields to be stored, got %+v", created)
	}
	if created.UpdatedAt != nil {
		t.Error("Expected updated_at to stay unset on create")
	}

	report, err = imp.ImportArticles(ctx, decodeRecords(t, articleJSON))
	if err != nil {
		t.Fatalf("Second ImportArticles failed: %v", err)
	}
	assertLines(t, report, "Artículo actualizado: guia-inversion")

	if len(store.articles) != 1 {
		t.Errorf("Expected 1 stored article, got %d", len(store.articles))
	}
	updated := store.articles["guia-inversion"]
	if updated.ID != created.ID {
		t.Errorf("Expected id %d to be kept, got %d", created.ID, updated.ID)
	}
	if updated.UpdatedAt == nil || !updated.UpdatedAt.Equal(fixedNow) {
		t.Errorf("Expected updated_at %v, got %v", fixedNow, updated.UpdatedAt)
	}
}

func TestImportArticlesPreservesImageAlt(t *testing.T) {
	store := newMemStore()
	imp := newTestImporter(store)
	ctx := context.Background()

	if _, err := imp.ImportArticles(ctx, decodeRecords(t, articleJSON)); err != nil {
		t.Fatalf("ImportArticles failed: %v", err)
	}

	withoutAlt := decodeRecords(t, `[{
		"slug": "guia-inversion", "title": "Nuevo título", "excerpt": "e", "image": "i",
		"content": "c", "meta_description": "m", "meta_keywords": "k"
	}]`)
	if _, err := imp.ImportArticles(ctx, withoutAlt); err != nil {
		t.Fatalf("ImportArticles failed: %v", err)
	}

	a := store.articles["guia-inversion"]
	if a.Title != "Nuevo título" {
		t.Errorf("Expected title to be overwritten, got %q", a.Title)
	}
	if a.ImageAlt == nil || *a.ImageAlt != "Portada" {
		t.Errorf("Expected image_alt 'Portada' to be preserved, got %v", a.ImageAlt)
	}

	withAlt := decodeRecords(t, `[{
		"slug": "guia-inversion", "title": "t", "excerpt": "e", "image": "i",
		"content": "c", "meta_description": "m", "meta_keywords": "k", "image_alt": "Otra"
	}]`)
	if _, err := imp.ImportArticles(ctx, withAlt); err != nil {
		t.Fatalf("ImportArticles failed: %v", err)
	}
	if a := store.articles["guia-inversion"]; a.ImageAlt == nil || *a.ImageAlt != "Otra" {
		t.Errorf("Expected image_alt 'Otra', got %v", a.ImageAlt)
	}
}

func TestImportArticlesMalformedRecordAborts(t *testing.T) {
	store := newMemStore()
	imp := newTestImporter(store)

	records := decodeRecords(t, `[
		{"slug": "uno", "title": "t", "excerpt": "e", "image": "i", "content": "c", "meta_description": "m", "meta_keywords": "k"},
		{"title": "sin slug", "excerpt": "e", "image": "i", "content": "c", "meta_description": "m", "meta_keywords": "k"},
		{"slug": "tres", "title": "t", "excerpt": "e", "image": "i", "content": "c", "meta_description": "m", "meta_keywords": "k"}
	]`)

	report, err := imp.ImportArticles(context.Background(), records)
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("Expected ErrMalformedRecord, got %v", err)
	}

	var recErr *RecordError
	if !errors.As(err, &recErr) || recErr.Index != 1 || recErr.Key != "slug" {
		t.Errorf("Expected RecordError for record 1 key slug, got %v", err)
	}

	assertLines(t, report, "Artículo creado: uno")
	if _, ok := store.articles["uno"]; !ok {
		t.Error("Expected the first record to stay committed")
	}
	if _, ok := store.articles["tres"]; ok {
		t.Error("Expected records after the malformed one not to be imported")
	}
	if len(store.articles) != 1 {
		t.Errorf("Expected 1 stored article, got %d", len(store.articles))
	}
}

func TestImportArticlesRejectsNonStringField(t *testing.T) {
	imp := newTestImporter(newMemStore())

	records := decodeRecords(t, `[{"slug": "x", "title": 5, "excerpt": "e", "image": "i", "content": "c", "meta_description": "m", "meta_keywords": "k"}]`)
	_, err := imp.ImportArticles(context.Background(), records)
	if !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("Expected ErrMalformedRecord, got %v", err)
	}
}

func TestImportArticlesStorageErrorIsReturned(t *testing.T) {
	store := newMemStore()
	store.failCreate["roto"] = errors.New("disk full")
	imp := newTestImporter(store)

	records := decodeRecords(t, `[
		{"slug": "ok", "title": "t", "excerpt": "e", "image": "i", "content": "c", "meta_description": "m", "meta_keywords": "k"},
		{"slug": "roto", "title": "t", "excerpt": "e", "image": "i", "content": "c", "meta_description": "m", "meta_keywords": "k"}
	]`)

	report, err := imp.ImportArticles(context.Background(), records)
	if err == nil {
		t.Fatal("Expected storage error to be returned")
	}
	assertLines(t, report, "Artículo creado: ok")
	if store.commits != 1 {
		t.Errorf("Expected 1 commit, got %d", store.commits)
	}
}
