package importer

import (
	"errors"
	"testing"
)

func TestResultString(t *testing.T) {
	tests := []struct {
		result Result
		want   string
	}{
		{Result{Kind: KindArticle, Identity: "a", Outcome: Created}, "Artículo creado: a"},
		{Result{Kind: KindArticle, Identity: "a", Outcome: Updated}, "Artículo actualizado: a"},
		{Result{Kind: KindProject, Identity: "p", Outcome: Created}, "Proyecto creado: p"},
		{Result{Kind: KindProject, Identity: "p", Outcome: Updated}, "Proyecto actualizado: p"},
		{Result{Kind: KindProject, Identity: "T", Outcome: Skipped, Reason: ReasonNoSlug}, "Proyecto omitido (sin slug): 'T'"},
		{Result{Kind: KindProject, Identity: "p", Outcome: Skipped, Reason: ReasonDuplicate}, "Proyecto 'p' ya existe."},
		{Result{Kind: KindProject, Identity: "T", Outcome: Failed, Detail: "boom"}, "Error con proyecto 'T': boom"},
	}
	for _, tt := range tests {
		if got := tt.result.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestReportLinesWithBatchError(t *testing.T) {
	report := &Report{Err: errors.New("locked")}
	report.add(Result{Kind: KindProject, Identity: "a", Outcome: Created})

	assertLines(t, report, "Proyecto creado: a", "Error general en la importación: locked")
}
