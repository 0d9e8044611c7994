package importer

import "fmt"

type Kind string

const (
	KindArticle Kind = "article"
	KindProject Kind = "project"
)

type Outcome string

const (
	Created Outcome = "created"
	Updated Outcome = "updated"
	Skipped Outcome = "skipped"
	Failed  Outcome = "failed"
)

type Reason string

const (
	ReasonNoSlug    Reason = "no-slug"
	ReasonDuplicate Reason = "duplicate"
)

const unknownTitle = "desconocido"

// Result is the outcome of one input record. Identity is the slug for
// created and updated records, otherwise the label the operator sees.
type Result struct {
	Kind     Kind
	Identity string
	Outcome  Outcome
	Reason   Reason
	Detail   string
}

func (r Result) String() string {
	switch r.Kind {
	case KindArticle:
		switch r.Outcome {
		case Created:
			return "Artículo creado: " + r.Identity
		case Updated:
			return "Artículo actualizado: " + r.Identity
		}
	case KindProject:
		switch r.Outcome {
		case Created:
			return "Proyecto creado: " + r.Identity
		case Updated:
			return "Proyecto actualizado: " + r.Identity
		case Skipped:
			if r.Reason == ReasonDuplicate {
				return fmt.Sprintf("Proyecto '%s' ya existe.", r.Identity)
			}
			return fmt.Sprintf("Proyecto omitido (sin slug): '%s'", r.Identity)
		case Failed:
			return fmt.Sprintf("Error con proyecto '%s': %s", r.Identity, r.Detail)
		}
	}
	return fmt.Sprintf("%s %s: %s", r.Kind, r.Outcome, r.Identity)
}

// Report collects results in input order. Err is set when the batch as a
// whole could not be persisted; results listed before it did not survive.
type Report struct {
	Results []Result
	Err     error
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
}

// Lines renders the report as operator console lines.
func (r *Report) Lines() []string {
	lines := make([]string, 0, len(r.Results)+1)
	for _, res := range r.Results {
		lines = append(lines, res.String())
	}
	if r.Err != nil {
		lines = append(lines, "Error general en la importación: "+r.Err.Error())
	}
	return lines
}

func (r *Report) Count(outcome Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}
