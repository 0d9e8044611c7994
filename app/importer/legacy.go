package importer

import (
	"github.com/boostaproject/bap-api/app/slug"
)

var legacyStatuses = map[string]string{
	"Abierto":    "open",
	"Cerrado":    "closed",
	"Completado": "funded",
	"Cancelado":  "closed",
	"open":       "open",
	"active":     "active",
	"funded":     "funded",
	"closed":     "closed",
}

// legacyTextSections lists the free-text fields that become content blocks,
// in display order.
var legacyTextSections = []struct {
	key   string
	title string
}{
	{"financial_structure_text", "Estructura financiera"},
	{"rentability_projection", "Proyección de rentabilidad"},
	{"risk_analysis", "Análisis de riesgos"},
	{"team_description", "Equipo"},
}

// mapLegacyProject converts a rigid real-estate record into the generic
// project shape. Absent and null fields are dropped so defaults apply.
func mapLegacyProject(rec Record) (Record, error) {
	out := Record{}

	for _, key := range []string{"title", "subtitle", "description", "category", "featured", "priority", "gallery"} {
		if v := rec[key]; v != nil {
			out[key] = v
		}
	}

	if s, ok := rec.label("slug"); ok {
		out["slug"] = s
	} else if title, ok := rec.label("title"); ok {
		if derived := slug.Make(title); derived != "" {
			out["slug"] = derived
		}
	}

	if v := firstOf(rec, "main_image_url", "image_url"); v != nil {
		out["main_image_url"] = v
	}

	if rec["status"] != nil {
		label, err := rec.str("status")
		if err != nil {
			return nil, err
		}
		status, ok := legacyStatuses[label]
		if !ok {
			status = "open"
		}
		out["status"] = status
	}

	investment := map[string]any{}
	if existing, ok := normalize(rec["investment_data"]).(map[string]any); ok {
		for k, v := range existing {
			investment[k] = v
		}
	}
	setIf(investment, "total_investment", rec["investment_goal"])
	setIf(investment, "min_investment", firstOf(rec, "investment_min", "min_investment"))
	if v := rec["expected_return"]; v != nil {
		investment["expected_return"] = toText(v)
	}
	if v := rec["optimistic_return"]; v != nil {
		investment["optimistic_return"] = toText(v)
	}
	setIf(investment, "estimated_duration", rec["estimated_duration"])
	setIf(investment, "investment_type", rec["investment_type"])
	setIf(investment, "external_link", rec["external_link"])
	setIf(investment, "financial_breakdown", normalize(rec["financial_structure"]))

	specs := map[string]any{}
	setIf(specs, "surface_m2", firstOf(rec, "area_m2", "surface_m2"))
	setIf(specs, "rooms", rec["rooms"])
	setIf(specs, "bathrooms", rec["bathrooms"])
	setIf(specs, "address", rec["location"])
	if len(specs) > 0 {
		investment["property_specs"] = specs
	}
	if len(investment) > 0 {
		out["investment_data"] = investment
	}

	var sections []any
	for _, s := range legacyTextSections {
		v := rec[s.key]
		if v == nil {
			continue
		}
		text := toText(v)
		if text == "" {
			continue
		}
		sections = append(sections, map[string]any{
			"type":    "text",
			"key":     s.key,
			"title":   s.title,
			"content": text,
		})
	}
	if v := rec["risk_mitigations"]; v != nil {
		sections = append(sections, map[string]any{
			"type":  "risks",
			"title": "Mitigación de riesgos",
			"items": normalize(v),
		})
	}
	if len(sections) > 0 {
		out["content_sections"] = sections
	}

	return out, nil
}

func firstOf(rec Record, keys ...string) any {
	for _, key := range keys {
		if v := rec[key]; v != nil {
			return v
		}
	}
	return nil
}

func setIf(m map[string]any, key string, v any) {
	if v != nil {
		m[key] = v
	}
}
