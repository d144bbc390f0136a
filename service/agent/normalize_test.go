package agent

import (
	"strings"
	"testing"

	"makini-agent-backend/model"
)

func TestCanonicalEquipmentType(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      string
		wantFound bool
	}{
		{name: "exact", raw: "trator", want: "trator", wantFound: true},
		{name: "english spelling", raw: "tractor", want: "trator", wantFound: true},
		{name: "accented variant", raw: "trátor", want: "trator", wantFound: true},
		{name: "uppercase with spaces", raw: "  CAMIÃO ", want: "camião", wantFound: true},
		{name: "brazilian spelling", raw: "caminhão", want: "camião", wantFound: true},
		{name: "neighbour term", raw: "ceifeira", want: "colheitadeira", wantFound: true},
		{name: "plural", raw: "tratores", want: "trator", wantFound: true},
		{name: "unknown", raw: "escavadora", want: "", wantFound: false},
		{name: "empty", raw: "", want: "", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := canonicalEquipmentType(tt.raw)
			if found != tt.wantFound || got != tt.want {
				t.Errorf("canonicalEquipmentType(%q) = (%q, %v), want (%q, %v)",
					tt.raw, got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestCategoryForActivity(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      string
		wantFound bool
	}{
		{name: "lavrar", raw: "lavrar", want: model.CategoriaPreparacaoSolo, wantFound: true},
		{name: "semear", raw: "Semear", want: model.CategoriaPlantio, wantFound: true},
		{name: "pulverizar", raw: "pulverizar", want: model.CategoriaInsumos, wantFound: true},
		{name: "harvest transport", raw: "transporte de colheita", want: model.CategoriaColheita, wantFound: true},
		{name: "unknown activity", raw: "pescar", want: "", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := categoryForActivity(tt.raw)
			if found != tt.wantFound || got != tt.want {
				t.Errorf("categoryForActivity(%q) = (%q, %v), want (%q, %v)",
					tt.raw, got, found, tt.want, tt.wantFound)
			}
		})
	}
}

func TestNormalizationGuidanceCoversTables(t *testing.T) {
	guidance := normalizationGuidance()

	for raw, canonical := range equipmentSynonyms {
		if !strings.Contains(guidance, raw) || !strings.Contains(guidance, canonical) {
			t.Errorf("guidance missing synonym entry %q -> %q", raw, canonical)
		}
	}
	for activity, category := range activityIntents {
		if !strings.Contains(guidance, activity) || !strings.Contains(guidance, category) {
			t.Errorf("guidance missing activity entry %q -> %q", activity, category)
		}
	}
}
