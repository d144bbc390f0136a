package agent

import (
	"strings"
	"testing"
)

func TestToolDefinitions(t *testing.T) {
	defs := toolDefinitions()
	if len(defs) != 5 {
		t.Fatalf("tools = %d, want 5", len(defs))
	}

	wantRequired := map[string][]string{
		ToolSearchEquipment:       {"location", "equipment_type"},
		ToolCheckAvailability:     {"provider_id", "start_date"},
		ToolGetProviderDetails:    {"provider_id"},
		ToolCreateBookingProposal: {"provider_id", "start_date", "duration_days"},
		ToolNavigateToResults:     {"page"},
	}

	for _, def := range defs {
		if def.Type != "function" || def.Function == nil {
			t.Fatalf("malformed tool definition: %+v", def)
		}
		want, ok := wantRequired[def.Function.Name]
		if !ok {
			t.Errorf("unexpected tool %q", def.Function.Name)
			continue
		}
		delete(wantRequired, def.Function.Name)

		params, ok := def.Function.Parameters.(map[string]any)
		if !ok {
			t.Fatalf("%s: parameters type = %T", def.Function.Name, def.Function.Parameters)
		}
		required, _ := params["required"].([]string)
		if len(required) != len(want) {
			t.Errorf("%s: required = %v, want %v", def.Function.Name, required, want)
			continue
		}
		for i, field := range want {
			if required[i] != field {
				t.Errorf("%s: required[%d] = %q, want %q", def.Function.Name, i, required[i], field)
			}
		}

		properties, ok := params["properties"].(map[string]any)
		if !ok {
			t.Fatalf("%s: missing properties", def.Function.Name)
		}
		for _, field := range want {
			if _, ok := properties[field]; !ok {
				t.Errorf("%s: required field %q not declared in properties", def.Function.Name, field)
			}
		}
	}

	for name := range wantRequired {
		t.Errorf("tool %q not defined", name)
	}
}

func TestSystemInstructions(t *testing.T) {
	instructions := systemInstructions()

	for _, fragment := range []string{
		"Makini",
		"Normalização de termos",
		"Sinónimos de equipamentos",
		"Categorias válidas",
	} {
		if !strings.Contains(instructions, fragment) {
			t.Errorf("instructions missing %q", fragment)
		}
	}
}
