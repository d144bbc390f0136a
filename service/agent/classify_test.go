package agent

import "testing"

func TestClassify(t *testing.T) {
	search := func(count int) ToolOutcome {
		items := make([]ListingSummary, count)
		return ToolOutcome{
			Name:   ToolSearchEquipment,
			Result: SearchResult{Items: items, Count: count, Found: count > 0},
		}
	}
	navigation := ToolOutcome{
		Name:   ToolNavigateToResults,
		Result: Navigation{NavigationSetup: true, Destination: "resultados"},
	}
	booking := ToolOutcome{
		Name: ToolCreateBookingProposal,
		Result: BookingProposal{
			ProposalReady: true,
			BookingData:   BookingArgs{ProviderID: "anuncio-1", StartDate: "2026-09-01", DurationDays: 3},
		},
	}

	tests := []struct {
		name  string
		trace []ToolOutcome
		want  ActionType
	}{
		{name: "empty trace", trace: nil, want: ActionNone},
		{name: "search with results", trace: []ToolOutcome{search(3)}, want: ActionNone},
		{name: "search without results", trace: []ToolOutcome{search(0)}, want: ActionNoResults},
		{name: "navigation", trace: []ToolOutcome{navigation}, want: ActionViewResults},
		{name: "booking proposal", trace: []ToolOutcome{booking}, want: ActionBookingProposal},
		{
			name:  "last qualifying wins",
			trace: []ToolOutcome{search(0), navigation, booking},
			want:  ActionBookingProposal,
		},
		{
			name:  "navigation after booking",
			trace: []ToolOutcome{booking, navigation},
			want:  ActionViewResults,
		},
		{
			name:  "non-empty search does not overwrite",
			trace: []ToolOutcome{navigation, search(2)},
			want:  ActionViewResults,
		},
		{
			name: "tool error is neutral",
			trace: []ToolOutcome{
				{Name: ToolGetProviderDetails, Result: ToolError{Error: "record not found"}},
			},
			want: ActionNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.trace)
			if got.Type != tt.want {
				t.Errorf("classify() = %s, want %s", got.Type, tt.want)
			}
		})
	}
}

func TestClassifyNavigationCarriesData(t *testing.T) {
	nav := Navigation{
		NavigationSetup: true,
		Destination:     "resultados",
		Parameters:      &NavigationFilters{Location: "Huambo"},
	}
	cta := classify([]ToolOutcome{{Name: ToolNavigateToResults, Result: nav}})

	got, ok := cta.Data.(Navigation)
	if !ok {
		t.Fatalf("cta data type = %T, want Navigation", cta.Data)
	}
	if got.Destination != "resultados" || got.Parameters.Location != "Huambo" {
		t.Errorf("unexpected navigation data: %+v", got)
	}
}
