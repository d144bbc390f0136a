package agent

// classify deriva a CTA do rasto de ferramentas de uma troca, pela ordem
// de execução. A última invocação qualificada decide; nunca há
// empilhamento de CTAs.
func classify(trace []ToolOutcome) CTA {
	cta := CTA{Type: ActionNone}
	for _, outcome := range trace {
		switch result := outcome.Result.(type) {
		case Navigation:
			cta = CTA{Type: ActionViewResults, Data: result}
		case BookingProposal:
			cta = CTA{Type: ActionBookingProposal, Data: result}
		case SearchResult:
			if result.Count == 0 {
				cta = CTA{Type: ActionNoResults}
			}
		}
	}
	return cta
}
