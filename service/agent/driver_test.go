package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"makini-agent-backend/model"

	"github.com/tmc/langchaingo/llms"
)

// scriptedModel devolve uma resposta programada por ronda e guarda as
// mensagens recebidas em cada chamada.
type scriptedModel struct {
	responses []*llms.ContentResponse
	err       error
	block     bool

	calls [][]llms.MessageContent
}

func (m *scriptedModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	m.calls = append(m.calls, messages)
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "sem guião"}}}, nil
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	return next, nil
}

func (m *scriptedModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	resp, err := m.GenerateContent(ctx, []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)}, options...)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Content, nil
}

func textResponse(content string) *llms.ContentResponse {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: content}}}
}

func toolResponse(calls ...llms.ToolCall) *llms.ContentResponse {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{ToolCalls: calls}}}
}

func TestDriverExchangeTextOnly(t *testing.T) {
	llm := &scriptedModel{responses: []*llms.ContentResponse{
		textResponse("Olá! Que equipamento procura?"),
	}}
	d := NewDriver(llm, &fakeStorage{})

	result, err := d.Exchange(context.Background(), "olá", nil)
	if err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}
	if result.Message != "Olá! Que equipamento procura?" {
		t.Errorf("unexpected message: %q", result.Message)
	}
	if result.Action.Type != ActionNone {
		t.Errorf("action = %s, want %s", result.Action.Type, ActionNone)
	}
}

func TestDriverExchangeBuildsMessageWindow(t *testing.T) {
	llm := &scriptedModel{responses: []*llms.ContentResponse{textResponse("ok")}}
	d := NewDriver(llm, &fakeStorage{})

	history := []Turn{
		{Role: RoleUser, Content: "procuro um trator"},
		{Role: RoleAssistant, Content: "em que província?"},
	}
	if _, err := d.Exchange(context.Background(), "no Huambo", history); err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}

	msgs := llm.calls[0]
	// Sistema + 2 de histórico + mensagem atual.
	if len(msgs) != 4 {
		t.Fatalf("messages = %d, want 4", len(msgs))
	}
	if msgs[0].Role != llms.ChatMessageTypeSystem {
		t.Errorf("first role = %s, want system", msgs[0].Role)
	}
	if msgs[1].Role != llms.ChatMessageTypeHuman || msgs[2].Role != llms.ChatMessageTypeAI {
		t.Errorf("history roles = %s, %s", msgs[1].Role, msgs[2].Role)
	}
	if msgs[3].Role != llms.ChatMessageTypeHuman {
		t.Errorf("last role = %s, want human", msgs[3].Role)
	}
}

func TestDriverExchangeToolRound(t *testing.T) {
	store := &fakeStorage{searchResults: [][]model.Listing{{
		{ID: "anuncio-1", Titulo: "Trator 90cv", Localizacao: "Huambo"},
	}}}
	llm := &scriptedModel{responses: []*llms.ContentResponse{
		toolResponse(llms.ToolCall{
			ID:   "call-1",
			Type: "function",
			FunctionCall: &llms.FunctionCall{
				Name:      ToolSearchEquipment,
				Arguments: `{"location":"Huambo","equipment_type":"trator"}`,
			},
		}),
		textResponse("Encontrei 1 trator no Huambo."),
	}}
	d := NewDriver(llm, store)

	result, err := d.Exchange(context.Background(), "procuro um trator no huambo", nil)
	if err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}
	if result.Message != "Encontrei 1 trator no Huambo." {
		t.Errorf("unexpected message: %q", result.Message)
	}
	if len(store.searchCalls) != 1 {
		t.Fatalf("search calls = %d, want 1", len(store.searchCalls))
	}

	// A segunda ronda tem de carregar o pedido e a resposta da ferramenta.
	second := llm.calls[1]
	sawToolResponse := false
	for _, msg := range second {
		if msg.Role != llms.ChatMessageTypeTool {
			continue
		}
		for _, part := range msg.Parts {
			if tr, ok := part.(llms.ToolCallResponse); ok && tr.ToolCallID == "call-1" {
				sawToolResponse = true
			}
		}
	}
	if !sawToolResponse {
		t.Error("second round is missing the tool call response")
	}
}

func TestDriverExchangeServesOnlyFirstToolCallOfBatch(t *testing.T) {
	store := &fakeStorage{}
	llm := &scriptedModel{responses: []*llms.ContentResponse{
		toolResponse(
			llms.ToolCall{
				ID:   "call-1",
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      ToolSearchEquipment,
					Arguments: `{"location":"Bié","equipment_type":"semeadora"}`,
				},
			},
			llms.ToolCall{
				ID:   "call-2",
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      ToolGetProviderDetails,
					Arguments: `{"provider_id":"anuncio-9"}`,
				},
			},
		),
		textResponse("Não encontrei semeadoras no Bié."),
	}}
	d := NewDriver(llm, store)

	result, err := d.Exchange(context.Background(), "semeadora no bié", nil)
	if err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}
	if len(store.searchCalls) != 1 {
		t.Errorf("search calls = %d, want 1", len(store.searchCalls))
	}
	if result.Action.Type != ActionNoResults {
		t.Errorf("action = %s, want %s", result.Action.Type, ActionNoResults)
	}
}

func TestDriverExchangeRoundLimit(t *testing.T) {
	call := llms.ToolCall{
		ID:   "call-loop",
		Type: "function",
		FunctionCall: &llms.FunctionCall{
			Name:      ToolNavigateToResults,
			Arguments: `{"page":"resultados"}`,
		},
	}
	responses := make([]*llms.ContentResponse, 0, maxRounds+1)
	for i := 0; i <= maxRounds; i++ {
		responses = append(responses, toolResponse(call))
	}
	d := NewDriver(&scriptedModel{responses: responses}, &fakeStorage{})

	result, err := d.Exchange(context.Background(), "naveguem para sempre", nil)
	if err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}
	if result.Action.Type != ActionError {
		t.Errorf("action = %s, want %s", result.Action.Type, ActionError)
	}
	if result.Message != msgGeneric {
		t.Errorf("message = %q, want %q", result.Message, msgGeneric)
	}
}

func TestDriverExchangeTimeout(t *testing.T) {
	d := NewDriver(&scriptedModel{block: true}, &fakeStorage{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	result, err := d.Exchange(ctx, "olá", nil)
	if err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}
	if result.Message != msgTimeout {
		t.Errorf("message = %q, want %q", result.Message, msgTimeout)
	}
	if result.Action.Type != ActionError {
		t.Errorf("action = %s, want %s", result.Action.Type, ActionError)
	}
}

func TestDriverExchangeProviderFailure(t *testing.T) {
	d := NewDriver(&scriptedModel{err: errors.New("API returned unexpected status code: 429 Too Many Requests")}, &fakeStorage{})

	result, err := d.Exchange(context.Background(), "olá", nil)
	if err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}
	if result.Action.Type != ActionRateLimited {
		t.Errorf("action = %s, want %s", result.Action.Type, ActionRateLimited)
	}
}

func TestDriverExchangeEmptyChoices(t *testing.T) {
	d := NewDriver(&scriptedModel{responses: []*llms.ContentResponse{{}}}, &fakeStorage{})

	result, err := d.Exchange(context.Background(), "olá", nil)
	if err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}
	if result.Message != msgGeneric || result.Action.Type != ActionError {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestDriverExchangeWithoutModel(t *testing.T) {
	d := NewDriver(nil, &fakeStorage{})

	result, err := d.Exchange(context.Background(), "olá", nil)
	if err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}
	if result.Message != msgMissingCredential {
		t.Errorf("message = %q, want %q", result.Message, msgMissingCredential)
	}
	if result.Action.Type != ActionError {
		t.Errorf("action = %s, want %s", result.Action.Type, ActionError)
	}
}
