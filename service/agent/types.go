// Package agent implementa o assistente conversacional Makini: o ciclo
// de orquestração com o modelo generativo, o despacho das ferramentas de
// pesquisa e reserva sobre a base de dados e o estado de conversa por
// sessão.
package agent

import "context"

// Papéis de cada turno de conversa.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn é um turno imutável da conversa.
type Turn struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ActionType identifica a ação de interface sugerida após uma troca.
type ActionType string

const (
	ActionNone            ActionType = "NONE"
	ActionViewResults     ActionType = "VIEW_RESULTS"
	ActionBookingProposal ActionType = "BOOKING_PROPOSAL"
	ActionNoResults       ActionType = "NO_RESULTS"
	ActionRateLimited     ActionType = "RATE_LIMITED"
	ActionError           ActionType = "ERROR"
)

// CTA é a chamada-à-ação entregue ao cliente. Existe no máximo uma CTA
// ativa por sessão; é substituída a cada troca e limpa quando o
// utilizador envia nova mensagem.
type CTA struct {
	Type ActionType `json:"type"`
	Data any        `json:"data,omitempty"`
}

// ExchangeResult é o resultado de uma troca completa com o modelo.
type ExchangeResult struct {
	Message string
	Action  CTA
}

// Exchanger conduz uma troca completa: mensagem do utilizador mais a
// janela de histórico, devolvendo a resposta final e a ação associada.
// Falhas de transporte e do fornecedor são traduzidas para um
// ExchangeResult com ação de erro; o erro devolvido fica reservado a
// falhas internas irrecuperáveis.
type Exchanger interface {
	Exchange(ctx context.Context, text string, history []Turn) (ExchangeResult, error)
}
