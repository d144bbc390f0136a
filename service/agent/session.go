package agent

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const (
	// historyWindowSize limita os turnos enviados ao modelo como
	// contexto; os turnos apresentados não têm limite.
	historyWindowSize = 20

	welcomeMessage = "Olá! Sou o Makini Agent 👋 Diga-me o que precisa — equipamento, local e data — e eu encontro as melhores opções para si. Pode falar naturalmente, como se estivesse a falar com um colega."

	apologyMessage = "Desculpe, ocorreu um erro ao processar o seu pedido. Por favor, tente novamente."
)

var (
	// ErrEmptyMessage sinaliza entrada vazia; nenhum turno é criado e o
	// modelo não é invocado.
	ErrEmptyMessage = errors.New("empty message")

	// ErrExchangeInFlight sinaliza uma troca ainda em curso; a sessão
	// aceita uma troca de cada vez.
	ErrExchangeInFlight = errors.New("an exchange is already in flight")
)

// Session guarda o estado de conversa de um utilizador: turnos
// apresentados, janela de histórico limitada, CTA ativa e indicador de
// troca em curso. O ciclo de vida é explícito: Open, SendMessage, Clear,
// Close.
type Session struct {
	ID string

	mu        sync.Mutex
	open      bool
	loading   bool
	turns     []Turn
	history   []Turn
	cta       *CTA
	exchanger Exchanger
}

// Snapshot é a vista de leitura do estado da sessão.
type Snapshot struct {
	IsOpen     bool   `json:"is_open"`
	IsLoading  bool   `json:"is_loading"`
	Messages   []Turn `json:"messages"`
	CurrentCTA *CTA   `json:"current_cta,omitempty"`
}

func NewSession(id string, exchanger Exchanger) *Session {
	return &Session{ID: id, exchanger: exchanger}
}

// Open marca a sessão como aberta e, sem turnos prévios, semeia a
// mensagem de boas-vindas. Com initialQuery, dispara logo a troca.
func (s *Session) Open(ctx context.Context, initialQuery string) (*Turn, *CTA, error) {
	s.mu.Lock()
	s.open = true
	if len(s.turns) == 0 {
		s.turns = append(s.turns, welcomeTurn())
	}
	s.mu.Unlock()

	if initialQuery == "" {
		return nil, nil, nil
	}
	return s.SendMessage(ctx, initialQuery)
}

func (s *Session) Close() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
}

// Clear repõe a sessão num único turno de boas-vindas, janela vazia e
// sem CTA. Idempotente.
func (s *Session) Clear() {
	s.mu.Lock()
	s.turns = []Turn{welcomeTurn()}
	s.history = nil
	s.cta = nil
	s.mu.Unlock()
}

// Hydrate repõe turnos persistidos numa sessão acabada de criar. Os
// últimos historyWindowSize turnos formam a janela de contexto.
func (s *Session) Hydrate(turns []Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.turns) > 0 {
		return
	}
	s.turns = append(s.turns, turns...)
	window := turns
	if len(window) > historyWindowSize {
		window = window[len(window)-historyWindowSize:]
	}
	s.history = append([]Turn(nil), window...)
}

// SendMessage conduz uma troca: turno do utilizador otimista, CTA limpa
// de imediato, um turno do assistente no fim. Entrada em branco não cria
// turnos nem invoca o modelo.
func (s *Session) SendMessage(ctx context.Context, text string) (*Turn, *CTA, error) {
	if isBlank(text) {
		return nil, nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return nil, nil, ErrExchangeInFlight
	}
	s.loading = true
	s.cta = nil
	userTurn := Turn{ID: uuid.New().String(), Role: RoleUser, Content: text}
	s.turns = append(s.turns, userTurn)
	history := append([]Turn(nil), s.history...)
	s.mu.Unlock()

	result, err := s.exchanger.Exchange(ctx, text, history)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		slog.Error("Exchange failed", "session_id", s.ID, "err", err)
		s.turns = append(s.turns, Turn{
			ID:      uuid.New().String(),
			Role:    RoleAssistant,
			Content: apologyMessage,
		})
		return nil, nil, err
	}

	assistantTurn := Turn{ID: uuid.New().String(), Role: RoleAssistant, Content: result.Message}
	s.turns = append(s.turns, assistantTurn)

	s.history = append(s.history, userTurn, assistantTurn)
	if len(s.history) > historyWindowSize {
		s.history = s.history[len(s.history)-historyWindowSize:]
	}

	if result.Action.Type != ActionNone {
		s.cta = &CTA{Type: result.Action.Type, Data: result.Action.Data}
	}

	return &assistantTurn, s.cta, nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		IsOpen:     s.open,
		IsLoading:  s.loading,
		Messages:   append([]Turn(nil), s.turns...),
		CurrentCTA: s.cta,
	}
}

// HistoryLen devolve o comprimento atual da janela de contexto.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

func welcomeTurn() Turn {
	return Turn{ID: uuid.New().String(), Role: RoleAssistant, Content: welcomeMessage}
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
