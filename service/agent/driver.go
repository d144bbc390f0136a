package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"makini-agent-backend/config"
	"makini-agent-backend/utils"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	// roundTimeout limita cada ida-e-volta ao modelo; ao expirar, a
	// troca inteira é abortada, sem repetição automática.
	roundTimeout = 30 * time.Second

	// maxRounds trava um modelo que nunca pare de pedir ferramentas.
	maxRounds = 6

	temperature = 1.0
)

// Driver conduz o ciclo pedido/resposta/ferramenta com o modelo até não
// haver mais invocações pendentes.
type Driver struct {
	llm          llms.Model
	dispatcher   *Dispatcher
	instructions string
	tools        []llms.Tool
}

var _ Exchanger = &Driver{}

// NewDriver constrói um driver sobre um modelo já criado. Um modelo nil
// é aceite: cada troca devolve então o erro de configuração, sem tentar
// qualquer chamada de rede.
func NewDriver(llm llms.Model, store Storage) *Driver {
	return &Driver{
		llm:          llm,
		dispatcher:   NewDispatcher(store),
		instructions: systemInstructions(),
		tools:        toolDefinitions(),
	}
}

// NewDriverFromConfig liga o driver ao endpoint configurado.
func NewDriverFromConfig(store Storage) (*Driver, error) {
	if config.Cfg.Model.APIKey == "" {
		return NewDriver(nil, store), nil
	}

	// O prazo por ronda é imposto pelo contexto; o cliente HTTP fica
	// com folga para o contexto ganhar sempre.
	llm, err := openai.New(
		openai.WithModel(config.Cfg.Model.Name),
		openai.WithToken(config.Cfg.Model.APIKey),
		openai.WithBaseURL(config.Cfg.Model.BaseURL),
		openai.WithHTTPClient(utils.NewHTTPClient(utils.WithTimeout(2*roundTimeout))),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %v", err)
	}

	return NewDriver(llm, store), nil
}

// Exchange executa uma troca completa. Falhas de transporte e do
// fornecedor são traduzidas em resultados com ação de erro; o erro
// devolvido é sempre nil neste driver.
func (d *Driver) Exchange(ctx context.Context, text string, history []Turn) (ExchangeResult, error) {
	if d.llm == nil {
		return ExchangeResult{
			Message: msgMissingCredential,
			Action:  CTA{Type: ActionError},
		}, nil
	}

	msgs := make([]llms.MessageContent, 0, len(history)+2)
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeSystem, d.instructions))
	for _, t := range history {
		role := llms.ChatMessageTypeHuman
		if t.Role == RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		msgs = append(msgs, llms.TextParts(role, t.Content))
	}
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeHuman, text))

	var trace []ToolOutcome

	for round := 0; ; round++ {
		if round >= maxRounds {
			slog.Warn("Exchange aborted, round limit reached", "rounds", round)
			return translateFailure(errRoundLimit), nil
		}

		resp, err := d.generate(ctx, msgs)
		if err != nil {
			slog.Error("Model call failed", "round", round, "err", err)
			return translateFailure(err), nil
		}
		if len(resp.Choices) == 0 {
			return translateFailure(errEmptyResponse), nil
		}

		choice := resp.Choices[0]
		if len(choice.ToolCalls) == 0 {
			return ExchangeResult{Message: choice.Content, Action: classify(trace)}, nil
		}

		// Só a primeira invocação de cada lote é servida; um modelo que
		// peça ferramentas uma a uma em rondas sucessivas é suportado na
		// totalidade.
		call := choice.ToolCalls[0]
		if dropped := len(choice.ToolCalls) - 1; dropped > 0 {
			slog.Warn("Dropping extra tool calls from batch", "dropped", dropped)
		}

		msgs = append(msgs, llms.MessageContent{
			Role:  llms.ChatMessageTypeAI,
			Parts: []llms.ContentPart{call},
		})

		outcome := d.dispatcher.Dispatch(ctx, call)
		trace = append(trace, outcome)

		msgs = append(msgs, llms.MessageContent{
			Role: llms.ChatMessageTypeTool,
			Parts: []llms.ContentPart{
				llms.ToolCallResponse{
					ToolCallID: call.ID,
					Name:       outcome.Name,
					Content:    outcome.Payload(),
				},
			},
		})
	}
}

func (d *Driver) generate(ctx context.Context, msgs []llms.MessageContent) (*llms.ContentResponse, error) {
	rctx, cancel := context.WithTimeout(ctx, roundTimeout)
	defer cancel()

	return d.llm.GenerateContent(rctx, msgs,
		llms.WithTools(d.tools),
		llms.WithTemperature(temperature),
	)
}
