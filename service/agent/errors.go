package agent

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
)

// Mensagens apresentadas ao utilizador quando uma troca falha.
const (
	msgMissingCredential = "Erro: chave de API do modelo não configurada. Contacte o administrador da plataforma."
	msgTimeout           = "O pedido demorou demasiado tempo a responder. Por favor, tente novamente."
	msgAuthFailure       = "Não foi possível autenticar junto do serviço de assistência. Contacte o suporte."
	msgGeneric           = "Estou com dificuldades de ligação. Pode tentar pesquisar diretamente na plataforma."
)

const defaultRetrySeconds = 60

var (
	errRoundLimit    = errors.New("tool call round limit exceeded")
	errEmptyResponse = errors.New("model returned no choices")
)

// RateLimitData acompanha a CTA RATE_LIMITED com a estimativa de espera.
type RateLimitData struct {
	WaitSeconds int `json:"waitSeconds"`
	WaitMinutes int `json:"waitMinutes"`
}

// retryHintRe apanha sugestões de espera no texto do fornecedor, como
// `"retryDelay": "32s"` ou `Retry-After: 30`.
var retryHintRe = regexp.MustCompile(`(?i)retry[^0-9]{0,40}?(\d+(?:\.\d+)?)`)

// translateFailure converte falhas de transporte e do fornecedor numa
// resposta normal com etiqueta de erro; nada aqui é fatal ao processo.
//
// O cliente openai-compatible achata as falhas do fornecedor em texto
// sem estado tipado, por isso a classificação por correspondência de
// substrings é o recurso final; só o timeout tem verificação
// estruturada.
func translateFailure(err error) ExchangeResult {
	if isTimeout(err) {
		return ExchangeResult{Message: msgTimeout, Action: CTA{Type: ActionError}}
	}

	text := strings.ToLower(err.Error())
	switch {
	case isRateLimited(text):
		seconds := parseRetrySeconds(err.Error())
		minutes := (seconds + 59) / 60
		if minutes < 1 {
			minutes = 1
		}
		return ExchangeResult{
			Message: fmt.Sprintf("Muitos pedidos de momento. Tente novamente dentro de cerca de %d minuto(s).", minutes),
			Action: CTA{
				Type: ActionRateLimited,
				Data: RateLimitData{WaitSeconds: seconds, WaitMinutes: minutes},
			},
		}

	case isAuthFailure(text):
		return ExchangeResult{Message: msgAuthFailure, Action: CTA{Type: ActionError}}

	default:
		return ExchangeResult{Message: msgGeneric, Action: CTA{Type: ActionError}}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isRateLimited(text string) bool {
	return strings.Contains(text, "429") ||
		strings.Contains(text, "resource_exhausted") ||
		strings.Contains(text, "too many requests") ||
		strings.Contains(text, "rate limit") ||
		strings.Contains(text, "quota")
}

func isAuthFailure(text string) bool {
	return strings.Contains(text, "401") ||
		strings.Contains(text, "403") ||
		strings.Contains(text, "unauthenticated") ||
		strings.Contains(text, "permission_denied") ||
		strings.Contains(text, "permission denied") ||
		strings.Contains(text, "forbidden") ||
		strings.Contains(text, "api key not valid") ||
		strings.Contains(text, "invalid api key")
}

// parseRetrySeconds extrai a sugestão de espera do texto do erro;
// inanalisável vale defaultRetrySeconds.
func parseRetrySeconds(text string) int {
	m := retryHintRe.FindStringSubmatch(text)
	if m == nil {
		return defaultRetrySeconds
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil || value <= 0 {
		return defaultRetrySeconds
	}
	seconds := int(value)
	if value > float64(seconds) {
		seconds++
	}
	return seconds
}
