// Package titling dá nome às conversas: a primeira troca de cada sessão
// é resumida num título curto, gerado fora do caminho do pedido por um
// conjunto de workers.
package titling

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"makini-agent-backend/config"
	"makini-agent-backend/dao"
	"makini-agent-backend/utils"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	taskChanSize = 100
	workerNum    = 4

	maxTitleLen = 60
)

//go:embed prompts/titling.txt
var titlingPrompt string

type TitleTask struct {
	SessionID string
	Query     string
	Answer    string
}

// Titler gera títulos de sessão de forma assíncrona.
type Titler struct {
	llm      llms.Model
	taskChan chan TitleTask
}

// Instance é o titulador partilhado do processo; fica nil quando o
// modelo não está configurado.
var Instance *Titler

func Init() error {
	if config.Cfg.Model.APIKey == "" {
		slog.Warn("Model API key not configured, session titling disabled")
		return nil
	}

	llm, err := openai.New(
		openai.WithModel(config.Cfg.Model.Name),
		openai.WithToken(config.Cfg.Model.APIKey),
		openai.WithBaseURL(config.Cfg.Model.BaseURL),
		openai.WithHTTPClient(utils.DefaultHTTPClient()),
	)
	if err != nil {
		return fmt.Errorf("failed to create titling llm client: %v", err)
	}

	Instance = &Titler{
		llm:      llm,
		taskChan: make(chan TitleTask, taskChanSize),
	}
	return nil
}

func (t *Titler) Run() {
	ctx := context.Background()
	for i := 1; i <= workerNum; i++ {
		go t.work(ctx, i)
	}
}

// Register entrega uma tarefa sem bloquear o pedido; com a fila cheia, a
// tarefa é descartada e a sessão fica com o título por omissão.
func (t *Titler) Register(task TitleTask) {
	select {
	case t.taskChan <- task:
	default:
		slog.Warn("Titling queue full, dropping task", "session_id", task.SessionID)
	}
}

func (t *Titler) work(ctx context.Context, id int) {
	slog.Info("Starting titling worker", "worker_id", id)
	defer slog.Info("Titling worker exit", "worker_id", id)

	for task := range t.taskChan {
		title, err := t.generateTitle(ctx, task)
		if err != nil {
			slog.Error("Failed to generate session title",
				"session_id", task.SessionID,
				"err", err)
			continue
		}

		if err := dao.SetSessionTitleIfDefault(task.SessionID, title); err != nil {
			slog.Error("Failed to update session title",
				"session_id", task.SessionID,
				"err", err)
		}
	}
}

func (t *Titler) generateTitle(ctx context.Context, task TitleTask) (string, error) {
	tmpl, err := template.New("prompt").Parse(titlingPrompt)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt template: %v", err)
	}

	var buf bytes.Buffer
	data := struct {
		Query  string
		Answer string
	}{
		Query:  task.Query,
		Answer: task.Answer,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %v", err)
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, t.llm, buf.String())
	if err != nil {
		return "", fmt.Errorf("llm call error: %w", err)
	}

	return sanitizeTitle(resp), nil
}

func sanitizeTitle(raw string) string {
	title := strings.TrimSpace(raw)
	title = strings.Trim(title, `"“”`)
	if runes := []rune(title); len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen])
	}
	return title
}
