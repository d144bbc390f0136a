package agent

import (
	_ "embed"

	"github.com/tmc/langchaingo/llms"
)

// Nomes das cinco ferramentas expostas ao modelo.
const (
	ToolSearchEquipment       = "search_equipment"
	ToolCheckAvailability     = "check_availability"
	ToolGetProviderDetails    = "get_provider_details"
	ToolCreateBookingProposal = "create_booking_proposal"
	ToolNavigateToResults     = "navigate_to_results"
)

//go:embed prompts/system_prompt.txt
var systemPrompt string

// systemInstructions junta a persona fixa às tabelas de normalização.
func systemInstructions() string {
	return systemPrompt + "\n" + normalizationGuidance()
}

// toolDefinitions declara o esquema de parâmetros de cada ferramenta tal
// como o fornecedor do modelo o espera.
func toolDefinitions() []llms.Tool {
	return []llms.Tool{
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        ToolSearchEquipment,
				Description: "Pesquisa equipamentos e serviços disponíveis na base de dados Makini com base em critérios específicos",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"location": map[string]any{
							"type":        "string",
							"description": "Localização/cidade onde o agricultor precisa do equipamento (ex: Huambo, Malanje, Luanda)",
						},
						"equipment_type": map[string]any{
							"type":        "string",
							"description": "Tipo de equipamento ou serviço (ex: trator, colheitadeira, camião, pulverizador)",
						},
						"category": map[string]any{
							"type":        "string",
							"enum":        []string{"Preparação do Solo", "Plantio e Sementeira", "Aplicação de Insumos", "Colheita"},
							"description": "Categoria do equipamento",
						},
						"date_needed": map[string]any{
							"type":        "string",
							"description": "Data em que o equipamento é necessário (formato: YYYY-MM-DD ou 'hoje', 'amanhã', 'esta semana')",
						},
						"quantity": map[string]any{
							"type":        "number",
							"description": "Quantidade de unidades necessárias",
						},
						"min_rating": map[string]any{
							"type":        "number",
							"description": "Classificação mínima do fornecedor (1-5)",
						},
						"max_price_per_day": map[string]any{
							"type":        "number",
							"description": "Preço máximo por dia em Kwanzas (AOA)",
						},
					},
					"required": []string{"location", "equipment_type"},
				},
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        ToolCheckAvailability,
				Description: "Verifica se um fornecedor específico tem disponibilidade para uma data e duração",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"provider_id": map[string]any{
							"type":        "string",
							"description": "ID do fornecedor/anúncio",
						},
						"start_date": map[string]any{
							"type":        "string",
							"description": "Data de início (YYYY-MM-DD)",
						},
						"duration_days": map[string]any{
							"type":        "number",
							"description": "Número de dias necessários",
						},
					},
					"required": []string{"provider_id", "start_date"},
				},
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        ToolGetProviderDetails,
				Description: "Obtém detalhes completos de um fornecedor incluindo avaliações, fotos e descrição do equipamento",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"provider_id": map[string]any{
							"type":        "string",
							"description": "ID do fornecedor/anúncio",
						},
					},
					"required": []string{"provider_id"},
				},
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        ToolCreateBookingProposal,
				Description: "Cria uma proposta de reserva pré-preenchida para o agricultor confirmar",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"provider_id": map[string]any{
							"type":        "string",
							"description": "ID do fornecedor/anúncio",
						},
						"start_date": map[string]any{
							"type":        "string",
							"description": "Data de início (YYYY-MM-DD)",
						},
						"duration_days": map[string]any{
							"type":        "number",
							"description": "Número de dias",
						},
						"special_requirements": map[string]any{
							"type":        "string",
							"description": "Requisitos especiais ou notas adicionais",
						},
					},
					"required": []string{"provider_id", "start_date", "duration_days"},
				},
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        ToolNavigateToResults,
				Description: "Gera os parâmetros de navegação para levar o utilizador à página de resultados filtrados",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"filters": map[string]any{
							"type":        "object",
							"description": "Filtros a aplicar na página de listagens",
							"properties": map[string]any{
								"category":   map[string]any{"type": "string"},
								"location":   map[string]any{"type": "string"},
								"date":       map[string]any{"type": "string"},
								"min_rating": map[string]any{"type": "number"},
							},
						},
						"page": map[string]any{
							"type":        "string",
							"enum":        []string{"listings", "search", "booking"},
							"description": "Página de destino",
						},
					},
					"required": []string{"page"},
				},
			},
		},
	}
}
