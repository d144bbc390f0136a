package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"makini-agent-backend/model"

	"github.com/tmc/langchaingo/llms"
)

// searchResultCap limita os itens devolvidos ao modelo para manter o
// contexto pequeno.
const searchResultCap = 5

// ListingFilter são os critérios de uma pesquisa de anúncios.
type ListingFilter struct {
	Location      string
	EquipmentType string
	Category      string
	MaxPrice      float64
	Limit         int
}

// Storage é o cliente de armazenamento consultado pelas ferramentas. As
// regras de autorização por linha pertencem ao backend; aqui só se
// consultam dados.
type Storage interface {
	SearchListings(ctx context.Context, f ListingFilter) ([]model.Listing, error)
	CountConflictingReservas(ctx context.Context, listingID, fromDate string) (int64, error)
	GetListingWithOwner(ctx context.Context, listingID string) (*model.Listing, error)
}

// Argumentos tipados de cada ferramenta.

type SearchArgs struct {
	Location       string  `json:"location"`
	EquipmentType  string  `json:"equipment_type"`
	Category       string  `json:"category,omitempty"`
	DateNeeded     string  `json:"date_needed,omitempty"`
	Quantity       float64 `json:"quantity,omitempty"`
	MinRating      float64 `json:"min_rating,omitempty"`
	MaxPricePerDay float64 `json:"max_price_per_day,omitempty"`
}

type AvailabilityArgs struct {
	ProviderID   string `json:"provider_id"`
	StartDate    string `json:"start_date"`
	DurationDays int    `json:"duration_days,omitempty"`
}

type DetailsArgs struct {
	ProviderID string `json:"provider_id"`
}

type BookingArgs struct {
	ProviderID          string `json:"provider_id"`
	StartDate           string `json:"start_date"`
	DurationDays        int    `json:"duration_days"`
	SpecialRequirements string `json:"special_requirements,omitempty"`
}

type NavigationFilters struct {
	Category  string  `json:"category,omitempty"`
	Location  string  `json:"location,omitempty"`
	Date      string  `json:"date,omitempty"`
	MinRating float64 `json:"min_rating,omitempty"`
}

type NavigateArgs struct {
	Page    string             `json:"page"`
	Filters *NavigationFilters `json:"filters,omitempty"`
}

// ToolResult é a variante selada de resultado de ferramenta. Cada
// ferramenta produz um tipo próprio; o classificador decide a CTA por
// type switch sobre estes tipos.
type ToolResult interface {
	toolResult()
}

// ListingSummary é a projeção de um anúncio entregue ao modelo.
type ListingSummary struct {
	ID                      string  `json:"id"`
	Titulo                  string  `json:"titulo"`
	Categoria               string  `json:"categoria"`
	Localizacao             string  `json:"localizacao"`
	Preco                   float64 `json:"preco"`
	UnidadePreco            string  `json:"unidade_preco"`
	Disponibilidade         string  `json:"disponibilidade"`
	CapacidadeEspecificacao string  `json:"capacidade_especificacao"`
	NomeEmpresa             string  `json:"nome_empresa"`
	FornecedorNome          string  `json:"fornecedor_nome,omitempty"`
	FornecedorAvaliacao     float64 `json:"fornecedor_avaliacao,omitempty"`
}

// SearchResult é um objeto e não uma lista nua: o protocolo do
// fornecedor exige respostas estruturadas.
type SearchResult struct {
	Items []ListingSummary `json:"items"`
	Count int              `json:"count"`
	Found bool             `json:"found"`
}

type AvailabilityResult struct {
	Available           bool `json:"available"`
	ConflictingBookings int  `json:"conflicting_bookings"`
}

type ProviderDetails struct {
	Listing *model.Listing `json:"listing"`
}

type BookingProposal struct {
	ProposalReady bool        `json:"proposalReady"`
	BookingData   BookingArgs `json:"bookingData"`
}

type Navigation struct {
	NavigationSetup bool               `json:"navigationSetup"`
	Destination     string             `json:"destination"`
	Parameters      *NavigationFilters `json:"parameters,omitempty"`
}

// ToolError devolve a falha ao modelo como dado, nunca como erro
// propagado: o modelo pode reagir em linguagem natural.
type ToolError struct {
	Error string `json:"error"`
}

func (SearchResult) toolResult()       {}
func (AvailabilityResult) toolResult() {}
func (ProviderDetails) toolResult()    {}
func (BookingProposal) toolResult()    {}
func (Navigation) toolResult()         {}
func (ToolError) toolResult()          {}

// ToolOutcome regista uma invocação servida durante uma troca.
type ToolOutcome struct {
	Name   string
	Result ToolResult
}

// Payload serializa o resultado na forma devolvida ao modelo.
func (o ToolOutcome) Payload() string {
	data, err := json.Marshal(o.Result)
	if err != nil {
		return `{"error":"failed to encode tool result"}`
	}
	return string(data)
}

// Dispatcher executa as ferramentas pedidas pelo modelo contra o
// armazenamento.
type Dispatcher struct {
	store Storage
}

func NewDispatcher(store Storage) *Dispatcher {
	return &Dispatcher{store: store}
}

// Dispatch executa uma invocação. Erros de armazenamento ou de
// argumentos resultam em ToolError, nunca em pânico nem propagação.
func (d *Dispatcher) Dispatch(ctx context.Context, call llms.ToolCall) ToolOutcome {
	if call.FunctionCall == nil {
		return ToolOutcome{Name: "", Result: ToolError{Error: "malformed tool call"}}
	}

	name := call.FunctionCall.Name
	args := call.FunctionCall.Arguments
	slog.Info("Executing tool", "tool", name, "args", args)

	result := d.execute(ctx, name, args)
	if toolErr, ok := result.(ToolError); ok {
		slog.Warn("Tool returned error", "tool", name, "err", toolErr.Error)
	}

	return ToolOutcome{Name: name, Result: result}
}

func (d *Dispatcher) execute(ctx context.Context, name, args string) ToolResult {
	switch name {
	case ToolSearchEquipment:
		var a SearchArgs
		if err := json.Unmarshal([]byte(args), &a); err != nil {
			return ToolError{Error: fmt.Sprintf("invalid arguments: %v", err)}
		}
		if a.Location == "" || a.EquipmentType == "" {
			return ToolError{Error: "location and equipment_type are required"}
		}
		return d.searchEquipment(ctx, a)

	case ToolCheckAvailability:
		var a AvailabilityArgs
		if err := json.Unmarshal([]byte(args), &a); err != nil {
			return ToolError{Error: fmt.Sprintf("invalid arguments: %v", err)}
		}
		if a.ProviderID == "" || a.StartDate == "" {
			return ToolError{Error: "provider_id and start_date are required"}
		}
		return d.checkAvailability(ctx, a)

	case ToolGetProviderDetails:
		var a DetailsArgs
		if err := json.Unmarshal([]byte(args), &a); err != nil {
			return ToolError{Error: fmt.Sprintf("invalid arguments: %v", err)}
		}
		if a.ProviderID == "" {
			return ToolError{Error: "provider_id is required"}
		}
		return d.getProviderDetails(ctx, a)

	case ToolCreateBookingProposal:
		var a BookingArgs
		if err := json.Unmarshal([]byte(args), &a); err != nil {
			return ToolError{Error: fmt.Sprintf("invalid arguments: %v", err)}
		}
		if a.ProviderID == "" || a.StartDate == "" || a.DurationDays == 0 {
			return ToolError{Error: "provider_id, start_date and duration_days are required"}
		}
		// Formatação pura: a persistência da reserva é do chamador.
		return BookingProposal{ProposalReady: true, BookingData: a}

	case ToolNavigateToResults:
		var a NavigateArgs
		if err := json.Unmarshal([]byte(args), &a); err != nil {
			return ToolError{Error: fmt.Sprintf("invalid arguments: %v", err)}
		}
		if a.Page == "" {
			return ToolError{Error: "page is required"}
		}
		return Navigation{NavigationSetup: true, Destination: a.Page, Parameters: a.Filters}

	default:
		return ToolError{Error: fmt.Sprintf("unknown tool: %s", name)}
	}
}

func (d *Dispatcher) searchEquipment(ctx context.Context, a SearchArgs) ToolResult {
	filter := ListingFilter{
		Location:      a.Location,
		EquipmentType: a.EquipmentType,
		Category:      a.Category,
		MaxPrice:      a.MaxPricePerDay,
		Limit:         searchResultCap,
	}

	listings, err := d.store.SearchListings(ctx, filter)
	if err != nil {
		return ToolError{Error: err.Error()}
	}

	// Sem resultados com tipo e categoria: alarga a pesquisa repetindo
	// só com a categoria.
	if len(listings) == 0 && a.EquipmentType != "" && a.Category != "" {
		filter.EquipmentType = ""
		listings, err = d.store.SearchListings(ctx, filter)
		if err != nil {
			return ToolError{Error: err.Error()}
		}
	}

	items := make([]ListingSummary, 0, len(listings))
	for _, l := range listings {
		item := ListingSummary{
			ID:                      l.ID,
			Titulo:                  l.Titulo,
			Categoria:               l.Categoria,
			Localizacao:             l.Localizacao,
			Preco:                   l.Preco,
			UnidadePreco:            l.UnidadePreco,
			Disponibilidade:         l.Disponibilidade,
			CapacidadeEspecificacao: l.CapacidadeEspecificacao,
			NomeEmpresa:             l.NomeEmpresa,
		}
		if l.Fornecedor != nil {
			item.FornecedorNome = l.Fornecedor.Nome
			item.FornecedorAvaliacao = l.Fornecedor.Avaliacao
		}
		items = append(items, item)
	}

	return SearchResult{Items: items, Count: len(items), Found: len(items) > 0}
}

func (d *Dispatcher) checkAvailability(ctx context.Context, a AvailabilityArgs) ToolResult {
	count, err := d.store.CountConflictingReservas(ctx, a.ProviderID, a.StartDate)
	if err != nil {
		return ToolError{Error: err.Error()}
	}
	return AvailabilityResult{Available: count == 0, ConflictingBookings: int(count)}
}

func (d *Dispatcher) getProviderDetails(ctx context.Context, a DetailsArgs) ToolResult {
	listing, err := d.store.GetListingWithOwner(ctx, a.ProviderID)
	if err != nil {
		// Anúncio inexistente é erro, não resultado vazio.
		return ToolError{Error: err.Error()}
	}
	return ProviderDetails{Listing: listing}
}
