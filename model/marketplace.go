package model

import (
	"encoding/json"
	"time"
)

// Roles da plataforma.
const (
	RoleAgricultor = "agricultor"
	RoleFornecedor = "fornecedor"
)

// Categorias canónicas dos anúncios (coluna `categoria` de listings).
const (
	CategoriaPreparacaoSolo = "Preparação do Solo"
	CategoriaPlantio        = "Plantio e Sementeira"
	CategoriaInsumos        = "Aplicação de Insumos"
	CategoriaColheita       = "Colheita"
)

var Categorias = []string{
	CategoriaPreparacaoSolo,
	CategoriaPlantio,
	CategoriaInsumos,
	CategoriaColheita,
}

// Estados de uma reserva.
const (
	ReservaStatusPendente   = "pendente"
	ReservaStatusConfirmada = "confirmada"
	ReservaStatusAprovada   = "aprovada"
	ReservaStatusRejeitada  = "rejeitada"
	ReservaStatusConcluida  = "concluida"
)

type Profile struct {
	ID           string    `gorm:"primarykey;type:char(36)" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null" json:"role"`
	Nome         string    `json:"nome"`
	NIF          string    `json:"nif"`
	Telefone     string    `json:"telefone"`
	Avaliacao    float64   `json:"avaliacao"`
}

func (Profile) TableName() string {
	return "profiles"
}

type Listing struct {
	ID                      string    `gorm:"primarykey;type:char(36)" json:"id"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
	FornecedorID            string    `gorm:"not null;index" json:"fornecedor_id"`
	Fornecedor              *Profile  `gorm:"foreignKey:FornecedorID" json:"fornecedor,omitempty"`
	Tipo                    string    `json:"tipo"`
	Categoria               string    `gorm:"index" json:"categoria"`
	Titulo                  string    `gorm:"not null" json:"titulo"`
	Descricao               string    `gorm:"type:text" json:"descricao"`
	CapacidadeEspecificacao string    `json:"capacidade_especificacao"`
	NomeEmpresa             string    `json:"nome_empresa"`
	Preco                   float64   `json:"preco"`
	UnidadePreco            string    `json:"unidade_preco"`
	Disponibilidade         string    `json:"disponibilidade"`
	Localizacao             string    `gorm:"index" json:"localizacao"`
	ImagemURL               string    `json:"imagem_url"`
}

func (Listing) TableName() string {
	return "listings"
}

// Reserva estabelece índice em anuncio_id para as verificações de
// disponibilidade do agente.
type Reserva struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	AgricultorID string    `gorm:"not null;index" json:"agricultor_id"`
	FornecedorID string    `gorm:"not null;index" json:"fornecedor_id"`
	AnuncioID    string    `gorm:"not null;index" json:"anuncio_id"`
	DataInicio   string    `gorm:"type:char(10)" json:"data_inicio"`
	DuracaoDias  int       `json:"duracao_dias"`
	Contexto     string    `gorm:"type:text" json:"contexto"`
	Status       string    `gorm:"not null;index;default:pendente" json:"status"`
}

func (Reserva) TableName() string {
	return "reservas"
}

type Notification struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	RecipientID string          `gorm:"not null;index" json:"recipient_id"`
	Tipo        string          `gorm:"not null" json:"tipo"`
	Payload     json.RawMessage `gorm:"type:json" json:"payload"`
	Lida        bool            `gorm:"default:false" json:"lida"`
}

func (Notification) TableName() string {
	return "notifications"
}
