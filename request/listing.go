package request

type CreateListingRequest struct {
	Tipo                    string  `json:"tipo" binding:"required,oneof=equipamento servico transporte"`
	Categoria               string  `json:"categoria" binding:"required"`
	Titulo                  string  `json:"titulo" binding:"required"`
	Descricao               string  `json:"descricao"`
	CapacidadeEspecificacao string  `json:"capacidade_especificacao"`
	NomeEmpresa             string  `json:"nome_empresa"`
	Preco                   float64 `json:"preco" binding:"required,gt=0"`
	UnidadePreco            string  `json:"unidade_preco" binding:"required"`
	Disponibilidade         string  `json:"disponibilidade"`
	Localizacao             string  `json:"localizacao" binding:"required"`
	ImagemURL               string  `json:"imagem_url"`
}
