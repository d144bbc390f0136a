package request

type CreateReservaRequest struct {
	AnuncioID   string `json:"anuncio_id" binding:"required"`
	DataInicio  string `json:"data_inicio" binding:"required,datetime=2006-01-02"`
	DuracaoDias int    `json:"duracao_dias" binding:"required,gt=0"`
	Contexto    string `json:"contexto"`
}

type UpdateReservaStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=aprovada rejeitada concluida"`
}
