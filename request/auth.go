package request

type UserRegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=agricultor fornecedor"`
	Nome     string `json:"nome" binding:"required"`
	NIF      string `json:"nif"`
	Telefone string `json:"telefone"`
}

type UserLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
