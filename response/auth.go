package response

type UserAuthResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Nome  string `json:"nome"`
	Token string `json:"token"`
}
