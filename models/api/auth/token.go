package authapimodels

type JWTResponse struct {
	Token    string `json:"token"`
	FullName string `json:"full_name"` // Имя пользователя, используется как автор действий
	Role     string `json:"role"`      // Роль пользователя
}
