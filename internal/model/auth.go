package model

// TokenTypeBearer — значение token_type в ответах сервера.
const TokenTypeBearer = "bearer"

// LoginRequest — вход по email и паролю.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest — регистрация новой учётки.
// DepartmentID == nil значит «без отдела»: ключ не попадает в JSON,
// а указатель на "" отправляется как пустая строка.
type RegisterRequest struct {
	Name         string  `json:"name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=8"`
	DepartmentID *string `json:"department_id,omitempty"`
}

// SSOLoginRequest — утверждение внешнего провайдера идентичности.
type SSOLoginRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Name         string  `json:"name" validate:"required"`
	SSOProvider  string  `json:"sso_provider" validate:"required"`
	SSOID        string  `json:"sso_id" validate:"required"`
	DepartmentID *string `json:"department_id,omitempty"`
}

// AuthResponse — результат успешной аутентификации.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// VerifyResult — результат проверки токена. Невалидный токен это
// нормальный результат (Valid=false, UserID=nil), а не ошибка.
type VerifyResult struct {
	Valid  bool    `json:"valid"`
	UserID *string `json:"user_id"`
}

// ErrorResponse — тело ответа сервера с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StringPtr returns a pointer to s, for optional request fields.
func StringPtr(s string) *string {
	return &s
}
