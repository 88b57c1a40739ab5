package repo

// UserContextStore абстракция для хранения контекста пользователя (последний email).
type UserContextStore interface {
	SaveLogin(email string) error
	LoadLogin() (string, error)
}

// AuthStore объединяет токен и контекст пользователя.
type AuthStore interface {
	TokenStore
	UserContextStore
}
