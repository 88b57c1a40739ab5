package model

import "time"

// User — учётная запись. Одна и та же структура хранится в БД на сервере
// и возвращается клиенту в AuthResponse и /auth/me.
type User struct {
	ID    string `gorm:"primaryKey;type:uuid" json:"id"`
	Email string `gorm:"not null;uniqueIndex" json:"email"`
	Name  string `gorm:"not null" json:"name"`

	DepartmentID *string `gorm:"column:department_id;index" json:"department_id,omitempty"`

	// Пустой хеш означает учётку, созданную через SSO, без пароля.
	Password string `gorm:"not null;default:''" json:"-"`

	SSOProvider *string `gorm:"column:sso_provider;uniqueIndex:idx_users_sso" json:"sso_provider,omitempty"`
	SSOID       *string `gorm:"column:sso_id;uniqueIndex:idx_users_sso" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// HasPassword reports whether the account can log in with a password.
func (u *User) HasPassword() bool {
	return u != nil && u.Password != ""
}

// HasSSO reports whether the account is linked to an identity provider.
func (u *User) HasSSO() bool {
	return u != nil && u.SSOProvider != nil && u.SSOID != nil
}

// LinkedTo — учётка привязана именно к этой SSO-идентичности.
func (u *User) LinkedTo(provider, ssoID string) bool {
	return u.HasSSO() && *u.SSOProvider == provider && *u.SSOID == ssoID
}
