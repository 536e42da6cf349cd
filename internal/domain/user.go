package domain

import "time"

// User — учётная запись.
// PasswordHash/PasswordSalt — base64-представления HMAC-SHA256 и ключа.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	PasswordSalt string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session — выданная токену сессия.
// Поля после создания не меняются; запись либо живёт до Expiry, либо удаляется.
type Session struct {
	UserID   int64     `json:"user_id"`
	Username string    `json:"username"`
	Expiry   time.Time `json:"expiry"`
}
