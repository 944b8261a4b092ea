package entity

import "time"

// User usuário do sistema. Role é um dos papéis fechados de access.Role.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	Role         string
	Active       bool
	CreatedAt    time.Time
}
