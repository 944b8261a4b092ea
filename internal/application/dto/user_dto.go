package dto

import (
	"encoding/json"
	"time"
)

// CreateUserRequest entrada para criar um usuário (senha em texto, hasheada no use case).
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=60"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin tecnico leitura"`
}

// UserResponse saída de um usuário (sem senha).
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginRequest entrada de POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT e usuário autenticado.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// MeResponse identidade do token e as capacidades do papel.
type MeResponse struct {
	User         UserResponse `json:"user"`
	Capabilities []string     `json:"capabilities"`
}

// AuditEntryResponse entrada da trilha de auditoria.
type AuditEntryResponse struct {
	ID        int64           `json:"id"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entityId"`
	Action    string          `json:"action"`
	ActorID   string          `json:"actorId"`
	ActorRole string          `json:"actorRole"`
	Details   json.RawMessage `json:"details"`
	IP        string          `json:"ip"`
	CreatedAt time.Time       `json:"createdAt"`
}
