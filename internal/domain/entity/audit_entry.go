package entity

import (
	"encoding/json"
	"time"
)

// Entidades auditadas.
const (
	AuditEntityEmployee  = "colaborador"
	AuditEntityEquipment = "epi"
	AuditEntityIssuance  = "entrega"
	AuditEntityTraining  = "treinamento"
	AuditEntityExam      = "exame"
	AuditEntityAuth      = "auth"
)

// Ações auditadas.
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionRetire = "soft-delete"
	AuditActionDelete = "delete"
	AuditActionLogin  = "login"
)

// AuditEntry entrada append-only da trilha de auditoria. ID é monotônico.
type AuditEntry struct {
	ID        int64
	Entity    string
	EntityID  string
	Action    string
	ActorID   string
	ActorRole string
	Details   json.RawMessage
	IP        string
	CreatedAt time.Time
}
