package entity

// EntityStatus estado explícito de Employee/Equipment (substitui a flag "ativo").
type EntityStatus string

const (
	StatusActive  EntityStatus = "active"
	StatusRetired EntityStatus = "retired"
)

// IsActive indica se a entidade pode participar de novas operações.
func (s EntityStatus) IsActive() bool { return s == StatusActive }
