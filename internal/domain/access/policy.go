// Package access define os papéis fechados do sistema e a tabela de capacidades.
package access

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/jhoicas/epi-control/internal/domain"
)

// Role papel do ator autenticado.
type Role string

const (
	RoleAdmin      Role = "admin"   // controle total
	RoleTechnician Role = "tecnico" // operacional: cria/atualiza, não exclui
	RoleReadOnly   Role = "leitura" // somente leitura
)

// ParseRole converte o claim do token em Role; papéis desconhecidos falham.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTechnician, RoleReadOnly:
		return Role(s), nil
	}
	return "", fmt.Errorf("papel desconhecido: %q", s)
}

// Resource entidade alvo de uma ação.
type Resource string

const (
	ResourceEmployee  Resource = "employee"
	ResourceEquipment Resource = "equipment"
	ResourceIssuance  Resource = "issuance"
	ResourceTraining  Resource = "training"
	ResourceExam      Resource = "exam"
	ResourceAudit     Resource = "audit"
)

// Action tipo de operação.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionRead   Action = "read"
)

// Capability par recurso+ação.
type Capability struct {
	Resource Resource
	Action   Action
}

// Actor identidade autenticada consumida pelo núcleo.
type Actor struct {
	ID       string
	Username string
	Role     Role
}

var mutableResources = []Resource{ResourceEmployee, ResourceEquipment, ResourceIssuance, ResourceTraining, ResourceExam}

// Policy tabela papel -> capacidades. É imutável após NewPolicy.
type Policy struct {
	caps map[Role]map[Capability]struct{}
}

// NewPolicy monta a tabela padrão:
// admin cria/atualiza/exclui tudo e lê a auditoria; tecnico cria/atualiza; leitura não altera nada.
func NewPolicy() *Policy {
	p := &Policy{caps: map[Role]map[Capability]struct{}{
		RoleAdmin:      {},
		RoleTechnician: {},
		RoleReadOnly:   {},
	}}
	for _, r := range mutableResources {
		for _, a := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
			p.caps[RoleAdmin][Capability{r, a}] = struct{}{}
		}
		for _, a := range []Action{ActionCreate, ActionUpdate} {
			p.caps[RoleTechnician][Capability{r, a}] = struct{}{}
		}
	}
	p.caps[RoleAdmin][Capability{ResourceAudit, ActionRead}] = struct{}{}
	return p
}

// Allows indica se o papel possui a capacidade.
func (p *Policy) Allows(role Role, resource Resource, action Action) bool {
	set, ok := p.caps[role]
	if !ok {
		return false
	}
	_, ok = set[Capability{resource, action}]
	return ok
}

// Authorize falha com ErrUnauthorized se não há identidade e com ErrForbidden se falta a capacidade.
func (p *Policy) Authorize(actor Actor, resource Resource, action Action) error {
	if actor.ID == "" || actor.Role == "" {
		return domain.ErrUnauthorized
	}
	if !p.Allows(actor.Role, resource, action) {
		return domain.ErrForbidden
	}
	return nil
}

// Capabilities devolve as capacidades do papel ordenadas por recurso e ação (útil para /auth/me).
func (p *Policy) Capabilities(role Role) []Capability {
	out := make([]Capability, 0, len(p.caps[role]))
	for c := range p.caps[role] {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Capability) int {
		return cmp.Or(cmp.Compare(a.Resource, b.Resource), cmp.Compare(a.Action, b.Action))
	})
	return out
}

// RequireIdentity leituras exigem apenas uma identidade autenticada, sem papel específico.
func RequireIdentity(actor Actor) error {
	if actor.ID == "" || actor.Role == "" {
		return domain.ErrUnauthorized
	}
	return nil
}
