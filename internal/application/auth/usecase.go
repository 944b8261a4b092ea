package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/epi-control/internal/application/audit"
	"github.com/jhoicas/epi-control/internal/application/dto"
	"github.com/jhoicas/epi-control/internal/domain"
	"github.com/jhoicas/epi-control/internal/domain/access"
	"github.com/jhoicas/epi-control/internal/domain/entity"
	"github.com/jhoicas/epi-control/internal/domain/repository"
	"github.com/jhoicas/epi-control/pkg/jwt"
)

// AdminUsername usuário criado no bootstrap.
const AdminUsername = "admin"

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticação: login, identidade e bootstrap do admin.
type AuthUseCase struct {
	userRepo repository.UserRepository
	policy   *access.Policy
	trail    *audit.Trail
	jwtCfg   JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, policy *access.Policy, trail *audit.Trail, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, policy: policy, trail: trail, jwtCfg: jwtCfg}
}

// Login verifica usuário/senha, gera o JWT e audita o acesso.
// Usuário inexistente, inativo ou senha errada devolvem o mesmo erro.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, ip string) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, domain.Internal("auth: buscar usuário", err)
	}
	if user == nil || !user.Active {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, domain.Internal("auth: gerar token", err)
	}
	actor := access.Actor{ID: user.ID, Username: user.Username, Role: access.Role(user.Role)}
	uc.trail.Record(ctx, audit.Event{
		Entity:   entity.AuditEntityAuth,
		EntityID: user.ID,
		Action:   entity.AuditActionLogin,
		Actor:    actor,
		Details:  map[string]any{"username": user.Username},
		IP:       ip,
	})
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute).UTC(),
		User:      toUserResponse(user),
	}, nil
}

// Me devolve a identidade do token e as capacidades do papel.
func (uc *AuthUseCase) Me(actor access.Actor) (*dto.MeResponse, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	caps := uc.policy.Capabilities(actor.Role)
	names := make([]string, 0, len(caps))
	for _, c := range caps {
		names = append(names, string(c.Resource)+":"+string(c.Action))
	}
	return &dto.MeResponse{
		User:         dto.UserResponse{ID: actor.ID, Username: actor.Username, Role: string(actor.Role)},
		Capabilities: names,
	}, nil
}

// EnsureAdmin cria o usuário admin se ainda não existir. password vazio não faz nada.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, password string) (bool, error) {
	if password == "" {
		return false, nil
	}
	existing, err := uc.userRepo.GetByUsername(ctx, AdminUsername)
	if err != nil {
		return false, fmt.Errorf("auth: buscar admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("auth: hash da senha: %w", err)
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     AdminUsername,
		PasswordHash: string(hash),
		Role:         string(access.RoleAdmin),
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return false, fmt.Errorf("auth: criar admin: %w", err)
	}
	return true, nil
}

// CreateUser cria um usuário com o papel informado (somente admin).
func (uc *AuthUseCase) CreateUser(ctx context.Context, actor access.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := access.RequireIdentity(actor); err != nil {
		return nil, err
	}
	if actor.Role != access.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, domain.Internal("auth: buscar usuário", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.Internal("auth: hash da senha", err)
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, domain.Internal("auth: criar usuário", err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}
