package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/ports"
	"github.com/jhoicas/businessos-api/internal/application/session"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
	"github.com/jhoicas/businessos-api/pkg/jwt"
	"github.com/jhoicas/businessos-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret          string
	ExpMinutes      int
	RefreshExpHours int
	Issuer          string
}

// AuthUseCase ciclo de vida de la sesión: login, refresh, cambio de empresa y logout.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	memberships repository.MembershipRepository
	cache       ports.QueryCache
	jwtCfg      JWTConfig
	log         *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. cache puede ser nil.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	memberships repository.MembershipRepository,
	cache ports.QueryCache,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, memberships: memberships, cache: cache, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// Login verifica email/password y emite token para la empresa pedida o la primera
// membresía activa.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	return uc.issue(ctx, user, in.CompanyID)
}

// Refresh canjea un refresh token por un token de acceso nuevo.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.LoginResponse, error) {
	userID, err := jwt.ParseRefresh(uc.jwtCfg.Secret, in.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != "active" {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(ctx, user, in.CompanyID)
}

// SwitchCompany reemplaza la sesión por una de otra empresa. Antes de emitir el
// token nuevo se purga todo lo cacheado del principal: ninguna consulta de la
// empresa nueva puede ver resultados de la anterior.
func (uc *AuthUseCase) SwitchCompany(ctx context.Context, sess session.Session, in dto.SwitchCompanyRequest) (*dto.SessionResponse, error) {
	if sess.PrincipalID == "" {
		return nil, domain.ErrUnauthorized
	}
	m, err := uc.memberships.Get(ctx, sess.PrincipalID, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if !m.IsActive() {
		return nil, domain.ErrNoMembership
	}

	uc.purge(sess.PrincipalID)

	next := sess.WithCompany(m.CompanyID, m.Role)
	token, err := jwt.Generate(uc.jwtCfg.Secret, next.PrincipalID, next.CompanyID, next.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("principal_id", sess.PrincipalID).Str("from", sess.CompanyID).Str("to", next.CompanyID).Msg("empresa activa cambiada")
	return &dto.SessionResponse{Token: token, CompanyID: next.CompanyID, Role: next.Role}, nil
}

// Logout descarta el estado cacheado de la sesión.
func (uc *AuthUseCase) Logout(_ context.Context, sess session.Session) {
	uc.purge(sess.PrincipalID)
}

func (uc *AuthUseCase) purge(principalID string) {
	if uc.cache != nil {
		uc.cache.PurgePrincipal(principalID)
	}
}

func (uc *AuthUseCase) issue(ctx context.Context, user *entity.User, companyID string) (*dto.LoginResponse, error) {
	m, err := uc.pickMembership(ctx, user.ID, companyID)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, m.CompanyID, m.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.GenerateRefresh(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshExpHours)
	if err != nil {
		return nil, err
	}
	// Un login nuevo empieza sin estado cacheado.
	uc.purge(user.ID)
	return &dto.LoginResponse{
		Token:        token,
		RefreshToken: refresh,
		CompanyID:    m.CompanyID,
		Role:         m.Role,
		User:         *toUserResponse(user),
	}, nil
}

func (uc *AuthUseCase) pickMembership(ctx context.Context, userID, companyID string) (*entity.Membership, error) {
	if companyID != "" {
		m, err := uc.memberships.Get(ctx, userID, companyID)
		if err != nil {
			return nil, err
		}
		if !m.IsActive() {
			return nil, domain.ErrNoMembership
		}
		return m, nil
	}
	list, err := uc.memberships.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, m := range list {
		if m.IsActive() {
			return &m.Membership, nil
		}
	}
	return nil, domain.ErrNoMembership
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
