package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/ports"
	"github.com/jhoicas/businessos-api/internal/application/session"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
	"github.com/jhoicas/businessos-api/pkg/logger"
)

// MemberUseCase administración de membresías de la empresa activa.
// Las membresías nunca se borran: se cambia su estado.
type MemberUseCase struct {
	users       repository.UserRepository
	memberships repository.MembershipRepository
	roles       *RoleResolverUseCase
	cache       ports.QueryCache
	log         *logger.Logger
}

// NewMemberUseCase construye el caso de uso.
func NewMemberUseCase(users repository.UserRepository, memberships repository.MembershipRepository, roles *RoleResolverUseCase, cache ports.QueryCache, log *logger.Logger) *MemberUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MemberUseCase{users: users, memberships: memberships, roles: roles, cache: cache, log: log.Component("members")}
}

// Invite agrega (o reactiva) la membresía de un usuario existente. Solo administradores.
func (uc *MemberUseCase) Invite(ctx context.Context, sess session.Session, in dto.InviteMemberRequest) (*dto.MemberResponse, error) {
	summary, err := uc.roles.Resolve(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !summary.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	role := in.Role
	if role == "" {
		role = entity.RoleMember
	}
	if role != entity.RoleMember && role != entity.RoleCompanyAdmin {
		return nil, fmt.Errorf("%w: rol %q no asignable por invitación", domain.ErrInvalidInput, role)
	}

	user, err := uc.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: no hay usuario con ese email", domain.ErrNotFound)
	}

	existing, err := uc.memberships.Get(ctx, user.ID, sess.CompanyID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if existing != nil {
		if existing.IsActive() {
			return nil, domain.ErrDuplicate
		}
		existing.Role = role
		existing.FinanceAccess = in.FinanceAccess
		existing.Status = entity.MembershipActive
		existing.UpdatedAt = now
		if err := uc.memberships.Update(ctx, existing); err != nil {
			return nil, err
		}
		uc.purge(sess.CompanyID)
		return toMemberResponse(existing), nil
	}

	m := &entity.Membership{
		ID:            uuid.New().String(),
		UserID:        user.ID,
		CompanyID:     sess.CompanyID,
		Role:          role,
		FinanceAccess: in.FinanceAccess,
		Status:        entity.MembershipActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.memberships.Create(ctx, m); err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", sess.CompanyID).Str("user_id", user.ID).Str("role", role).Msg("miembro agregado")
	return toMemberResponse(m), nil
}

// Update cambia rol, flag de finanzas o estado de una membresía.
// site_admin y super_admin solo los asigna un site_admin.
func (uc *MemberUseCase) Update(ctx context.Context, sess session.Session, userID string, in dto.UpdateMemberRequest) (*dto.MemberResponse, error) {
	summary, err := uc.roles.Resolve(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !summary.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	m, err := uc.memberships.Get(ctx, userID, sess.CompanyID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}

	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, *in.Role)
		}
		elevated := *in.Role == entity.RoleSiteAdmin || *in.Role == entity.RoleSuperAdmin ||
			m.Role == entity.RoleSiteAdmin || m.Role == entity.RoleSuperAdmin
		if elevated && !summary.IsSiteAdmin {
			return nil, domain.ErrForbidden
		}
		m.Role = *in.Role
	}
	if in.FinanceAccess != nil {
		m.FinanceAccess = *in.FinanceAccess
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.MembershipActive, entity.MembershipInactive, entity.MembershipInvited:
			m.Status = *in.Status
		default:
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, *in.Status)
		}
	}
	m.UpdatedAt = time.Now()
	if err := uc.memberships.Update(ctx, m); err != nil {
		return nil, err
	}
	uc.purge(sess.CompanyID)
	uc.log.Info().Str("company_id", sess.CompanyID).Str("user_id", userID).Str("role", m.Role).
		Bool("finance_access", m.FinanceAccess).Str("status", m.Status).Msg("membresía actualizada")
	return toMemberResponse(m), nil
}

// purge invalida roles cacheados de todos los principals de la empresa.
func (uc *MemberUseCase) purge(companyID string) {
	if uc.cache != nil {
		uc.cache.PurgeCompany(companyID)
	}
}

func toMemberResponse(m *entity.Membership) *dto.MemberResponse {
	return &dto.MemberResponse{
		UserID:        m.UserID,
		CompanyID:     m.CompanyID,
		Role:          m.Role,
		FinanceAccess: m.FinanceAccess,
		Status:        m.Status,
		UpdatedAt:     m.UpdatedAt,
	}
}
