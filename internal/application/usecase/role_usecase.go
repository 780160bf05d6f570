package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/businessos-api/internal/application/ports"
	"github.com/jhoicas/businessos-api/internal/application/session"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/access"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
	"github.com/jhoicas/businessos-api/pkg/logger"
)

// RoleResolverUseCase obtiene los hechos de membresía y coaching del principal y
// los combina con access.ResolveRoles. Es el único punto que consulta esos hechos.
type RoleResolverUseCase struct {
	memberships repository.MembershipRepository
	coaching    repository.CoachingRepository
	cache       ports.QueryCache
	log         *logger.Logger
}

// NewRoleResolverUseCase construye el resolver. cache puede ser nil.
func NewRoleResolverUseCase(
	memberships repository.MembershipRepository,
	coaching repository.CoachingRepository,
	cache ports.QueryCache,
	log *logger.Logger,
) *RoleResolverUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &RoleResolverUseCase{
		memberships: memberships,
		coaching:    coaching,
		cache:       cache,
		log:         log.Component("role_resolver"),
	}
}

// ActiveMembership devuelve la membresía activa o domain.ErrNoMembership.
// Solo los fallos de infraestructura se devuelven como otros errores.
func (uc *RoleResolverUseCase) ActiveMembership(ctx context.Context, principalID, companyID string) (*entity.Membership, error) {
	m, err := uc.memberships.Get(ctx, principalID, companyID)
	if err != nil {
		return nil, fmt.Errorf("consultar membresía: %w", err)
	}
	if !m.IsActive() {
		return nil, domain.ErrNoMembership
	}
	return m, nil
}

// Resolve devuelve el resumen de roles de la sesión (cacheado por principal y empresa).
func (uc *RoleResolverUseCase) Resolve(ctx context.Context, s session.Session) (access.RoleSummary, error) {
	if err := s.Validate(); err != nil {
		return access.RoleSummary{}, err
	}
	return cached(ctx, uc.cache, s, queryRoles, func(ctx context.Context) (access.RoleSummary, error) {
		return uc.resolve(ctx, s.PrincipalID, s.CompanyID)
	})
}

// resolve ejecuta las consultas en orden: el manager depende del id de la organización.
// Cada consulta de coaching que falla se registra y deja su flag en false.
func (uc *RoleResolverUseCase) resolve(ctx context.Context, principalID, companyID string) (access.RoleSummary, error) {
	m, err := uc.ActiveMembership(ctx, principalID, companyID)
	if err != nil {
		return access.RoleSummary{}, err
	}
	facts := access.RoleFacts{Membership: m}

	if p, err := uc.coaching.CoachProfile(ctx, principalID, companyID); err != nil {
		uc.log.Warn().Err(err).Str("principal_id", principalID).Str("company_id", companyID).Msg("perfil de coach no disponible; se asume sin perfil")
	} else {
		facts.CoachProfile = p
	}

	if org, err := uc.coaching.ActiveOrg(ctx, companyID); err != nil {
		uc.log.Warn().Err(err).Str("company_id", companyID).Msg("organización de coaching no disponible; se asume sin organización")
	} else {
		facts.CoachingOrg = org
	}

	if facts.CoachingOrg != nil {
		if mgr, err := uc.coaching.ActiveManager(ctx, facts.CoachingOrg.ID, principalID); err != nil {
			uc.log.Warn().Err(err).Str("org_id", facts.CoachingOrg.ID).Msg("registro de manager no disponible; se asume sin manager")
		} else {
			facts.Manager = mgr
		}
	}

	if eng, err := uc.coaching.ActiveEngagement(ctx, companyID); err != nil {
		uc.log.Warn().Err(err).Str("company_id", companyID).Msg("engagement de coaching no disponible; se asume sin engagement")
	} else {
		facts.Engagement = eng
	}

	return access.ResolveRoles(facts), nil
}
