package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/ports"
	"github.com/jhoicas/businessos-api/internal/application/session"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (tenants).
type CompanyUseCase struct {
	repo        repository.CompanyRepository
	memberships repository.MembershipRepository
	modules     *ModuleService
	roles       *RoleResolverUseCase
	tx          ports.TenantTxRunner
	cache       ports.QueryCache
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(
	repo repository.CompanyRepository,
	memberships repository.MembershipRepository,
	modules *ModuleService,
	roles *RoleResolverUseCase,
	tx ports.TenantTxRunner,
	cache ports.QueryCache,
) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, memberships: memberships, modules: modules, roles: roles, tx: tx, cache: cache}
}

// Create crea la empresa, la membresía company_admin del creador y el plan inicial
// en una sola transacción.
func (uc *CompanyUseCase) Create(ctx context.Context, principalID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if principalID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	mode := in.FinanceMode
	if mode == "" {
		mode = entity.FinanceModeBuiltinBooks
	}
	if mode != entity.FinanceModeBuiltinBooks && mode != entity.FinanceModeExternalReporting {
		return nil, fmt.Errorf("%w: finance_mode %q", domain.ErrInvalidInput, mode)
	}

	now := time.Now()
	company := &entity.Company{
		ID:          uuid.New().String(),
		Name:        in.Name,
		FinanceMode: mode,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	membership := &entity.Membership{
		ID:        uuid.New().String(),
		UserID:    principalID,
		CompanyID: company.ID,
		Role:      entity.RoleCompanyAdmin,
		Status:    entity.MembershipActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.tx.RunTenant(ctx, func(companies repository.CompanyRepository, memberships repository.MembershipRepository, usage repository.UsageRepository) error {
		if err := companies.Create(ctx, company); err != nil {
			return err
		}
		if err := memberships.Create(ctx, membership); err != nil {
			return err
		}
		return usage.CreateDefaultPlan(ctx, company.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("crear empresa: %w", err)
	}
	return toCompanyResponse(company, nil), nil
}

// Mine lista las membresías del principal en todas sus empresas.
func (uc *CompanyUseCase) Mine(ctx context.Context, principalID string) ([]dto.MembershipResponse, error) {
	list, err := uc.memberships.ListByUser(ctx, principalID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MembershipResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MembershipResponse{
			CompanyID:     m.CompanyID,
			CompanyName:   m.CompanyName,
			Role:          m.Role,
			FinanceAccess: m.FinanceAccess,
			Status:        m.Status,
		})
	}
	return out, nil
}

// Get devuelve la empresa activa con su mapa de módulos. Solo se puede consultar
// la empresa de la sesión.
func (uc *CompanyUseCase) Get(ctx context.Context, sess session.Session, companyID string) (*dto.CompanyResponse, error) {
	if companyID != sess.CompanyID {
		return nil, domain.ErrForbidden
	}
	if _, err := uc.roles.Resolve(ctx, sess); err != nil {
		return nil, err
	}
	company, err := cached(ctx, uc.cache, sess, queryCompany, func(ctx context.Context) (*entity.Company, error) {
		c, err := uc.repo.GetByID(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	mods, err := uc.modules.Entitlements(ctx, sess)
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company, mods), nil
}

func toCompanyResponse(c *entity.Company, modules map[string]bool) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		FinanceMode: c.FinanceMode,
		Status:      c.Status,
		Modules:     modules,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
