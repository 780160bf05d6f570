package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/ports"
	"github.com/jhoicas/businessos-api/internal/application/session"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
)

// CoachingUseCase clientes de la organización de coaching de la empresa activa.
type CoachingUseCase struct {
	repo  repository.CoachingRepository
	roles *RoleResolverUseCase
	cache ports.QueryCache
}

// NewCoachingUseCase construye el caso de uso.
func NewCoachingUseCase(repo repository.CoachingRepository, roles *RoleResolverUseCase, cache ports.QueryCache) *CoachingUseCase {
	return &CoachingUseCase{repo: repo, roles: roles, cache: cache}
}

// AddClient vincula una empresa cliente a la organización. Solo org admins.
func (uc *CoachingUseCase) AddClient(ctx context.Context, sess session.Session, in dto.AddClientRequest) (*dto.EngagementResponse, error) {
	summary, err := uc.roles.Resolve(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !summary.IsOrgAdmin {
		return nil, domain.ErrForbidden
	}
	if in.MemberCompanyID == sess.CompanyID {
		return nil, domain.ErrInvalidInput
	}
	org, err := uc.repo.ActiveOrg(ctx, sess.CompanyID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.ActiveEngagement(ctx, in.MemberCompanyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	e := &entity.CoachingEngagement{
		ID:              uuid.New().String(),
		OrgID:           org.ID,
		MemberCompanyID: in.MemberCompanyID,
		Status:          "active",
		CreatedAt:       time.Now(),
	}
	if err := uc.repo.CreateEngagement(ctx, e); err != nil {
		return nil, err
	}
	// isMember de la empresa cliente cambia.
	if uc.cache != nil {
		uc.cache.PurgeCompany(in.MemberCompanyID)
	}
	return &dto.EngagementResponse{
		ID:              e.ID,
		OrgID:           e.OrgID,
		MemberCompanyID: e.MemberCompanyID,
		Status:          e.Status,
		CreatedAt:       e.CreatedAt,
	}, nil
}
