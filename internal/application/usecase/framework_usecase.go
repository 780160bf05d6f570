package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/session"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
)

// FrameworkUseCase alta y publicación de frameworks. El límite del plan se aplica
// en la capa HTTP, solo sobre estos puntos de creación.
type FrameworkUseCase struct {
	repo  repository.FinanceRepository
	roles *RoleResolverUseCase
}

// NewFrameworkUseCase construye el caso de uso.
func NewFrameworkUseCase(repo repository.FinanceRepository, roles *RoleResolverUseCase) *FrameworkUseCase {
	return &FrameworkUseCase{repo: repo, roles: roles}
}

// Create crea un framework en borrador.
func (uc *FrameworkUseCase) Create(ctx context.Context, sess session.Session, in dto.CreateFrameworkRequest) (*dto.FrameworkResponse, error) {
	if err := uc.requireAdmin(ctx, sess); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	fw := &entity.Framework{
		ID:        uuid.New().String(),
		CompanyID: sess.CompanyID,
		Name:      in.Name,
		Status:    entity.FrameworkDraft,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.CreateFramework(ctx, fw); err != nil {
		return nil, err
	}
	return toFrameworkResponse(fw), nil
}

// Publish publica un framework en borrador; publicar dos veces es un conflicto.
func (uc *FrameworkUseCase) Publish(ctx context.Context, sess session.Session, frameworkID string) (*dto.FrameworkResponse, error) {
	if err := uc.requireAdmin(ctx, sess); err != nil {
		return nil, err
	}
	fw, err := uc.repo.GetFramework(ctx, sess.CompanyID, frameworkID)
	if err != nil {
		return nil, err
	}
	if fw == nil {
		return nil, domain.ErrNotFound
	}
	if fw.Status == entity.FrameworkPublished {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	fw.Status = entity.FrameworkPublished
	fw.PublishedAt = &now
	if err := uc.repo.UpdateFramework(ctx, fw); err != nil {
		return nil, err
	}
	return toFrameworkResponse(fw), nil
}

func (uc *FrameworkUseCase) requireAdmin(ctx context.Context, sess session.Session) error {
	summary, err := uc.roles.Resolve(ctx, sess)
	if err != nil {
		return err
	}
	if !summary.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

func toFrameworkResponse(f *entity.Framework) *dto.FrameworkResponse {
	return &dto.FrameworkResponse{
		ID:          f.ID,
		Name:        f.Name,
		Status:      f.Status,
		PublishedAt: f.PublishedAt,
		CreatedAt:   f.CreatedAt,
	}
}
