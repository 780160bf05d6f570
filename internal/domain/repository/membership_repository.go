package repository

import (
	"context"

	"github.com/jhoicas/businessos-api/internal/domain/entity"
)

// MembershipRepository puerto de persistencia para membresías (principal ↔ empresa).
type MembershipRepository interface {
	Create(ctx context.Context, m *entity.Membership) error
	// Get devuelve la membresía (cualquier estado) o nil si no existe.
	Get(ctx context.Context, userID, companyID string) (*entity.Membership, error)
	Update(ctx context.Context, m *entity.Membership) error
	ListByUser(ctx context.Context, userID string) ([]*entity.MembershipWithCompany, error)
}
