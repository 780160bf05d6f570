package repository

import (
	"context"

	"github.com/jhoicas/businessos-api/internal/domain/entity"
)

// CoachingRepository consultas de coaching usadas por el resolver de roles.
// Todas devuelven (nil, nil) cuando no hay registro.
type CoachingRepository interface {
	// CoachProfile perfil no archivado del usuario en el dominio de coaching de la empresa.
	CoachProfile(ctx context.Context, userID, companyID string) (*entity.CoachProfile, error)
	// ActiveOrg organización de coaching activa que pertenece a la empresa.
	ActiveOrg(ctx context.Context, companyID string) (*entity.CoachingOrg, error)
	// ActiveManager registro de manager activo del usuario en la organización.
	ActiveManager(ctx context.Context, orgID, userID string) (*entity.CoachingManager, error)
	// ActiveEngagement engagement activo donde la empresa es cliente de otra organización.
	ActiveEngagement(ctx context.Context, memberCompanyID string) (*entity.CoachingEngagement, error)

	CreateEngagement(ctx context.Context, e *entity.CoachingEngagement) error
}
