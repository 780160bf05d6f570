package repository

import (
	"context"

	"github.com/jhoicas/businessos-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)

	// ActiveModules devuelve el mapa módulo → habilitado (activo y sin vencer).
	// Los módulos sin fila no aparecen en el mapa.
	ActiveModules(ctx context.Context, companyID string) (map[string]bool, error)
	// SetModule activa o desactiva un módulo premium (upsert).
	SetModule(ctx context.Context, module *entity.CompanyModule) error
}
