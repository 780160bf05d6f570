package repository

import (
	"context"

	"github.com/jhoicas/businessos-api/internal/domain/entity"
)

// PreferencesRepository estado de UI persistido por usuario.
type PreferencesRepository interface {
	Get(ctx context.Context, userID string) (*entity.UserPreferences, error)
	Save(ctx context.Context, p *entity.UserPreferences) error
}
