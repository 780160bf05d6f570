package usecase

import (
	"context"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/prefs"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
)

// PreferencesUseCase estado de navegación del usuario (no autoritativo).
type PreferencesUseCase struct {
	repo repository.PreferencesRepository
}

// NewPreferencesUseCase construye el caso de uso.
func NewPreferencesUseCase(repo repository.PreferencesRepository) *PreferencesUseCase {
	return &PreferencesUseCase{repo: repo}
}

// Nav devuelve las secciones expandidas; un valor guardado con forma inválida se lee como vacío.
func (uc *PreferencesUseCase) Nav(ctx context.Context, principalID string) (*dto.NavPreferences, error) {
	p, err := uc.repo.Get(ctx, principalID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &dto.NavPreferences{Sections: []string{}}, nil
	}
	return &dto.NavPreferences{Sections: prefs.NormalizeSectionKeys(p.NavSections)}, nil
}

// SaveNav reemplaza las secciones expandidas.
func (uc *PreferencesUseCase) SaveNav(ctx context.Context, principalID string, in dto.NavPreferences) (*dto.NavPreferences, error) {
	raw := prefs.EncodeSectionKeys(in.Sections)
	if err := uc.repo.Save(ctx, &entity.UserPreferences{UserID: principalID, NavSections: raw}); err != nil {
		return nil, err
	}
	return &dto.NavPreferences{Sections: prefs.NormalizeSectionKeys(raw)}, nil
}
