package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
)

var _ repository.PreferencesRepository = (*PreferencesRepo)(nil)

// PreferencesRepo estado de UI por usuario en user_preferences (JSONB).
type PreferencesRepo struct {
	q Querier
}

// NewPreferencesRepository construye el adaptador.
func NewPreferencesRepository(q Querier) *PreferencesRepo {
	return &PreferencesRepo{q: q}
}

// Get devuelve las preferencias o nil si el usuario nunca guardó.
func (r *PreferencesRepo) Get(ctx context.Context, userID string) (*entity.UserPreferences, error) {
	p := entity.UserPreferences{UserID: userID}
	var raw []byte
	err := r.q.QueryRow(ctx, `SELECT nav_sections FROM user_preferences WHERE user_id = $1`, userID).Scan(&raw)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	p.NavSections = raw
	return &p, nil
}

// Save guarda las preferencias (upsert).
func (r *PreferencesRepo) Save(ctx context.Context, p *entity.UserPreferences) error {
	const query = `
		INSERT INTO user_preferences (user_id, nav_sections, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET nav_sections = EXCLUDED.nav_sections, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, p.UserID, []byte(p.NavSections)); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
