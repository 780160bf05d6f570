package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
)

var _ repository.CoachingRepository = (*CoachingRepo)(nil)

// CoachingRepo consultas de coaching del resolver de roles.
type CoachingRepo struct {
	q Querier
}

// NewCoachingRepository construye el adaptador.
func NewCoachingRepository(q Querier) *CoachingRepo {
	return &CoachingRepo{q: q}
}

// CoachProfile perfil no archivado del usuario en la empresa.
func (r *CoachingRepo) CoachProfile(ctx context.Context, userID, companyID string) (*entity.CoachProfile, error) {
	const query = `
		SELECT id, user_id, company_id, role, archived_at
		  FROM coach_profiles
		 WHERE user_id = $1 AND company_id = $2 AND archived_at IS NULL
		 LIMIT 1`
	var p entity.CoachProfile
	err := r.q.QueryRow(ctx, query, userID, companyID).Scan(&p.ID, &p.UserID, &p.CompanyID, &p.Role, &p.ArchivedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coach profile: %w", err)
	}
	return &p, nil
}

// ActiveOrg organización de coaching activa de la empresa.
func (r *CoachingRepo) ActiveOrg(ctx context.Context, companyID string) (*entity.CoachingOrg, error) {
	const query = `
		SELECT id, company_id, name, status
		  FROM coaching_orgs
		 WHERE company_id = $1 AND status = 'active'
		 LIMIT 1`
	var o entity.CoachingOrg
	err := r.q.QueryRow(ctx, query, companyID).Scan(&o.ID, &o.CompanyID, &o.Name, &o.Status)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coaching org: %w", err)
	}
	return &o, nil
}

// ActiveManager registro de manager activo acotado a la organización.
func (r *CoachingRepo) ActiveManager(ctx context.Context, orgID, userID string) (*entity.CoachingManager, error) {
	const query = `
		SELECT id, org_id, user_id, status
		  FROM coaching_managers
		 WHERE org_id = $1 AND user_id = $2 AND status = 'active'
		 LIMIT 1`
	var m entity.CoachingManager
	err := r.q.QueryRow(ctx, query, orgID, userID).Scan(&m.ID, &m.OrgID, &m.UserID, &m.Status)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coaching manager: %w", err)
	}
	return &m, nil
}

// ActiveEngagement engagement activo donde la empresa es cliente.
func (r *CoachingRepo) ActiveEngagement(ctx context.Context, memberCompanyID string) (*entity.CoachingEngagement, error) {
	const query = `
		SELECT id, org_id, member_company_id, status, created_at
		  FROM coaching_engagements
		 WHERE member_company_id = $1 AND status = 'active'
		 ORDER BY created_at DESC
		 LIMIT 1`
	var e entity.CoachingEngagement
	err := r.q.QueryRow(ctx, query, memberCompanyID).Scan(&e.ID, &e.OrgID, &e.MemberCompanyID, &e.Status, &e.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coaching engagement: %w", err)
	}
	return &e, nil
}

// CreateEngagement persiste un engagement nuevo.
func (r *CoachingRepo) CreateEngagement(ctx context.Context, e *entity.CoachingEngagement) error {
	const query = `
		INSERT INTO coaching_engagements (id, org_id, member_company_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, e.ID, e.OrgID, e.MemberCompanyID, e.Status, e.CreatedAt); err != nil {
		return fmt.Errorf("insert coaching engagement: %w", err)
	}
	return nil
}
