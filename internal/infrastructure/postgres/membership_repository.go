package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo membresías sobre PostgreSQL. Acepta pool o tx (Querier).
type MembershipRepo struct {
	q Querier
}

// NewMembershipRepository construye el adaptador.
func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

// Create persiste una membresía; (user_id, company_id) es único.
func (r *MembershipRepo) Create(ctx context.Context, m *entity.Membership) error {
	query := `
		INSERT INTO memberships (id, user_id, company_id, role, finance_access, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.UserID, m.CompanyID, m.Role, m.FinanceAccess, m.Status, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

// Get devuelve la membresía en cualquier estado, o nil.
func (r *MembershipRepo) Get(ctx context.Context, userID, companyID string) (*entity.Membership, error) {
	query := `
		SELECT id, user_id, company_id, role, finance_access, status, created_at, updated_at
		FROM memberships WHERE user_id = $1 AND company_id = $2`
	var m entity.Membership
	err := r.q.QueryRow(ctx, query, userID, companyID).Scan(
		&m.ID, &m.UserID, &m.CompanyID, &m.Role, &m.FinanceAccess, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return &m, nil
}

// Update cambia rol, flag de finanzas y estado. Nunca borra.
func (r *MembershipRepo) Update(ctx context.Context, m *entity.Membership) error {
	query := `
		UPDATE memberships SET role = $3, finance_access = $4, status = $5, updated_at = $6
		WHERE user_id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query, m.UserID, m.CompanyID, m.Role, m.FinanceAccess, m.Status, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser membresías del usuario con el nombre de la empresa, activas primero.
func (r *MembershipRepo) ListByUser(ctx context.Context, userID string) ([]*entity.MembershipWithCompany, error) {
	query := `
		SELECT m.id, m.user_id, m.company_id, m.role, m.finance_access, m.status,
		       m.created_at, m.updated_at, c.name
		FROM memberships m
		JOIN companies c ON c.id = m.company_id
		WHERE m.user_id = $1
		ORDER BY (m.status = 'active') DESC, m.created_at`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var out []*entity.MembershipWithCompany
	for rows.Next() {
		var m entity.MembershipWithCompany
		if err := rows.Scan(
			&m.ID, &m.UserID, &m.CompanyID, &m.Role, &m.FinanceAccess, &m.Status,
			&m.CreatedAt, &m.UpdatedAt, &m.CompanyName,
		); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
