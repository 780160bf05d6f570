package usecase

import (
	"context"

	"github.com/jhoicas/businessos-api/internal/application/ports"
	"github.com/jhoicas/businessos-api/internal/application/session"
)

// Nombres de consulta cacheados por (principal, empresa).
const (
	queryRoles        = "roles"
	queryEntitlements = "entitlements"
	queryCompany      = "company"
)

// cached resuelve la consulta a través de la caché. Sin caché llama a load directamente.
// Un valor con forma inesperada cuenta como fallo: se olvida y se recarga.
func cached[T any](ctx context.Context, c ports.QueryCache, s session.Session, query string, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}
	wrapped := func(ctx context.Context) (any, error) { return load(ctx) }

	v, err := c.Load(ctx, s.PrincipalID, s.CompanyID, query, wrapped)
	if err != nil {
		var zero T
		return zero, err
	}
	if typed, ok := v.(T); ok {
		return typed, nil
	}

	c.Forget(s.PrincipalID, s.CompanyID, query)
	v, err = c.Load(ctx, s.PrincipalID, s.CompanyID, query, wrapped)
	if err != nil {
		var zero T
		return zero, err
	}
	if typed, ok := v.(T); ok {
		return typed, nil
	}
	return load(ctx)
}
