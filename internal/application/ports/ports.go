package ports

import (
	"context"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
)

// FinanceMetricsProvider puerto de salida hacia la función de métricas financieras.
// Las métricas son de solo lectura; el adaptador traduce el payload externo a entidades.
type FinanceMetricsProvider interface {
	// Metrics calcula las métricas del período (YYYY-MM) según el modo de finanzas de la empresa.
	Metrics(ctx context.Context, companyID, financeMode, period string) (*entity.FinanceMetrics, error)
}

// AIGateway puerto de salida hacia el gateway de IA. Solo se expone la disponibilidad.
type AIGateway interface {
	Ready(ctx context.Context) (bool, string, error)
}

// PlaybookPDFGenerator genera el reporte PDF del playbook financiero.
type PlaybookPDFGenerator interface {
	GeneratePlaybookPDF(ctx context.Context, companyName string, report *dto.PlaybookResponse) ([]byte, error)
}

// QueryCache caché de resultados de consultas acotada por principal y empresa.
// load se ejecuta solo ante un fallo de caché; resultados de cargas iniciadas
// antes de una purga nunca se almacenan.
type QueryCache interface {
	Load(ctx context.Context, principalID, companyID, query string, load func(context.Context) (any, error)) (any, error)
	Forget(principalID, companyID, query string)
	PurgePrincipal(principalID string)
	PurgeCompany(companyID string)
}

// TenantTxRunner ejecuta fn con repos de tenant atados a una misma transacción.
// Si fn devuelve error se hace rollback de todo.
type TenantTxRunner interface {
	RunTenant(ctx context.Context, fn func(
		companies repository.CompanyRepository,
		memberships repository.MembershipRepository,
		usage repository.UsageRepository,
	) error) error
}
