package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/ports"
	"github.com/jhoicas/businessos-api/internal/application/session"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/access"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/repository"
	"github.com/jhoicas/businessos-api/pkg/logger"
)

// ModuleService verifica qué módulos tiene habilitados una empresa y decide el
// acceso del principal. Es el único punto de la aplicación que conoce la
// lógica de activación de módulos.
type ModuleService struct {
	companyRepo repository.CompanyRepository
	roles       *RoleResolverUseCase
	cache       ports.QueryCache
	log         *logger.Logger
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(companyRepo repository.CompanyRepository, roles *RoleResolverUseCase, cache ports.QueryCache, log *logger.Logger) *ModuleService {
	if log == nil {
		log = logger.Nop()
	}
	return &ModuleService{companyRepo: companyRepo, roles: roles, cache: cache, log: log.Component("modules")}
}

// Entitlements devuelve el mapa módulo → habilitado de la empresa activa.
func (s *ModuleService) Entitlements(ctx context.Context, sess session.Session) (map[string]bool, error) {
	return cached(ctx, s.cache, sess, queryEntitlements, func(ctx context.Context) (map[string]bool, error) {
		mods, err := s.companyRepo.ActiveModules(ctx, sess.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("módulos de la empresa: %w", err)
		}
		if mods == nil {
			mods = map[string]bool{}
		}
		return mods, nil
	})
}

// HasActiveModule informa si la empresa activa tiene el módulo habilitado.
// Devuelve false (sin error) si no lo tiene contratado; error solo ante fallos
// de infraestructura (DB caída, timeout, etc.).
func (s *ModuleService) HasActiveModule(ctx context.Context, sess session.Session, moduleName string) (bool, error) {
	if sess.CompanyID == "" || moduleName == "" {
		return false, fmt.Errorf("module: companyID y moduleName son obligatorios")
	}
	if access.IsCoreModule(moduleName) {
		return true, nil
	}
	mods, err := s.Entitlements(ctx, sess)
	if err != nil {
		return false, err
	}
	return mods[moduleName], nil
}

// Check decide el acceso tri-estado al módulo para la sesión. Un módulo no
// habilitado (o desconocido) se rechaza sin resolver roles.
func (s *ModuleService) Check(ctx context.Context, sess session.Session, moduleName string) (access.ModuleAccess, error) {
	enabled, err := s.HasActiveModule(ctx, sess, moduleName)
	if err != nil {
		return access.ModuleAccess{}, err
	}
	if !enabled {
		return access.EvaluateModule(moduleName, access.RoleSummary{}, nil, false), nil
	}
	summary, err := s.roles.Resolve(ctx, sess)
	if err != nil {
		return access.ModuleAccess{}, err
	}
	mods, err := s.Entitlements(ctx, sess)
	if err != nil {
		return access.ModuleAccess{}, err
	}
	return access.EvaluateModule(moduleName, summary, mods, false), nil
}

// SetModule activa o desactiva un módulo premium. Solo site_admin o superior.
func (s *ModuleService) SetModule(ctx context.Context, sess session.Session, companyID, moduleName string, in dto.SetModuleRequest) error {
	if !access.IsPremiumModule(moduleName) {
		return fmt.Errorf("%w: módulo %q no es configurable", domain.ErrInvalidInput, moduleName)
	}
	summary, err := s.roles.Resolve(ctx, sess)
	if err != nil {
		return err
	}
	if !summary.IsSiteAdmin {
		return domain.ErrForbidden
	}
	now := time.Now()
	mod := &entity.CompanyModule{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		ModuleName:  moduleName,
		IsActive:    in.IsActive,
		ActivatedAt: now,
		ExpiresAt:   in.ExpiresAt,
		UpdatedAt:   now,
	}
	if err := s.companyRepo.SetModule(ctx, mod); err != nil {
		return fmt.Errorf("activar módulo %s: %w", moduleName, err)
	}
	if s.cache != nil {
		s.cache.PurgeCompany(companyID)
	}
	s.log.Info().Str("company_id", companyID).Str("module", moduleName).Bool("active", in.IsActive).
		Str("by", sess.PrincipalID).Msg("módulo actualizado")
	return nil
}
