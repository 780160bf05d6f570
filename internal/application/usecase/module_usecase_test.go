package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/usecase"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/access"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
)

func moduleService(m *entity.Membership, modules map[string]bool, qc *recordingCache) (*usecase.ModuleService, *fakeCompanies) {
	companies := &fakeCompanies{modules: modules}
	roles := usecase.NewRoleResolverUseCase(newFakeMemberships(m), &fakeCoaching{}, nil, nil)
	if qc == nil {
		return usecase.NewModuleService(companies, roles, nil, nil), companies
	}
	return usecase.NewModuleService(companies, roles, qc, nil), companies
}

func TestModuleService_CoreSiemprePermitido(t *testing.T) {
	svc, _ := moduleService(member(entity.RoleMember, false), map[string]bool{}, nil)
	for _, key := range []string{entity.ModuleTasks, entity.ModuleSettings, entity.ModuleDashboard} {
		res, err := svc.Check(context.Background(), sess, key)
		require.NoError(t, err)
		assert.True(t, res.HasAccess, key)
	}
}

func TestModuleService_PremiumAusenteNoHabilitado(t *testing.T) {
	svc, _ := moduleService(member(entity.RoleMember, false), map[string]bool{}, nil)
	res, err := svc.Check(context.Background(), sess, entity.ModuleLMS)
	require.NoError(t, err)
	assert.False(t, res.HasAccess)
	assert.Equal(t, access.ReasonNotEnabled, res.Reason())

	ok, err := svc.HasActiveModule(context.Background(), sess, entity.ModuleLMS)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestModuleService_FinanzasRequiereFlag(t *testing.T) {
	mods := map[string]bool{entity.ModuleFinance: true}

	svc, _ := moduleService(member(entity.RoleMember, false), mods, nil)
	res, err := svc.Check(context.Background(), sess, entity.ModuleFinance)
	require.NoError(t, err)
	assert.Equal(t, access.ReasonNoPermission, res.Reason())

	svc, _ = moduleService(member(entity.RoleMember, true), mods, nil)
	res, err = svc.Check(context.Background(), sess, entity.ModuleFinance)
	require.NoError(t, err)
	assert.True(t, res.HasAccess)
}

func TestModuleService_SinMembresia(t *testing.T) {
	svc := usecase.NewModuleService(&fakeCompanies{}, usecase.NewRoleResolverUseCase(newFakeMemberships(), &fakeCoaching{}, nil, nil), nil, nil)
	_, err := svc.Check(context.Background(), sess, entity.ModuleTasks)
	assert.ErrorIs(t, err, domain.ErrNoMembership)
}

func TestModuleService_SetModuleSoloSiteAdmin(t *testing.T) {
	qc := &recordingCache{}
	svc, companies := moduleService(member(entity.RoleCompanyAdmin, false), nil, qc)
	err := svc.SetModule(context.Background(), sess, "c1", entity.ModuleCRM, dto.SetModuleRequest{IsActive: true})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, companies.set)

	svc, companies = moduleService(member(entity.RoleSiteAdmin, false), nil, qc)
	require.NoError(t, svc.SetModule(context.Background(), sess, "c1", entity.ModuleCRM, dto.SetModuleRequest{IsActive: true}))
	require.Len(t, companies.set, 1)
	assert.Equal(t, entity.ModuleCRM, companies.set[0].ModuleName)
	assert.Equal(t, []string{"company:c1"}, qc.events)

	err = svc.SetModule(context.Background(), sess, "c1", entity.ModuleTasks, dto.SetModuleRequest{IsActive: false})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "los módulos core no se configuran")
}

func TestModuleService_NoHabilitadoNoResuelveRoles(t *testing.T) {
	ms := newFakeMemberships(member(entity.RoleMember, true))
	roles := usecase.NewRoleResolverUseCase(ms, &fakeCoaching{}, nil, nil)
	svc := usecase.NewModuleService(&fakeCompanies{modules: map[string]bool{entity.ModuleCRM: true}}, roles, nil, nil)

	for _, key := range []string{entity.ModuleFinance, "inexistente"} {
		res, err := svc.Check(context.Background(), sess, key)
		require.NoError(t, err)
		assert.Equal(t, access.ReasonNotEnabled, res.Reason(), key)
	}
	assert.Zero(t, ms.calls, "sin módulo habilitado no se consulta la membresía")

	res, err := svc.Check(context.Background(), sess, entity.ModuleCRM)
	require.NoError(t, err)
	assert.True(t, res.HasAccess)
	assert.Equal(t, 1, ms.calls)
}
