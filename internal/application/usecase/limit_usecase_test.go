package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/businessos-api/internal/application/usecase"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
)

var fixedNow = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func limitUC(role string, usage *fakeUsage, timeout time.Duration) *usecase.LimitUseCase {
	roles := usecase.NewRoleResolverUseCase(newFakeMemberships(member(role, false)), &fakeCoaching{}, nil, nil)
	return usecase.NewLimitUseCase(usage, roles, timeout, nil).WithClock(func() time.Time { return fixedNow })
}

func plan(limit int) *entity.CompanyPlan {
	return &entity.CompanyPlan{CompanyID: "c1", PlanCode: "starter", Limits: map[string]int{entity.ActionAddUser: limit}}
}

func TestLimitUseCase_BajoElLimite(t *testing.T) {
	res, err := limitUC(entity.RoleMember, &fakeUsage{current: 2, plan: plan(3)}, 0).
		Check(context.Background(), sess, entity.ActionAddUser)
	require.NoError(t, err)
	assert.True(t, res.CanPerform)
	assert.False(t, res.WouldExceedLimit)
	assert.Equal(t, 2, res.Usage)
	require.NotNil(t, res.Limit)
	assert.Equal(t, 3, *res.Limit)
}

func TestLimitUseCase_LimiteAlcanzado(t *testing.T) {
	res, err := limitUC(entity.RoleMember, &fakeUsage{current: 3, plan: plan(3)}, 0).
		Check(context.Background(), sess, entity.ActionAddUser)
	require.NoError(t, err)
	assert.False(t, res.CanPerform)
	assert.True(t, res.WouldExceedLimit)
	assert.False(t, res.IsExpired)
}

func TestLimitUseCase_AdminIgnoraLimite(t *testing.T) {
	res, err := limitUC(entity.RoleCompanyAdmin, &fakeUsage{current: 99, plan: plan(3)}, 0).
		Check(context.Background(), sess, entity.ActionAddUser)
	require.NoError(t, err)
	assert.True(t, res.CanPerform)
}

func TestLimitUseCase_PlanVencidoYGracia(t *testing.T) {
	expired := fixedNow.Add(-48 * time.Hour)
	grace := fixedNow.Add(72 * time.Hour)

	p := plan(1)
	p.ExpiresAt = &expired
	res, err := limitUC(entity.RoleMember, &fakeUsage{current: 1, plan: p}, 0).
		Check(context.Background(), sess, entity.ActionAddUser)
	require.NoError(t, err)
	assert.False(t, res.CanPerform)
	assert.True(t, res.IsExpired)

	p.GraceUntil = &grace
	res, err = limitUC(entity.RoleMember, &fakeUsage{current: 1, plan: p}, 0).
		Check(context.Background(), sess, entity.ActionAddUser)
	require.NoError(t, err)
	assert.True(t, res.CanPerform)
	assert.True(t, res.IsExpired)
}

func TestLimitUseCase_SinPlanEsIlimitado(t *testing.T) {
	res, err := limitUC(entity.RoleMember, &fakeUsage{current: 500}, 0).
		Check(context.Background(), sess, entity.ActionAddClient)
	require.NoError(t, err)
	assert.True(t, res.CanPerform)
	assert.Nil(t, res.Limit)
}

func TestLimitUseCase_UsoLentoPermiteOptimista(t *testing.T) {
	res, err := limitUC(entity.RoleMember, &fakeUsage{block: true, plan: plan(0)}, 20*time.Millisecond).
		Check(context.Background(), sess, entity.ActionAddUser)
	require.NoError(t, err)
	assert.True(t, res.Loading)
	assert.True(t, res.CanPerform)
}

func TestLimitUseCase_AccionDesconocida(t *testing.T) {
	_, err := limitUC(entity.RoleMember, &fakeUsage{}, 0).Check(context.Background(), sess, "delete_everything")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
