package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/usecase"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/internal/domain/finance"
)

func d(v int64) *decimal.Decimal {
	x := decimal.NewFromInt(v)
	return &x
}

func financeUC(m *entity.Membership, metrics *fakeMetrics, repo *fakeFinance, qc *recordingCache) *usecase.FinanceUseCase {
	roles := usecase.NewRoleResolverUseCase(newFakeMemberships(m), &fakeCoaching{}, nil, nil)
	companies := &fakeCompanies{company: &entity.Company{ID: "c1", Name: "Acme", FinanceMode: entity.FinanceModeBuiltinBooks}}
	if qc == nil {
		return usecase.NewFinanceUseCase(companies, repo, metrics, nil, roles, nil, nil)
	}
	return usecase.NewFinanceUseCase(companies, repo, metrics, nil, roles, qc, nil)
}

func TestFinanceUseCase_PlaybookCajaBaja(t *testing.T) {
	metrics := &fakeMetrics{byPeriod: map[string]*entity.FinanceMetrics{
		"2026-09": {CashOnHand: &entity.FinanceMetric{Value: d(500), Confidence: entity.ConfidenceHigh}, Revenue: &entity.FinanceMetric{Value: d(900)}},
		"2026-08": {Revenue: &entity.FinanceMetric{Value: d(1000)}},
	}}
	repo := &fakeFinance{targets: &entity.FinanceTarget{CashMinimum: d(1000)}}

	res, err := financeUC(member(entity.RoleMember, true), metrics, repo, nil).
		Playbook(context.Background(), sess, "fw1", "2026-09")
	require.NoError(t, err)
	assert.Equal(t, []string{finance.CondRevenueDown, finance.CondCashLow}, res.Conditions)
	require.Len(t, res.Items, 2)
	assert.NotEmpty(t, res.Items[1].Title)
	require.NotNil(t, res.Previous)
	assert.Equal(t, "2026-08", res.Previous.Period)
}

func TestFinanceUseCase_SinPeriodoAnteriorSuprimeRevenueDown(t *testing.T) {
	metrics := &fakeMetrics{
		byPeriod: map[string]*entity.FinanceMetrics{"2026-09": {Revenue: &entity.FinanceMetric{Value: d(1)}}},
		errFor:   map[string]error{"2026-08": errors.New("función caída")},
	}
	res, err := financeUC(member(entity.RoleMember, true), metrics, &fakeFinance{}, nil).
		Playbook(context.Background(), sess, "fw1", "2026-09")
	require.NoError(t, err)
	assert.Empty(t, res.Conditions)
	assert.Nil(t, res.Previous)
	assert.Nil(t, res.Targets)
}

func TestFinanceUseCase_SinAccesoAFinanzas(t *testing.T) {
	_, err := financeUC(member(entity.RoleMember, false), &fakeMetrics{}, &fakeFinance{}, nil).
		Playbook(context.Background(), sess, "fw1", "2026-09")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestFinanceUseCase_PeriodoInvalido(t *testing.T) {
	_, err := financeUC(member(entity.RoleMember, true), &fakeMetrics{}, &fakeFinance{}, nil).
		Playbook(context.Background(), sess, "fw1", "septiembre")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFinanceUseCase_TrendOrdenadoPorPeriodo(t *testing.T) {
	metrics := &fakeMetrics{}
	res, err := financeUC(member(entity.RoleMember, true), metrics, &fakeFinance{}, nil).
		Trend(context.Background(), sess, 4, "2026-02")
	require.NoError(t, err)

	var periods []string
	for _, p := range res.Periods {
		periods = append(periods, p.Period)
	}
	assert.Equal(t, []string{"2025-11", "2025-12", "2026-01", "2026-02"}, periods)
	assert.Len(t, metrics.calls, 4)
}

func TestFinanceUseCase_TrendFallaSiUnPeriodoFalla(t *testing.T) {
	metrics := &fakeMetrics{errFor: map[string]error{"2026-01": errors.New("boom")}}
	_, err := financeUC(member(entity.RoleMember, true), metrics, &fakeFinance{}, nil).
		Trend(context.Background(), sess, 3, "2026-02")
	assert.Error(t, err)

	_, err = financeUC(member(entity.RoleMember, true), metrics, &fakeFinance{}, nil).
		Trend(context.Background(), sess, 0, "2026-02")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFinanceUseCase_PutTargetsPurgaEmpresa(t *testing.T) {
	repo := &fakeFinance{frameworks: map[string]*entity.Framework{"fw1": {ID: "fw1", CompanyID: "c1"}}}
	qc := &recordingCache{}

	out, err := financeUC(member(entity.RoleCompanyAdmin, false), &fakeMetrics{}, repo, qc).
		PutTargets(context.Background(), sess, "fw1", dto.TargetsDTO{CashMinimum: d(1000)})
	require.NoError(t, err)
	assert.True(t, out.CashMinimum.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, []string{"company:c1"}, qc.events)

	_, err = financeUC(member(entity.RoleMember, true), &fakeMetrics{}, repo, nil).
		PutTargets(context.Background(), sess, "fw1", dto.TargetsDTO{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
