package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/businessos-api/internal/application/session"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
)

var sess = session.Session{PrincipalID: "u1", CompanyID: "c1", Role: entity.RoleMember}

type fakeMemberships struct {
	mu    sync.Mutex
	rows  map[string]*entity.Membership // userID|companyID
	err   error
	calls int
}

func newFakeMemberships(ms ...*entity.Membership) *fakeMemberships {
	f := &fakeMemberships{rows: map[string]*entity.Membership{}}
	for _, m := range ms {
		f.rows[m.UserID+"|"+m.CompanyID] = m
	}
	return f
}

func (f *fakeMemberships) Create(_ context.Context, m *entity.Membership) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[m.UserID+"|"+m.CompanyID] = m
	return nil
}

func (f *fakeMemberships) Get(_ context.Context, userID, companyID string) (*entity.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if m, ok := f.rows[userID+"|"+companyID]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeMemberships) Update(ctx context.Context, m *entity.Membership) error {
	return f.Create(ctx, m)
}

func (f *fakeMemberships) ListByUser(_ context.Context, userID string) ([]*entity.MembershipWithCompany, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.MembershipWithCompany
	for _, m := range f.rows {
		if m.UserID == userID {
			out = append(out, &entity.MembershipWithCompany{Membership: *m, CompanyName: "Empresa " + m.CompanyID})
		}
	}
	return out, nil
}

type fakeCoaching struct {
	profile    *entity.CoachProfile
	org        *entity.CoachingOrg
	manager    *entity.CoachingManager
	engagement *entity.CoachingEngagement

	profileErr, orgErr, managerErr, engagementErr error
	managerCalls                                  int
	created                                       []*entity.CoachingEngagement
}

func (f *fakeCoaching) CoachProfile(context.Context, string, string) (*entity.CoachProfile, error) {
	return f.profile, f.profileErr
}

func (f *fakeCoaching) ActiveOrg(context.Context, string) (*entity.CoachingOrg, error) {
	return f.org, f.orgErr
}

func (f *fakeCoaching) ActiveManager(context.Context, string, string) (*entity.CoachingManager, error) {
	f.managerCalls++
	return f.manager, f.managerErr
}

func (f *fakeCoaching) ActiveEngagement(context.Context, string) (*entity.CoachingEngagement, error) {
	return f.engagement, f.engagementErr
}

func (f *fakeCoaching) CreateEngagement(_ context.Context, e *entity.CoachingEngagement) error {
	f.created = append(f.created, e)
	return nil
}

type fakeUsage struct {
	current int
	plan    *entity.CompanyPlan
	block   bool // bloquea hasta que venza el contexto
}

func (f *fakeUsage) Usage(ctx context.Context, companyID, action string) (*entity.UsageCounter, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return &entity.UsageCounter{CompanyID: companyID, Action: action, Current: f.current}, nil
}

func (f *fakeUsage) Plan(context.Context, string) (*entity.CompanyPlan, error) { return f.plan, nil }

func (f *fakeUsage) CreateDefaultPlan(context.Context, string) error { return nil }

type fakeCompanies struct {
	company *entity.Company
	modules map[string]bool
	set     []*entity.CompanyModule
}

func (f *fakeCompanies) Create(_ context.Context, c *entity.Company) error { f.company = c; return nil }

func (f *fakeCompanies) GetByID(context.Context, string) (*entity.Company, error) {
	return f.company, nil
}

func (f *fakeCompanies) ActiveModules(context.Context, string) (map[string]bool, error) {
	return f.modules, nil
}

func (f *fakeCompanies) SetModule(_ context.Context, m *entity.CompanyModule) error {
	f.set = append(f.set, m)
	return nil
}

type fakeFinance struct {
	targets    *entity.FinanceTarget
	frameworks map[string]*entity.Framework
}

func (f *fakeFinance) GetTargets(context.Context, string, string) (*entity.FinanceTarget, error) {
	return f.targets, nil
}

func (f *fakeFinance) UpsertTargets(_ context.Context, t *entity.FinanceTarget) error {
	f.targets = t
	return nil
}

func (f *fakeFinance) CreateFramework(_ context.Context, fw *entity.Framework) error {
	if f.frameworks == nil {
		f.frameworks = map[string]*entity.Framework{}
	}
	f.frameworks[fw.ID] = fw
	return nil
}

func (f *fakeFinance) GetFramework(_ context.Context, _, id string) (*entity.Framework, error) {
	return f.frameworks[id], nil
}

func (f *fakeFinance) UpdateFramework(ctx context.Context, fw *entity.Framework) error {
	return f.CreateFramework(ctx, fw)
}

// fakeMetrics devuelve métricas por período, con latencia inversa para
// comprobar que el orden del resultado no depende del orden de llegada.
type fakeMetrics struct {
	mu       sync.Mutex
	byPeriod map[string]*entity.FinanceMetrics
	errFor   map[string]error
	calls    []string
}

func (f *fakeMetrics) Metrics(_ context.Context, _, _, period string) (*entity.FinanceMetrics, error) {
	f.mu.Lock()
	f.calls = append(f.calls, period)
	n := len(f.calls)
	f.mu.Unlock()
	time.Sleep(time.Duration(10-n%10) * time.Millisecond)
	if err := f.errFor[period]; err != nil {
		return nil, err
	}
	if m, ok := f.byPeriod[period]; ok {
		cp := *m
		return &cp, nil
	}
	return &entity.FinanceMetrics{Period: period}, nil
}

// recordingCache cuenta purgas y no cachea nada.
type recordingCache struct {
	mu     sync.Mutex
	events []string
}

func (c *recordingCache) Load(ctx context.Context, _, _, _ string, load func(context.Context) (any, error)) (any, error) {
	return load(ctx)
}

func (c *recordingCache) Forget(string, string, string) {}

func (c *recordingCache) PurgePrincipal(p string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, "principal:"+p)
}

func (c *recordingCache) PurgeCompany(co string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, "company:"+co)
}

func member(role string, finance bool) *entity.Membership {
	return &entity.Membership{UserID: "u1", CompanyID: "c1", Role: role, FinanceAccess: finance, Status: entity.MembershipActive}
}
