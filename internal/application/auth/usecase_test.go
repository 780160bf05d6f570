package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/businessos-api/internal/application/auth"
	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/session"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	"github.com/jhoicas/businessos-api/pkg/jwt"
)

const secret = "test-secret"

type fakeUsers struct{ user *entity.User }

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, nil
}

type fakeMemberships struct{ rows []*entity.Membership }

func (f *fakeMemberships) Create(context.Context, *entity.Membership) error { return nil }
func (f *fakeMemberships) Update(context.Context, *entity.Membership) error { return nil }

func (f *fakeMemberships) Get(_ context.Context, userID, companyID string) (*entity.Membership, error) {
	for _, m := range f.rows {
		if m.UserID == userID && m.CompanyID == companyID {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMemberships) ListByUser(_ context.Context, userID string) ([]*entity.MembershipWithCompany, error) {
	var out []*entity.MembershipWithCompany
	for _, m := range f.rows {
		if m.UserID == userID {
			out = append(out, &entity.MembershipWithCompany{Membership: *m})
		}
	}
	return out, nil
}

// orderCache registra purgas para verificar que ocurren antes de emitir el token.
type orderCache struct{ events *[]string }

func (c orderCache) Load(ctx context.Context, _, _, _ string, load func(context.Context) (any, error)) (any, error) {
	return load(ctx)
}
func (c orderCache) Forget(string, string, string) {}
func (c orderCache) PurgeCompany(string)           {}
func (c orderCache) PurgePrincipal(p string)       { *c.events = append(*c.events, "purge:"+p) }

func fixture(t *testing.T) (*auth.AuthUseCase, *[]string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &fakeUsers{user: &entity.User{ID: "u1", Email: "ana@acme.co", PasswordHash: string(hash), Status: "active"}}
	memberships := &fakeMemberships{rows: []*entity.Membership{
		{UserID: "u1", CompanyID: "A", Role: entity.RoleCompanyAdmin, Status: entity.MembershipActive},
		{UserID: "u1", CompanyID: "B", Role: entity.RoleMember, Status: entity.MembershipActive},
		{UserID: "u1", CompanyID: "C", Role: entity.RoleMember, Status: entity.MembershipInactive},
	}}
	events := &[]string{}
	uc := auth.NewAuthUseCase(users, memberships, orderCache{events: events},
		auth.JWTConfig{Secret: secret, ExpMinutes: 5, RefreshExpHours: 1, Issuer: "test"}, nil)
	return uc, events
}

func TestLogin_EmiteTokenDeLaEmpresaPedida(t *testing.T) {
	uc, _ := fixture(t)
	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.co", Password: "s3cret-pass", CompanyID: "B"})
	require.NoError(t, err)

	userID, companyID, role, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "B", companyID)
	assert.Equal(t, entity.RoleMember, role)
	assert.NotEmpty(t, res.RefreshToken)
}

func TestLogin_Errores(t *testing.T) {
	uc, _ := fixture(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.co", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@acme.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.co", Password: "s3cret-pass", CompanyID: "C"})
	assert.ErrorIs(t, err, domain.ErrNoMembership)
}

func TestRefresh(t *testing.T) {
	uc, _ := fixture(t)
	login, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.co", Password: "s3cret-pass", CompanyID: "A"})
	require.NoError(t, err)

	res, err := uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.RefreshToken, CompanyID: "B"})
	require.NoError(t, err)
	assert.Equal(t, "B", res.CompanyID)

	_, err = uc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: login.Token})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "un token de acceso no sirve como refresh")
}

func TestSwitchCompany_PurgaAntesDeEmitir(t *testing.T) {
	uc, events := fixture(t)
	sess := session.Session{PrincipalID: "u1", CompanyID: "A", Role: entity.RoleCompanyAdmin}

	res, err := uc.SwitchCompany(context.Background(), sess, dto.SwitchCompanyRequest{CompanyID: "B"})
	require.NoError(t, err)
	assert.Equal(t, []string{"purge:u1"}, *events)
	assert.Equal(t, "B", res.CompanyID)
	assert.Equal(t, entity.RoleMember, res.Role, "el rol se resuelve de nuevo para la empresa destino")

	_, companyID, _, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "B", companyID)
}

func TestSwitchCompany_SinMembresiaNoPurga(t *testing.T) {
	uc, events := fixture(t)
	sess := session.Session{PrincipalID: "u1", CompanyID: "A"}

	_, err := uc.SwitchCompany(context.Background(), sess, dto.SwitchCompanyRequest{CompanyID: "C"})
	assert.ErrorIs(t, err, domain.ErrNoMembership)
	assert.Empty(t, *events)
}

func TestLogout_Purga(t *testing.T) {
	uc, events := fixture(t)
	uc.Logout(context.Background(), session.Session{PrincipalID: "u1", CompanyID: "A"})
	assert.Equal(t, []string{"purge:u1"}, *events)
}
