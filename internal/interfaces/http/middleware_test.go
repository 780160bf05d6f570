package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/businessos-api/internal/application/dto"
	"github.com/jhoicas/businessos-api/internal/application/session"
	"github.com/jhoicas/businessos-api/internal/domain"
	"github.com/jhoicas/businessos-api/internal/domain/access"
	"github.com/jhoicas/businessos-api/internal/domain/entity"
	apphttp "github.com/jhoicas/businessos-api/internal/interfaces/http"
	"github.com/jhoicas/businessos-api/pkg/logger"
)

// ── fakes ────────────────────────────────────────────────────────────────────

type fakeValidator struct {
	membership *entity.Membership
	err        error
	block      bool
	hang       chan struct{} // bloquea ignorando ctx hasta que se cierre
}

func (f *fakeValidator) ActiveMembership(ctx context.Context, _, _ string) (*entity.Membership, error) {
	if f.hang != nil {
		<-f.hang
		return f.membership, nil
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.membership, f.err
}

type fakeModules struct {
	decision access.ModuleAccess
	err      error
	got      session.Session
}

func (f *fakeModules) Check(_ context.Context, sess session.Session, _ string) (access.ModuleAccess, error) {
	f.got = sess
	return f.decision, f.err
}

type fakeLimits struct {
	out *dto.LimitResponse
	err error
}

func (f *fakeLimits) Check(_ context.Context, _ session.Session, _ string) (*dto.LimitResponse, error) {
	return f.out, f.err
}

func reason(r string) *string { return &r }

// sessionApp monta AuthMiddleware + SessionMiddleware + los middlewares extra.
func sessionApp(v *fakeValidator, timeout time.Duration, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.SessionMiddleware(v, timeout, logger.Nop()),
	}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"role": apphttp.GetRole(c)})
	})
	app.Get("/protected", handlers...)
	return app
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Code
}

func activeMembership(role string) *entity.Membership {
	return &entity.Membership{UserID: testUserID, CompanyID: testCompanyID, Role: role, Status: entity.MembershipActive}
}

// ── SessionMiddleware ────────────────────────────────────────────────────────

func TestSessionMiddleware_UsaRolVigenteDeLaMembresia(t *testing.T) {
	app := sessionApp(&fakeValidator{membership: activeMembership("company_admin")}, time.Second)
	resp := doRequest(t, app, tokenForRole(t, "member"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "company_admin", body["role"], "el rol del token se reemplaza por el de la membresía")
}

func TestSessionMiddleware_SinMembresia_Retorna403(t *testing.T) {
	app := sessionApp(&fakeValidator{err: domain.ErrNoMembership}, time.Second)
	resp := doRequest(t, app, tokenForRole(t, "member"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "NO_MEMBERSHIP", errorCode(t, resp))
}

func TestSessionMiddleware_Timeout_CierraSesion(t *testing.T) {
	app := sessionApp(&fakeValidator{block: true}, 30*time.Millisecond)
	resp := doRequest(t, app, tokenForRole(t, "member"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_TIMEOUT", errorCode(t, resp))
}

func TestSessionMiddleware_Timeout_ValidadorQueIgnoraContexto(t *testing.T) {
	hang := make(chan struct{})
	defer close(hang)
	app := sessionApp(&fakeValidator{hang: hang, membership: activeMembership("member")}, 30*time.Millisecond)

	start := time.Now()
	resp := doRequest(t, app, tokenForRole(t, "member"))
	defer resp.Body.Close()

	assert.Less(t, time.Since(start), 2*time.Second, "el plazo se impone sin ayuda del validador")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_TIMEOUT", errorCode(t, resp))
}

func TestSessionMiddleware_FalloInfra_Retorna503(t *testing.T) {
	app := sessionApp(&fakeValidator{err: errors.New("db caída")}, time.Second)
	resp := doRequest(t, app, tokenForRole(t, "member"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "SESSION_CHECK_FAILED", errorCode(t, resp))
}

// ── RequireModule ────────────────────────────────────────────────────────────

func TestRequireModule(t *testing.T) {
	cases := []struct {
		name   string
		mods   *fakeModules
		status int
		code   string
	}{
		{"permitido", &fakeModules{decision: access.ModuleAccess{HasAccess: true}}, http.StatusOK, ""},
		{"no habilitado", &fakeModules{decision: access.ModuleAccess{NoAccessReason: reason(access.ReasonNotEnabled)}}, http.StatusForbidden, "MODULE_DISABLED"},
		{"sin permiso", &fakeModules{decision: access.ModuleAccess{NoAccessReason: reason(access.ReasonNoPermission)}}, http.StatusForbidden, "MODULE_FORBIDDEN"},
		{"fallo infra", &fakeModules{err: errors.New("timeout")}, http.StatusServiceUnavailable, "MODULE_CHECK_FAILED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := sessionApp(&fakeValidator{membership: activeMembership("member")}, time.Second,
				apphttp.RequireModule(entity.ModuleFinance, tc.mods, logger.Nop()))
			resp := doRequest(t, app, tokenForRole(t, "member"))
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.code != "" {
				assert.Equal(t, tc.code, errorCode(t, resp))
			}
			assert.Equal(t, testCompanyID, tc.mods.got.CompanyID, "el gate recibe la sesión del token")
		})
	}
}

// ── RequireLimit ─────────────────────────────────────────────────────────────

func TestRequireLimit(t *testing.T) {
	limitApp := func(l *fakeLimits) *fiber.App {
		app := fiber.New()
		app.Post("/members", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireLimit(entity.ActionAddUser, l),
			func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })
		return app
	}
	post := func(app *fiber.App) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/members", nil)
		req.Header.Set("Authorization", tokenForRole(t, "company_admin"))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	t.Run("permitido", func(t *testing.T) {
		resp := post(limitApp(&fakeLimits{out: &dto.LimitResponse{LimitDecision: access.LimitDecision{CanPerform: true}}}))
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Empty(t, resp.Header.Get("X-Plan-Grace"))
	})
	t.Run("periodo de gracia", func(t *testing.T) {
		resp := post(limitApp(&fakeLimits{out: &dto.LimitResponse{LimitDecision: access.LimitDecision{CanPerform: true, IsExpired: true}}}))
		defer resp.Body.Close()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "true", resp.Header.Get("X-Plan-Grace"))
	})
	t.Run("limite alcanzado", func(t *testing.T) {
		resp := post(limitApp(&fakeLimits{out: &dto.LimitResponse{LimitDecision: access.LimitDecision{WouldExceedLimit: true, Message: "límite"}}}))
		defer resp.Body.Close()
		assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
		assert.Equal(t, "LIMIT_REACHED", errorCode(t, resp))
	})
	t.Run("plan vencido", func(t *testing.T) {
		resp := post(limitApp(&fakeLimits{out: &dto.LimitResponse{LimitDecision: access.LimitDecision{IsExpired: true}}}))
		defer resp.Body.Close()
		assert.Equal(t, "PLAN_EXPIRED", errorCode(t, resp))
	})
	t.Run("accion invalida", func(t *testing.T) {
		resp := post(limitApp(&fakeLimits{err: domain.ErrInvalidInput}))
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

// ── RequestLogger ────────────────────────────────────────────────────────────

func TestRequestLogger_PropagaRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.Nop()))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))

	resp2, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Len(t, resp2.Header.Get(apphttp.HeaderRequestID), 36, "sin cabecera se genera un uuid")
}
