package functions_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/businessos-api/internal/infrastructure/functions"
	"github.com/jhoicas/businessos-api/pkg/config"
	"github.com/jhoicas/businessos-api/pkg/logger"
)

func newClient(t *testing.T, h http.HandlerFunc) *functions.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return functions.NewClient(config.FunctionsConfig{BaseURL: srv.URL + "/", APIKey: "k1", Timeout: time.Second}, logger.Nop())
}

func TestInvoke_SendsBodyAndDecodesData(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"data":{"ok":true}}`))
	})

	var out struct {
		OK bool `json:"ok"`
	}
	err := c.Invoke(context.Background(), "echo", map[string]string{"a": "b"}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, "/echo", gotPath)
	assert.Equal(t, "Bearer k1", gotAuth)
	assert.Equal(t, "b", gotBody["a"])
}

func TestInvoke_EnvelopeError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null,"error":"sin datos"}`))
	})
	err := c.Invoke(context.Background(), "echo", nil, nil)
	var fe *functions.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "echo", fe.Function)
	assert.Equal(t, "sin datos", fe.Message)
}

func TestInvoke_HTTPErrorStatus(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`upstream caído`))
	})
	err := c.Invoke(context.Background(), "echo", nil, nil)
	var fe *functions.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusBadGateway, fe.Status)
	assert.Equal(t, "upstream caído", fe.Message)
}

func TestInvoke_ContextDeadline(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := c.Invoke(ctx, "slow", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestInvoke_WithoutBaseURL(t *testing.T) {
	c := functions.NewClient(config.FunctionsConfig{}, nil)
	err := c.Invoke(context.Background(), "echo", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FUNCTIONS_BASE_URL")
}

func TestFinanceMetrics_MapsPayload(t *testing.T) {
	var req map[string]string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+functions.FinanceMetricsFunction, r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&req)
		_, _ = w.Write([]byte(`{"data":{"metrics":{
			"revenue":{"value":"1200.50","confidence":"high","source":"ledger"},
			"cash_on_hand":{"value":null,"confidence":"medium","source":"bank"}
		}}}`))
	})

	m, err := functions.NewFinanceMetrics(c).Metrics(context.Background(), "c1", "accrual", "2026-09")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"company_id": "c1", "finance_mode": "accrual", "period": "2026-09"}, req)
	assert.Equal(t, "2026-09", m.Period)
	require.NotNil(t, m.Revenue)
	require.NotNil(t, m.Revenue.Value)
	assert.Equal(t, "1200.5", m.Revenue.Value.String())
	assert.Equal(t, "ledger", m.Revenue.Source)
	require.NotNil(t, m.CashOnHand)
	assert.Nil(t, m.CashOnHand.Value)
	assert.Nil(t, m.NetIncome)
}
