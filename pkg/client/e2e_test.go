package client_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/amiskov/simple-ledger/pkg/client"
	"github.com/amiskov/simple-ledger/pkg/ledger"
	"github.com/amiskov/simple-ledger/pkg/middleware"
	"github.com/amiskov/simple-ledger/pkg/operation"
	"github.com/amiskov/simple-ledger/pkg/server"
	"github.com/amiskov/simple-ledger/pkg/view"
)

type recorded struct {
	method, path, body string
}

// recorder remembers every request that reaches the ledger service.
type recorder struct {
	mu   sync.Mutex
	reqs []recorded
	next http.Handler
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))
	rec.mu.Lock()
	rec.reqs = append(rec.reqs, recorded{r.Method, r.URL.Path, string(body)})
	rec.mu.Unlock()
	rec.next.ServeHTTP(w, r)
}

func (rec *recorder) take() []recorded {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := rec.reqs
	rec.reqs = nil
	return out
}

func setupE2E(t *testing.T) (*client.Client, *view.Screen, *recorder) {
	t.Helper()
	now := func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	svc := operation.NewService(operation.NewMemRepo(), now)
	router := server.NewRouter(server.NewHandler(svc), middleware.NewLoggingMiddleware(zap.NewNop().Sugar()))

	rec := &recorder{next: router}
	ts := httptest.NewServer(rec)
	t.Cleanup(ts.Close)

	scr := view.NewScreen()
	return client.New(ledger.NewClient(ts.URL, time.Second), scr, now), scr, rec
}

func TestDepositScenario(t *testing.T) {
	ctx := context.Background()
	c, scr, rec := setupE2E(t)

	require.NoError(t, c.Dispatch(ctx, client.ParseCommand("100,00")))

	reqs := rec.take()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodPost, reqs[0].method)
	assert.Equal(t, "/api/deposit", reqs[0].path)
	assert.JSONEq(t, `{"amount": 100}`, reqs[0].body)
	assert.Equal(t, recorded{http.MethodGet, "/api/extract", ""}, reqs[1])

	assert.Empty(t, scr.Input())
	assert.Equal(t, view.Message{Text: "deposit completed successfully", Severity: view.OK, Visible: true}, scr.Message)
	assert.Equal(t, "R$\u00a0100,00", scr.Balance)
	assert.Equal(t, "3", scr.Remaining)
}

func TestWithdrawScenario(t *testing.T) {
	ctx := context.Background()
	c, scr, rec := setupE2E(t)
	require.NoError(t, c.Submit(ctx, "deposit", "1.000,00"))
	rec.take()

	err := c.Dispatch(ctx, client.ParseCommand("withdraw -5"))
	assert.ErrorIs(t, err, client.ErrInvalidAmount)
	assert.Empty(t, rec.take())
	assert.Equal(t, "operation failed: invalid amount", scr.Message.Text)
}

func TestServiceErrorTextIsShown(t *testing.T) {
	ctx := context.Background()
	c, scr, rec := setupE2E(t)
	require.NoError(t, c.Submit(ctx, "deposit", "1.000,00"))
	rec.take()

	require.Error(t, c.Dispatch(ctx, client.ParseCommand("withdraw 600")))
	assert.Equal(t, view.Message{Text: "operation failed: withdrawal limit is 500.00", Severity: view.Err, Visible: true}, scr.Message)
	assert.Len(t, rec.take(), 1, "no resync after a rejected withdrawal")

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Dispatch(ctx, client.ParseCommand("withdraw 10")))
	}
	assert.Equal(t, "0", scr.Remaining)
	assert.Equal(t, "R$\u00a0970,00", scr.Balance)

	require.Error(t, c.Dispatch(ctx, client.ParseCommand("withdraw 10")))
	assert.Equal(t, "operation failed: daily withdrawal limit exceeded (3)", scr.Message.Text)
}

func TestResetScenario(t *testing.T) {
	ctx := context.Background()
	c, scr, rec := setupE2E(t)
	require.NoError(t, c.Submit(ctx, "deposit", "50"))
	rec.take()

	require.NoError(t, c.Dispatch(ctx, client.ParseCommand("reset")))
	reqs := rec.take()
	require.Len(t, reqs, 2)
	assert.Equal(t, recorded{http.MethodPost, "/api/reset", ""}, reqs[0])
	assert.Equal(t, "/api/extract", reqs[1].path)
	assert.Equal(t, view.Message{Text: "system reset successfully", Severity: view.Warn, Visible: true}, scr.Message)
	assert.Equal(t, "no operations performed", scr.StatementNote)
	assert.Equal(t, "R$\u00a00,00", scr.Balance)
}
