package ledger

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

	"github.com/amiskov/simple-ledger/pkg/extract"
)

func TestExtract(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/extract", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"balance": 90.5, "operations": [
			{"id": 2, "type": "withdraw", "amount": 9.5, "created_at": "2024-03-15 10:00:00"},
			{"id": 1, "type": "deposit", "amount": 100, "created_at": "2024-03-15 09:00:00"}
		]}`))
	}))
	defer ts.Close()

	ext, err := NewClient(ts.URL, 0).Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 90.5, ext.Balance)
	require.Len(t, ext.Operations, 2)
	assert.Equal(t, extract.Withdraw, ext.Operations[0].Type)
	assert.Equal(t, "2024-03-15 09:00:00", ext.Operations[1].CreatedAt)
}

func TestExtractNonSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, 0).Extract(context.Background())
	var lerr *Error
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, http.StatusInternalServerError, lerr.Status)
	assert.Empty(t, lerr.Message)
}

func TestDepositSendsAmount(t *testing.T) {
	var got map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/deposit", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message": "Deposit successful", "balance": 100}`))
	}))
	defer ts.Close()

	res, err := NewClient(ts.URL, 0).Deposit(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"amount": 100.0}, got)
	assert.Equal(t, "Deposit successful", res.Message)
	require.NotNil(t, res.Balance)
	assert.Equal(t, 100.0, *res.Balance)
}

func TestWithdrawServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/withdraw", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "operation failed: insufficient funds"}`))
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, 0).Withdraw(context.Background(), 10)
	var lerr *Error
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, http.StatusBadRequest, lerr.Status)
	assert.Equal(t, "operation failed: insufficient funds", lerr.Message)
}

func TestSuccessWithoutBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	res, err := NewClient(ts.URL, 0).Deposit(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, res.Message)
}

func TestReset(t *testing.T) {
	status := http.StatusOK
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/reset", r.URL.Path)
		w.WriteHeader(status)
		w.Write([]byte("not even json"))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, 0)
	assert.NoError(t, c.Reset(context.Background()))

	status = http.StatusServiceUnavailable
	var lerr *Error
	require.True(t, errors.As(c.Reset(context.Background()), &lerr))
	assert.Equal(t, http.StatusServiceUnavailable, lerr.Status)
}

func TestTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := ts.URL
	ts.Close()

	_, err := NewClient(addr, time.Second).Extract(context.Background())
	require.Error(t, err)
	var lerr *Error
	assert.False(t, errors.As(err, &lerr))
}
