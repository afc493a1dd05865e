package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/amiskov/simple-ledger/pkg/common"
	"github.com/amiskov/simple-ledger/pkg/extract"
	"github.com/amiskov/simple-ledger/pkg/logger"
	"github.com/amiskov/simple-ledger/pkg/operation"
)

const (
	msgReset    = "system reset (operations cleared)"
	msgInternal = "internal error"
)

type iService interface {
	Extract(ctx context.Context) (*extract.Extract, error)
	Deposit(ctx context.Context, amount decimal.Decimal) (*operation.Receipt, error)
	Withdraw(ctx context.Context, amount decimal.Decimal) (*operation.Receipt, error)
	Reset(ctx context.Context) error
}

type Handler struct {
	service iService
}

func NewHandler(s iService) *Handler {
	return &Handler{
		service: s,
	}
}

// amountRequest accepts the amount as a JSON number or string, under
// "amount" or the legacy "valor" key. A missing, empty or zero "amount"
// falls back to "valor".
type amountRequest struct {
	Amount json.RawMessage `json:"amount"`
	Valor  json.RawMessage `json:"valor"`
}

func (ar amountRequest) raw() string {
	for _, v := range []json.RawMessage{ar.Amount, ar.Valor} {
		if s, ok := present(v); ok {
			return s
		}
	}
	return ""
}

func present(v json.RawMessage) (string, bool) {
	if len(v) == 0 || string(v) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s, s != ""
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		if f, err := n.Float64(); err == nil && f == 0 {
			return "", false
		}
	}
	return string(v), true
}

type receiptResponse struct {
	Message        string  `json:"message"`
	Balance        float64 `json:"balance"`
	WithdrawsToday *int    `json:"withdraws_today,omitempty"`
}

func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	ext, err := h.service.Extract(r.Context())
	if err != nil {
		common.WriteErr(w, msgInternal, http.StatusInternalServerError)
		return
	}
	common.WriteRespJSON(w, ext)
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	amount, ok := h.readAmount(w, r)
	if !ok {
		return
	}
	receipt, err := h.service.Deposit(r.Context(), amount)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	common.WriteJSON(w, receiptResponse{
		Message: receipt.Message,
		Balance: receipt.Balance.InexactFloat64(),
	}, http.StatusCreated)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	amount, ok := h.readAmount(w, r)
	if !ok {
		return
	}
	receipt, err := h.service.Withdraw(r.Context(), amount)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	common.WriteJSON(w, receiptResponse{
		Message:        receipt.Message,
		Balance:        receipt.Balance.InexactFloat64(),
		WithdrawsToday: &receipt.WithdrawsToday,
	}, http.StatusCreated)
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context()); err != nil {
		common.WriteErr(w, msgInternal, http.StatusInternalServerError)
		return
	}
	common.WriteMsg(w, msgReset, http.StatusOK)
}

// readAmount answers 400 itself when the amount is unusable. A body that is
// not JSON counts as an empty request.
func (h *Handler) readAmount(w http.ResponseWriter, r *http.Request) (decimal.Decimal, bool) {
	req := amountRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log(r.Context()).Infof("server: can't parse request body as amount: %v", err)
	}

	amount, err := operation.ParseAmount(req.raw())
	if err != nil {
		writeServiceErr(w, err)
		return decimal.Zero, false
	}
	return amount, true
}

func writeServiceErr(w http.ResponseWriter, err error) {
	if msg, ok := operation.ValidationMessage(err); ok {
		common.WriteErr(w, msg, http.StatusBadRequest)
		return
	}
	common.WriteErr(w, msgInternal, http.StatusInternalServerError)
}
