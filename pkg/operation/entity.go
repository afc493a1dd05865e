package operation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amiskov/simple-ledger/pkg/extract"
)

// Operation is a stored ledger entry.
type Operation struct {
	ID        int64
	Type      extract.OperationType
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// Receipt is what a successful deposit or withdrawal reports back.
type Receipt struct {
	Message        string
	Balance        decimal.Decimal
	WithdrawsToday int
}

func (o *Operation) toExtract() *extract.Operation {
	return &extract.Operation{
		ID:        o.ID,
		Type:      o.Type,
		Amount:    o.Amount.InexactFloat64(),
		CreatedAt: o.CreatedAt.Format(extract.TimeLayout),
	}
}
