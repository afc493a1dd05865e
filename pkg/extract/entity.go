package extract

type OperationType string

const (
	Deposit  OperationType = "deposit"
	Withdraw OperationType = "withdraw"
)

// MaxWithdrawalsPerDay is how many withdrawals the ledger accepts per calendar day.
const MaxWithdrawalsPerDay = 3

// TimeLayout is the wire format of Operation.CreatedAt.
const TimeLayout = "2006-01-02 15:04:05"

// Operation is a single deposit or withdrawal as returned by the ledger service.
type Operation struct {
	ID        int64         `json:"id,omitempty"`
	Type      OperationType `json:"type"`
	Amount    float64       `json:"amount"`
	CreatedAt string        `json:"created_at"`
}

// Extract is the account statement: current balance plus past operations
// in the order the service returned them.
type Extract struct {
	Balance    float64      `json:"balance"`
	Operations []*Operation `json:"operations"`
}
