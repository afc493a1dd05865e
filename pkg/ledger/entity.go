package ledger

import "fmt"

// Result is the success body of a deposit or withdrawal.
type Result struct {
	Message        string   `json:"message"`
	Balance        *float64 `json:"balance,omitempty"`
	WithdrawsToday *int     `json:"withdraws_today,omitempty"`
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Error is a non-2xx answer from the ledger service. Message holds the
// service's own error text and is empty when it sent none.
type Error struct {
	Path    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("ledger: %s answered %d", e.Path, e.Status)
	}
	return fmt.Sprintf("ledger: %s answered %d: %s", e.Path, e.Status, e.Message)
}
