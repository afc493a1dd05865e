package operation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amiskov/simple-ledger/pkg/extract"
)

// MemRepo keeps operations in memory. It backs the server when no database
// is configured and is used in tests.
type MemRepo struct {
	mu     sync.Mutex
	nextID int64
	ops    []*Operation
}

func NewMemRepo() *MemRepo {
	return &MemRepo{}
}

func (r *MemRepo) Add(_ context.Context, t extract.OperationType, amount decimal.Decimal, at time.Time) (*Operation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	o := &Operation{ID: r.nextID, Type: t, Amount: amount, CreatedAt: at}
	r.ops = append(r.ops, o)
	cp := *o
	return &cp, nil
}

func (r *MemRepo) Balance(_ context.Context) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	balance := decimal.Zero
	for _, o := range r.ops {
		if o.Type == extract.Deposit {
			balance = balance.Add(o.Amount)
		} else {
			balance = balance.Sub(o.Amount)
		}
	}
	return balance, nil
}

func (r *MemRepo) CountWithdrawals(_ context.Context, from, to time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, o := range r.ops {
		if o.Type == extract.Withdraw && !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (r *MemRepo) List(_ context.Context, limit int) ([]*Operation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Operation, 0, len(r.ops))
	for _, o := range r.ops {
		cp := *o
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemRepo) Truncate(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
	r.nextID = 0
	return nil
}
