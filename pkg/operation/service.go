package operation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amiskov/simple-ledger/pkg/extract"
	"github.com/amiskov/simple-ledger/pkg/logger"
	"github.com/amiskov/simple-ledger/pkg/money"
)

// ExtractLimit caps how many operations an extract lists.
const ExtractLimit = 200

// MaxWithdraw is the largest single withdrawal.
var MaxWithdraw = decimal.RequireFromString("500.00")

const (
	msgDeposited = "deposit completed successfully"
	msgWithdrawn = "withdrawal completed successfully"
)

// Validation errors carry the text shown to the user.
var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrNotPositive       = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("operation failed: insufficient funds")
	ErrWithdrawLimit     = fmt.Errorf("operation failed: withdrawal limit is %s", MaxWithdraw.StringFixed(2))
	ErrDailyLimit        = fmt.Errorf("operation failed: daily withdrawal limit exceeded (%d)", extract.MaxWithdrawalsPerDay)
)

// ValidationMessage returns the user-facing text of err when it was caused
// by the request rather than by the storage.
func ValidationMessage(err error) (string, bool) {
	for _, target := range []error{ErrInvalidAmount, ErrNotPositive, ErrInsufficientFunds, ErrWithdrawLimit, ErrDailyLimit} {
		if errors.Is(err, target) {
			return target.Error(), true
		}
	}
	return "", false
}

type iRepo interface {
	Add(ctx context.Context, t extract.OperationType, amount decimal.Decimal, at time.Time) (*Operation, error)
	Balance(ctx context.Context) (decimal.Decimal, error)
	CountWithdrawals(ctx context.Context, from, to time.Time) (int, error)
	List(ctx context.Context, limit int) ([]*Operation, error)
	Truncate(ctx context.Context) error
}

type Service struct {
	// mu serializes mutations so withdrawal checks and inserts see the same balance.
	mu   sync.Mutex
	repo iRepo
	now  func() time.Time
}

func NewService(r iRepo, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: r,
		now:  now,
	}
}

// ParseAmount reads a raw request amount and rejects anything that is not
// a positive number of cents.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := money.ParseDecimal(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("operation: %v, %w", err, ErrInvalidAmount)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("operation: amount %s, %w", amount, ErrNotPositive)
	}
	return amount, nil
}

func (s *Service) Extract(ctx context.Context) (*extract.Extract, error) {
	balance, err := s.repo.Balance(ctx)
	if err != nil {
		logger.Log(ctx).Errorf("operation: can't get balance, %v", err)
		return nil, err
	}
	ops, err := s.repo.List(ctx, ExtractLimit)
	if err != nil {
		logger.Log(ctx).Errorf("operation: can't list operations, %v", err)
		return nil, err
	}

	ext := &extract.Extract{
		Balance:    balance.InexactFloat64(),
		Operations: make([]*extract.Operation, 0, len(ops)),
	}
	for _, o := range ops {
		ext.Operations = append(ext.Operations, o.toExtract())
	}
	return ext, nil
}

func (s *Service) Deposit(ctx context.Context, amount decimal.Decimal) (*Receipt, error) {
	if !amount.IsPositive() {
		return nil, ErrNotPositive
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.Add(ctx, extract.Deposit, amount, s.stamp()); err != nil {
		logger.Log(ctx).Errorf("operation: deposit failed, %v", err)
		return nil, err
	}
	balance, err := s.repo.Balance(ctx)
	if err != nil {
		logger.Log(ctx).Errorf("operation: can't get balance, %v", err)
		return nil, err
	}
	return &Receipt{Message: msgDeposited, Balance: balance}, nil
}

func (s *Service) Withdraw(ctx context.Context, amount decimal.Decimal) (*Receipt, error) {
	if !amount.IsPositive() {
		return nil, ErrNotPositive
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balance, err := s.repo.Balance(ctx)
	if err != nil {
		logger.Log(ctx).Errorf("operation: can't get balance, %v", err)
		return nil, err
	}
	if amount.GreaterThan(balance) {
		logger.Log(ctx).Infof("operation: can't withdraw %s from balance %s", amount, balance)
		return nil, ErrInsufficientFunds
	}
	if amount.GreaterThan(MaxWithdraw) {
		return nil, ErrWithdrawLimit
	}

	now := s.stamp()
	from, to := dayBounds(now)
	today, err := s.repo.CountWithdrawals(ctx, from, to)
	if err != nil {
		logger.Log(ctx).Errorf("operation: can't count withdrawals, %v", err)
		return nil, err
	}
	if today >= extract.MaxWithdrawalsPerDay {
		return nil, ErrDailyLimit
	}

	if _, err := s.repo.Add(ctx, extract.Withdraw, amount, now); err != nil {
		logger.Log(ctx).Errorf("operation: withdraw failed, %v", err)
		return nil, err
	}
	balance, err = s.repo.Balance(ctx)
	if err != nil {
		logger.Log(ctx).Errorf("operation: can't get balance, %v", err)
		return nil, err
	}
	return &Receipt{Message: msgWithdrawn, Balance: balance, WithdrawsToday: today + 1}, nil
}

// Reset removes every operation.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Truncate(ctx); err != nil {
		logger.Log(ctx).Errorf("operation: reset failed, %v", err)
		return err
	}
	logger.Log(ctx).Warn("operation: all operations removed")
	return nil
}

func (s *Service) stamp() time.Time {
	return s.now().Truncate(time.Second)
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 0, 1)
}
