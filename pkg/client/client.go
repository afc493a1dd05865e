// Package client drives the ledger view: every user action is one operation
// that talks to the ledger service and writes the outcome to the view.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amiskov/simple-ledger/pkg/extract"
	"github.com/amiskov/simple-ledger/pkg/ledger"
	"github.com/amiskov/simple-ledger/pkg/logger"
	"github.com/amiskov/simple-ledger/pkg/money"
	"github.com/amiskov/simple-ledger/pkg/view"
)

const (
	msgLoadFailed    = "failed to load statement"
	msgInvalidAmount = "operation failed: invalid amount"
	msgResetOK       = "system reset successfully"
	msgResetFailed   = "failed to reset"
)

var (
	failedText = map[extract.OperationType]string{
		extract.Deposit:  "deposit failed",
		extract.Withdraw: "withdrawal failed",
	}
	doneText = map[extract.OperationType]string{
		extract.Deposit:  "deposit completed",
		extract.Withdraw: "withdrawal completed",
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	errUnknownOperation = errors.New("unknown operation")
)

type iLedger interface {
	Extract(ctx context.Context) (*extract.Extract, error)
	Deposit(ctx context.Context, amount float64) (*ledger.Result, error)
	Withdraw(ctx context.Context, amount float64) (*ledger.Result, error)
	Reset(ctx context.Context) error
}

type Client struct {
	ledger iLedger
	view   view.View
	now    func() time.Time
}

// New wires the client to the ledger service and the view. now is the clock
// used to decide which withdrawals happened today; nil means time.Now.
func New(l iLedger, v view.View, now func() time.Time) *Client {
	if now == nil {
		now = time.Now
	}
	return &Client{
		ledger: l,
		view:   v,
		now:    now,
	}
}

// LoadExtract fetches the statement and redraws balance, statement and the
// remaining withdrawals counter. On failure the view keeps what it showed.
func (c *Client) LoadExtract(ctx context.Context) error {
	ext, err := c.ledger.Extract(ctx)
	if err != nil {
		logger.Log(ctx).Errorf("client: failed loading extract, %v", err)
		c.view.ShowMessage(msgLoadFailed, view.Err)
		return err
	}

	c.view.SetBalance(money.Format(ext.Balance))
	if lines := ext.Statement(); lines != nil {
		c.view.SetStatement(lines)
	} else {
		c.view.SetStatementNote(extract.EmptyStatement)
	}
	c.view.SetRemainingWithdrawals(ext.RemainingWithdrawals(c.now()))

	logger.Log(ctx).Debugf("client: extract loaded, %d operations", len(ext.Operations))
	return nil
}

// Submit sends a deposit or a withdrawal of the amount typed in raw.
// Invalid amounts never reach the service; a successful operation is
// followed by a fresh LoadExtract.
func (c *Client) Submit(ctx context.Context, kind extract.OperationType, raw string) error {
	var send func(context.Context, float64) (*ledger.Result, error)
	switch kind {
	case extract.Deposit:
		send = c.ledger.Deposit
	case extract.Withdraw:
		send = c.ledger.Withdraw
	default:
		return fmt.Errorf("client: can't submit `%s`, %w", kind, errUnknownOperation)
	}

	c.view.HideMessage()

	amount := money.Parse(raw)
	if !money.Valid(amount) {
		logger.Log(ctx).Infof("client: rejected %s of `%s`", kind, raw)
		c.view.ShowMessage(msgInvalidAmount, view.Err)
		return fmt.Errorf("client: can't %s `%s`, %w", kind, raw, ErrInvalidAmount)
	}

	res, err := send(ctx, amount)
	if err != nil {
		logger.Log(ctx).Errorf("client: %s of %.2f failed, %v", kind, amount, err)
		c.view.ShowMessage(remoteText(err, failedText[kind]), view.Err)
		return err
	}

	c.view.SetInput("")
	msg := res.Message
	if msg == "" {
		msg = doneText[kind]
	}
	c.view.ShowMessage(msg, view.OK)

	return c.LoadExtract(ctx)
}

// Reset wipes the ledger without asking for confirmation.
func (c *Client) Reset(ctx context.Context) error {
	if err := c.ledger.Reset(ctx); err != nil {
		logger.Log(ctx).Errorf("client: reset failed, %v", err)
		c.view.ShowMessage(msgResetFailed, view.Err)
		return err
	}

	c.view.ShowMessage(msgResetOK, view.Warn)
	return c.LoadExtract(ctx)
}

// remoteText prefers the error text the service sent over fallback.
func remoteText(err error, fallback string) string {
	var lerr *ledger.Error
	if errors.As(err, &lerr) && lerr.Message != "" {
		return lerr.Message
	}
	return fallback
}
