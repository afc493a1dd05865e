package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/amiskov/simple-ledger/pkg/extract"
	"github.com/amiskov/simple-ledger/pkg/logger"
)

const (
	extractPath  = "/api/extract"
	depositPath  = "/api/deposit"
	withdrawPath = "/api/withdraw"
	resetPath    = "/api/reset"
)

type Client struct {
	client *resty.Client
}

// NewClient returns a client for the ledger service at addr. A zero timeout
// leaves requests unbounded apart from the caller's context.
func NewClient(addr string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(addr).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Client{client: c}
}

func (c *Client) Extract(ctx context.Context) (*extract.Extract, error) {
	resp, err := c.client.R().SetContext(ctx).Get(extractPath)
	if err != nil {
		logger.Log(ctx).Errorf("ledger: failed sending request to %s, %v", extractPath, err)
		return nil, fmt.Errorf("ledger: failed sending request to %s, %w", extractPath, err)
	}
	if !resp.IsSuccess() {
		return nil, responseError(extractPath, resp)
	}

	ext := new(extract.Extract)
	if err := json.Unmarshal(resp.Body(), ext); err != nil {
		logger.Log(ctx).Errorf("ledger: failed parsing extract, %v", err)
		return nil, fmt.Errorf("ledger: failed parsing extract, %w", err)
	}
	return ext, nil
}

func (c *Client) Deposit(ctx context.Context, amount float64) (*Result, error) {
	return c.postAmount(ctx, depositPath, amount)
}

func (c *Client) Withdraw(ctx context.Context, amount float64) (*Result, error) {
	return c.postAmount(ctx, withdrawPath, amount)
}

// Reset wipes every operation on the service. Any 2xx answer is a success.
func (c *Client) Reset(ctx context.Context) error {
	resp, err := c.client.R().SetContext(ctx).Post(resetPath)
	if err != nil {
		logger.Log(ctx).Errorf("ledger: failed sending request to %s, %v", resetPath, err)
		return fmt.Errorf("ledger: failed sending request to %s, %w", resetPath, err)
	}
	if !resp.IsSuccess() {
		return responseError(resetPath, resp)
	}
	return nil
}

func (c *Client) postAmount(ctx context.Context, path string, amount float64) (*Result, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(amountRequest{Amount: amount}).
		Post(path)
	if err != nil {
		logger.Log(ctx).Errorf("ledger: failed sending request to %s, %v", path, err)
		return nil, fmt.Errorf("ledger: failed sending request to %s, %w", path, err)
	}
	if !resp.IsSuccess() {
		return nil, responseError(path, resp)
	}

	res := new(Result)
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), res); err != nil {
			// The operation went through, only the message is lost.
			logger.Log(ctx).Warnf("ledger: failed parsing response from %s, %v", path, err)
		}
	}
	return res, nil
}

func responseError(path string, resp *resty.Response) *Error {
	e := &Error{Path: path, Status: resp.StatusCode()}
	body := errorBody{}
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		e.Message = body.Error
	}
	return e
}
