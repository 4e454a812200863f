// Package api provides a client for the remote expense HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theirongolddev/spendwatch/internal/model"
)

const (
	maxBodySize = 4 << 20 // 4 MB
	userAgent   = "spendwatch/1.0"
)

var (
	// ErrUnsuccessful indicates a 2xx response whose body did not report success.
	ErrUnsuccessful = errors.New("api: request not successful")
	// ErrEmptyID indicates an operation was called without an expense id.
	ErrEmptyID = errors.New("api: empty expense id")
)

// Error is returned for any response that is not a success. Message holds
// the server's explanation when the body carried one.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "api: %s", e.Op)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the server-provided message carried by err, or fallback
// when there is none.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Client talks to the expense API rooted at a base URL.
type Client struct {
	base *url.URL
	http *http.Client
	log  *zap.Logger
	hook func(Call)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithHook registers fn to be called after every request completes.
func WithHook(fn func(Call)) Option {
	return func(c *Client) { c.hook = fn }
}

// NewClient creates a client for host, which must be an absolute http or
// https URL.
func NewClient(host string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(host))
	if err != nil {
		return nil, fmt.Errorf("api: parsing host: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api: host %q must be an absolute http(s) URL", host)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""

	c := &Client{
		base: u,
		http: &http.Client{},
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Host returns the base URL the client was created with.
func (c *Client) Host() string { return c.base.String() }

// List returns every expense on the server.
func (c *Client) List(ctx context.Context) ([]model.Expense, error) {
	env, err := c.do(ctx, OpList, "", http.MethodGet, "/view", nil)
	if err != nil {
		return nil, err
	}
	var list []model.Expense
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &list); err != nil {
			return nil, fmt.Errorf("api: parsing expenses: %w", err)
		}
	}
	return list, nil
}

// Get returns the expense with the given id.
func (c *Client) Get(ctx context.Context, id string) (model.Expense, error) {
	if id == "" {
		return model.Expense{}, ErrEmptyID
	}
	env, err := c.do(ctx, OpGet, id, http.MethodGet, "/singleView/"+url.PathEscape(id), nil)
	if err != nil {
		return model.Expense{}, err
	}
	var e model.Expense
	if err := json.Unmarshal(env.Data, &e); err != nil {
		return model.Expense{}, fmt.Errorf("api: parsing expense: %w", err)
	}
	return e, nil
}

// Create adds a new expense.
func (c *Client) Create(ctx context.Context, in model.ExpenseInput) (Result, error) {
	env, err := c.do(ctx, OpCreate, "", http.MethodPost, "/add", in)
	if err != nil {
		return Result{}, err
	}
	return Result{Success: true, Message: env.Message}, nil
}

// Update replaces the editable fields of the expense with the given id.
func (c *Client) Update(ctx context.Context, id string, in model.ExpenseInput) (Result, error) {
	if id == "" {
		return Result{}, ErrEmptyID
	}
	env, err := c.do(ctx, OpUpdate, id, http.MethodPut, "/update/"+url.PathEscape(id), in)
	if err != nil {
		return Result{}, err
	}
	return Result{Success: true, Message: env.Message}, nil
}

// Delete removes the expense with the given id.
func (c *Client) Delete(ctx context.Context, id string) (Result, error) {
	if id == "" {
		return Result{}, ErrEmptyID
	}
	env, err := c.do(ctx, OpDelete, id, http.MethodDelete, "/delete/"+url.PathEscape(id), nil)
	if err != nil {
		return Result{}, err
	}
	return Result{Success: true, Message: env.Message}, nil
}

// do sends one request and decodes the envelope. Any outcome other than a
// 2xx status with success=true is returned as *Error.
func (c *Client) do(ctx context.Context, op, id, method, path string, payload any) (*envelope, error) {
	start := time.Now()
	reqID := uuid.NewString()
	call := Call{Op: op, ExpenseID: id, RequestID: reqID}

	env, status, err := c.send(ctx, method, path, reqID, payload)
	call.Status = status
	call.Duration = time.Since(start)
	if env != nil {
		call.Message = env.Message
	}

	switch {
	case err != nil:
		err = &Error{Op: op, Status: status, Message: call.Message, Err: err}
	case status < 200 || status >= 300:
		err = &Error{Op: op, Status: status, Message: call.Message}
	case !env.Success:
		err = &Error{Op: op, Status: status, Message: call.Message, Err: ErrUnsuccessful}
	}
	call.Err = err
	call.Success = err == nil

	fields := []zap.Field{
		zap.String("op", op),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("duration", call.Duration),
		zap.String("request_id", reqID),
	}
	if err != nil {
		c.log.Warn("api request failed", append(fields, zap.Error(err))...)
	} else {
		c.log.Debug("api request", fields...)
	}
	if c.hook != nil {
		c.hook(call)
	}

	if err != nil {
		return nil, err
	}
	return env, nil
}

// send performs the HTTP exchange. The envelope is returned whenever the
// body parsed, even on error statuses, so the server message can surface.
func (c *Client) send(ctx context.Context, method, path, reqID string, payload any) (*envelope, int, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("encoding body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	// path is already escaped; appending to the string form keeps it intact
	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", reqID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, resp.StatusCode, nil
		}
		return nil, resp.StatusCode, fmt.Errorf("parsing response: %w", err)
	}
	return &env, resp.StatusCode, nil
}
