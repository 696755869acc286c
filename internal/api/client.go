package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"pos-terminal/internal/auth"
	"pos-terminal/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client is the terminal's HTTP gateway to the POS backend. All payload
// shapes are logical contracts; the backend owns every authoritative record.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *auth.TokenStore
}

func NewClient(baseURL string, timeout time.Duration, tokens *auth.TokenStore) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
	}
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// CreateOrder submits a built order. Any failure leaves the caller's local
// cart untouched; the caller decides whether to retry.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var data struct {
		Order Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &data); err != nil {
		return nil, err
	}
	if data.Order.ID == "" {
		return nil, &Error{Kind: KindTransport, Message: "order payload missing from response"}
	}
	return &data.Order, nil
}

// UpdateTable changes a table's status, typically to Booked right after an
// order lands on it. Best-effort from the checkout flow's point of view.
func (c *Client) UpdateTable(ctx context.Context, tableID string, req UpdateTableRequest) (*Table, error) {
	var table Table
	path := fmt.Sprintf("/api/table/%s", tableID)
	if err := c.do(ctx, http.MethodPut, path, req, &table); err != nil {
		return nil, err
	}
	return &table, nil
}

// StartSession opens a metered session on a device. The response carries the
// server-assigned start time and the hourly rate snapshot.
func (c *Client) StartSession(ctx context.Context, deviceID string) (*Session, error) {
	body := map[string]string{"playStationId": deviceID}
	var data struct {
		Session Session `json:"session"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/playstations/sessions/start", body, &data); err != nil {
		return nil, err
	}
	return &data.Session, nil
}

// EndSession closes a metered session and returns the authoritative invoice.
func (c *Client) EndSession(ctx context.Context, sessionID string) (*SessionInvoice, error) {
	var data struct {
		Invoice SessionInvoice `json:"invoice"`
	}
	path := fmt.Sprintf("/api/playstations/sessions/end/%s", sessionID)
	if err := c.do(ctx, http.MethodPost, path, nil, &data); err != nil {
		return nil, err
	}
	return &data.Invoice, nil
}

// SessionInvoiceByID re-fetches a closed session's invoice.
func (c *Client) SessionInvoiceByID(ctx context.Context, sessionID string) (*SessionInvoice, error) {
	var data struct {
		Invoice SessionInvoice `json:"invoice"`
	}
	path := fmt.Sprintf("/api/playstations/invoices/%s", sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return &data.Invoice, nil
}

// ListPlayStations returns every device with its current session, if any.
func (c *Client) ListPlayStations(ctx context.Context) ([]Device, error) {
	var devices []Device
	if err := c.do(ctx, http.MethodGet, "/api/playstations", nil, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// ListTables returns every dining table and its status.
func (c *Client) ListTables(ctx context.Context) ([]Table, error) {
	var tables []Table
	if err := c.do(ctx, http.MethodGet, "/api/table", nil, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// ListMenu returns the orderable menu items.
func (c *Client) ListMenu(ctx context.Context) ([]MenuItem, error) {
	var items []MenuItem
	if err := c.do(ctx, http.MethodGet, "/api/menu", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	reqID := uuid.New().String()
	ctx = logger.WithRequestID(ctx, reqID)
	log := logger.FromCtx(ctx).With(
		zap.String("method", method),
		zap.String("path", path),
	)

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			log.Error("failed to marshal request body", zap.Error(err))
			return &Error{Kind: KindValidation, Message: "invalid request payload", Err: err}
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	if c.tokens != nil {
		if err := c.tokens.Authorize(req); err != nil && !errors.Is(err, auth.ErrNoToken) {
			return err
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("backend request failed", zap.Error(err))
		return &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return &Error{Kind: KindTransport, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.asError(log, resp.StatusCode, bodyBytes)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		log.Error("failed to decode response envelope", zap.Error(err))
		return &Error{Kind: KindTransport, Err: err}
	}
	if len(env.Data) == 0 {
		return &Error{Kind: KindTransport, Message: "response data missing"}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		log.Error("failed to decode response data", zap.Error(err))
		return &Error{Kind: KindTransport, Err: err}
	}

	return nil
}

// asError maps a non-success response to the client error taxonomy.
func (c *Client) asError(log *zap.Logger, status int, body []byte) error {
	var env envelope
	_ = json.Unmarshal(body, &env)

	apiErr := &Error{Status: status, Message: env.Message}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		apiErr.Kind = KindUnauthorized
		// Stale credentials; force a fresh login before the next call.
		if c.tokens != nil {
			c.tokens.Clear()
		}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		apiErr.Kind = KindValidation
	case status >= http.StatusInternalServerError:
		apiErr.Kind = KindTransport
	default:
		apiErr.Kind = KindBusinessRule
	}

	log.Warn("backend returned non-success",
		zap.Int("status", status),
		zap.String("kind", string(apiErr.Kind)),
		zap.String("message", env.Message),
	)
	return apiErr
}
