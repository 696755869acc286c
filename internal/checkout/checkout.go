package checkout

import (
	"context"
	"sync"

	"pos-terminal/internal/api"
	"pos-terminal/internal/cart"
	"pos-terminal/internal/logger"
	"pos-terminal/internal/resources"

	"go.uber.org/zap"
)

// Backend is the slice of the API client the checkout flow consumes.
type Backend interface {
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) (*api.Order, error)
	UpdateTable(ctx context.Context, tableID string, req api.UpdateTableRequest) (*api.Table, error)
	StartSession(ctx context.Context, deviceID string) (*api.Session, error)
	EndSession(ctx context.Context, sessionID string) (*api.SessionInvoice, error)
}

// Checkout owns the staging state of one order: the cart, customer details
// and the table/session target. It is created empty per checkout context and
// cleared only once the server confirms the order — never speculatively.
type Checkout struct {
	mu       sync.Mutex
	backend  Backend
	cards    *resources.Store
	cart     *cart.Cart
	customer Customer
	payment  api.PaymentMethod
	tableID  string
	session  string
	state    State
	inFlight bool
}

func New(backend Backend, cards *resources.Store) *Checkout {
	return &Checkout{
		backend: backend,
		cards:   cards,
		cart:    cart.New(),
		payment: api.PaymentCash,
		state:   StateIdle,
	}
}

func (c *Checkout) Cart() *cart.Cart {
	return c.cart
}

func (c *Checkout) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Checkout) SetCustomer(customer Customer) {
	c.mu.Lock()
	c.customer = customer
	c.mu.Unlock()
}

func (c *Checkout) Customer() Customer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customer
}

func (c *Checkout) SetPaymentMethod(method api.PaymentMethod) {
	c.mu.Lock()
	c.payment = method
	c.mu.Unlock()
}

// AttachTable targets the order at a dining table. Table and session targets
// are mutually exclusive.
func (c *Checkout) AttachTable(tableID string) {
	c.mu.Lock()
	c.tableID = tableID
	c.session = ""
	c.mu.Unlock()
}

// AttachSession targets the order at a running metered session.
func (c *Checkout) AttachSession(sessionID string) {
	c.mu.Lock()
	c.session = sessionID
	c.tableID = ""
	c.mu.Unlock()
}

// Reset returns a confirmed or abandoned checkout to a fresh idle state.
func (c *Checkout) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cart.Clear()
	c.customer = Customer{}
	c.payment = api.PaymentCash
	c.tableID = ""
	c.session = ""
	c.state = StateIdle
}

// Submit converts the staged state into a confirmed server order.
//
// Exactly one submission may be in flight per checkout; a second trigger
// returns ErrSubmitInFlight without touching the network. On any rejection
// the cart and customer details stay intact so the cashier can correct and
// retry; the cart is cleared only after the server has confirmed.
func (c *Checkout) Submit(ctx context.Context) (*Result, error) {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if c.cart.IsEmpty() {
		c.mu.Unlock()
		return nil, cart.ErrCartEmpty
	}
	if c.tableID == "" && c.session == "" {
		c.mu.Unlock()
		return nil, ErrNoTarget
	}

	req := c.buildRequest()
	c.inFlight = true
	c.state = StateSubmitting
	c.mu.Unlock()

	log := logger.FromCtx(ctx).With(
		zap.Int("items", len(req.Items)),
		zap.String("payment_method", string(req.PaymentMethod)),
	)
	log.Info("submitting order")

	order, err := c.backend.CreateOrder(ctx, req)

	c.mu.Lock()
	c.inFlight = false
	if err != nil {
		// Business, validation or transport failure: back to idle with
		// local state preserved for a manual retry.
		c.state = StateIdle
		c.mu.Unlock()
		log.Warn("order submission failed", zap.Error(err))
		return nil, err
	}

	c.cart.Clear()
	c.customer = Customer{}
	c.tableID = ""
	c.session = ""
	c.state = StateConfirmed
	c.mu.Unlock()

	log.Info("order confirmed",
		zap.String("order_id", order.ID),
		zap.String("order_code", order.OrderCode),
		zap.Float64("total", order.Bills.Total),
	)

	result := &Result{Order: order}

	// Best-effort follow-up: mark the table booked. The order is already the
	// source of truth, so a failure here only produces a warning.
	if order.Table != nil && order.Table.ID != "" {
		_, tableErr := c.backend.UpdateTable(ctx, order.Table.ID, api.UpdateTableRequest{
			Status:  api.TableBooked,
			OrderID: order.ID,
		})
		if tableErr != nil {
			log.Warn("table status update failed after confirmed order",
				zap.String("table_id", order.Table.ID),
				zap.Error(tableErr),
			)
			result.TableWarning = "order confirmed, but updating the table status failed"
		}
	}

	return result, nil
}

// buildRequest stages the API payload. Customer fields fall back to the
// walk-in defaults and guest count never drops below one.
func (c *Checkout) buildRequest() api.CreateOrderRequest {
	customer := c.customer
	if customer.Name == "" {
		customer.Name = defaultCustomerName
	}
	if customer.Phone == "" {
		customer.Phone = defaultCustomerPhone
	}
	if customer.Guests < 1 {
		customer.Guests = 1
	}

	lines := c.cart.Lines()
	items := make([]api.OrderItemInput, 0, len(lines))
	for _, line := range lines {
		items = append(items, api.OrderItemInput{
			Item:      line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	return api.CreateOrderRequest{
		TableID:   c.tableID,
		SessionID: c.session,
		Items:     items,
		CustomerDetails: api.CustomerDetails{
			Name:   customer.Name,
			Phone:  customer.Phone,
			Guests: customer.Guests,
		},
		PaymentMethod: c.payment,
	}
}
