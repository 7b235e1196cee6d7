package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is one registration materialized as a priced transaction.
// TransactionID is immutable and unique across all orders.
// swagger:model Order
type Order struct {
	ID            string          `json:"id"`
	Registrant    Registrant      `json:"registrant"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TransactionID string          `json:"transaction_id"`
	Status        OrderStatus     `json:"status"`
	Lines         []*OrderLine    `json:"lines"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OrderLine is one priced unit-group purchased for one session. UnitPrice is
// a snapshot of the product type price at order creation, never a live reference.
// swagger:model OrderLine
type OrderLine struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"order_id"`
	ProductID     string          `json:"product_id"`
	ProductTypeID string          `json:"product_type_id"`
	SessionID     string          `json:"session_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

// OrderRepository defines the interface for order storage.
//
// CreateOrder persists the registrant (guest flow), the order header, and all
// lines in a single transaction. entryRequested maps session id to the number
// of entry units the order adds; the repository re-verifies those against
// session capacity under a row lock and returns *CapacityExceededError when a
// concurrent order has taken the remaining seats.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order, entryRequested map[string]int) error
	GetByID(ctx context.Context, id string) (*Order, error)
	CountEntryLinesBySession(ctx context.Context, sessionID string) (int, error)
	ReplaceLines(ctx context.Context, orderID string, lines []*OrderLine, totalCost decimal.Decimal, status *OrderStatus) (*Order, error)
}

// ProductSelection is one (product, product type, quantity) pick within a session.
type ProductSelection struct {
	ProductID     string `json:"product_id"`
	ProductTypeID string `json:"product_type_id"`
	Quantity      int    `json:"quantity"`
}

// SessionSelection is the set of product picks for one session of the event.
type SessionSelection struct {
	SessionID    string             `json:"session_id"`
	OptOutOfFood bool               `json:"opt_out_of_food"`
	Products     []ProductSelection `json:"products"`
}

// GuestInfo carries the guest flow's registrant fields.
type GuestInfo struct {
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	SponsorMemberID string     `json:"sponsor_member_id"`
	Headcounts      Headcounts `json:"headcounts"`
}

// CostBreakdown is the pricing engine's output. Amounts are exact decimals;
// rounding to two places happens only at the presentation edge.
type CostBreakdown struct {
	EntrySubtotal   decimal.Decimal `json:"entry_subtotal"`
	EntryCost       decimal.Decimal `json:"entry_cost"`
	FoodCost        decimal.Decimal `json:"food_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	DiscountApplied bool            `json:"discount_applied"`
	DiscountFactor  decimal.Decimal `json:"discount_factor"`
}

// DiscountAmount returns the entry fee saved by the discount.
func (c CostBreakdown) DiscountAmount() decimal.Decimal {
	return c.EntrySubtotal.Sub(c.EntryCost)
}

// RegistrationResult is returned to the caller after a registration is accepted.
type RegistrationResult struct {
	Order         *Order        `json:"order"`
	TransactionID string        `json:"transaction_id"`
	Cost          CostBreakdown `json:"cost"`
}

// LineAdjustment is one replacement line in an administrative order edit.
// Quantity zero drops the line.
type LineAdjustment struct {
	ProductID     string `json:"product_id"`
	ProductTypeID string `json:"product_type_id"`
	SessionID     string `json:"session_id"`
	Quantity      int    `json:"quantity"`
}

// RegistrationService validates and materializes registration requests.
// All validation happens before any write; a rejected request leaves no trace.
type RegistrationService interface {
	RegisterGuest(ctx context.Context, eventID string, guest GuestInfo, selections []SessionSelection) (*RegistrationResult, error)
	RegisterMember(ctx context.Context, eventID, memberID string, headcounts Headcounts, selections []SessionSelection) (*RegistrationResult, error)
	// AdjustOrder replaces an order's lines at live prices and recomputes the
	// total. Administrative override: capacity and dine-in rules are not re-run.
	AdjustOrder(ctx context.Context, orderID string, lines []LineAdjustment, status *OrderStatus) (*Order, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
}
