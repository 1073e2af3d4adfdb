package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ID represents a unique identifier
type ID string

// GenerateUUID creates a new UUID
func GenerateUUID() ID {
	return ID(uuid.New().String())
}

// NewID creates an ID from string
func NewID(id string) (ID, error) {
	_, err := uuid.Parse(id)
	if err != nil {
		return "", err
	}
	return ID(id), nil
}

// String returns string representation
func (id ID) String() string {
	return string(id)
}

// Timestamps represents creation and update times
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTimestamps creates new timestamps
func NewTimestamps() Timestamps {
	now := time.Now()
	return Timestamps{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Update refreshes the UpdatedAt timestamp
func (t Timestamps) Update() Timestamps {
	t.UpdatedAt = time.Now()
	return t
}

// Version represents entity version for optimistic locking
type Version struct {
	Value int
}

// NewVersion creates new version
func NewVersion() Version {
	return Version{Value: 1}
}

// Update increments version
func (v Version) Update() Version {
	v.Value++
	return v
}

// Money represents monetary amount
type Money struct {
	Amount   int64  `json:"amount"`   // Amount in cents
	Currency string `json:"currency"` // Currency code (USD, EUR, etc.)
}

// NewMoney creates a new money value
func NewMoney(amount int64, currency string) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// IsPositive checks if money is positive
func (m Money) IsPositive() bool {
	return m.Amount > 0
}

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusFailed    OrderStatus = "failed"
)

// OrderItem is one line of an order
type OrderItem struct {
	ProductID ID    `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice Money `json:"unit_price"`
}

// Order is the business payload transacted by the saga. It is copied into
// every message verbatim; only the order service mutates its status.
type Order struct {
	OrderID   ID          `json:"order_id"`
	UserID    ID          `json:"user_id"`
	Items     []OrderItem `json:"items"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewOrder creates a pending order with a fresh identity
func NewOrder(userID ID, items []OrderItem) (*Order, error) {
	now := time.Now()
	order := &Order{
		OrderID:   GenerateUUID(),
		UserID:    userID,
		Items:     items,
		Status:    OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate enforces the admission invariants: at least one item, positive
// quantities and unit prices, a known user.
func (o *Order) Validate() error {
	if o.OrderID == "" {
		return errors.New("order ID is required")
	}

	if o.UserID == "" {
		return errors.New("user ID is required")
	}

	if len(o.Items) == 0 {
		return errors.New("order requires at least one item")
	}

	for _, item := range o.Items {
		if item.ProductID == "" {
			return errors.New("item product ID is required")
		}
		if item.Quantity <= 0 {
			return errors.New("item quantity must be positive")
		}
		if !item.UnitPrice.IsPositive() {
			return errors.New("item unit price must be positive")
		}
	}

	return nil
}

// Total sums the order's line amounts. Items are assumed to share a currency;
// the first item's currency wins.
func (o *Order) Total() Money {
	if len(o.Items) == 0 {
		return Money{}
	}

	total := NewMoney(0, o.Items[0].UnitPrice.Currency)
	for _, item := range o.Items {
		total.Amount += item.UnitPrice.Amount * int64(item.Quantity)
	}
	return total
}
