package domain

import (
	"context"
	"time"

	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
)

// ErrInsufficientStock signals that at least one order line could not be
// covered. Reservations taken for the same order in the same attempt are
// rolled back before this is returned.
var ErrInsufficientStock = errors.New("insufficient stock")

// StockLevel is the available quantity of one product
type StockLevel struct {
	ProductID models.ID `json:"product_id"`
	Available int       `json:"available"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Reservation is stock held for one order line. One row per (order, product)
// keeps redelivered reserve commands from decrementing twice.
type Reservation struct {
	OrderID   models.ID `json:"order_id"`
	ProductID models.ID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// InventoryRepository persists stock levels and reservations.
//
// ReserveOrder takes all of the order's lines in one transaction: either
// every line is covered and held, or nothing is and ErrInsufficientStock
// comes back. Lines already reserved for the same order are kept as-is.
//
// ReleaseOrder returns held stock to the pool and reports how many
// reservations it released; releasing an order with no reservations is a
// no-op.
type InventoryRepository interface {
	ReserveOrder(ctx context.Context, order models.Order) error
	ReleaseOrder(ctx context.Context, orderID models.ID) (int, error)
	FindStock(ctx context.Context, productID models.ID) (*StockLevel, error)
}
