package application

import (
	"context"

	"github.com/orderflow/order-system/inventory-service/domain"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
)

// ErrStockNotFound signals an unknown product
var ErrStockNotFound = errors.New("stock not found")

// GetStockQuery requests one product's stock level
type GetStockQuery struct {
	ProductID string `json:"product_id"`
}

// GetStock retrieves a stock level
type GetStock struct {
	inventoryRepository domain.InventoryRepository
}

// NewGetStock creates a new GetStock use case
func NewGetStock(inventoryRepository domain.InventoryRepository) *GetStock {
	return &GetStock{inventoryRepository: inventoryRepository}
}

// Execute retrieves the stock level
func (uc *GetStock) Execute(ctx context.Context, query *GetStockQuery) (*domain.StockLevel, error) {
	productID, err := models.NewID(query.ProductID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid product ID")
	}

	stock, err := uc.inventoryRepository.FindStock(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load stock")
	}

	if stock == nil {
		return nil, ErrStockNotFound
	}

	return stock, nil
}
