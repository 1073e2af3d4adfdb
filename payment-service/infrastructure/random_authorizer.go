package infrastructure

import (
	"context"
	"math/rand"

	"github.com/orderflow/order-system/shared/models"
)

// RandomAuthorizer approves a configurable share of charges. It stands in
// for a real payment gateway; declines exercise the compensation path.
type RandomAuthorizer struct {
	approvalRate float64
}

// NewRandomAuthorizer creates a new RandomAuthorizer
func NewRandomAuthorizer(approvalRate float64) *RandomAuthorizer {
	if approvalRate < 0 {
		approvalRate = 0
	}
	if approvalRate > 1 {
		approvalRate = 1
	}
	return &RandomAuthorizer{approvalRate: approvalRate}
}

// Authorize decides whether the charge goes through
func (a *RandomAuthorizer) Authorize(_ context.Context, _ models.Order) (bool, error) {
	return rand.Float64() < a.approvalRate, nil
}
