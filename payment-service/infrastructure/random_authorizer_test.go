package infrastructure

import (
	"context"
	"testing"

	"github.com/orderflow/order-system/shared/models"
	"github.com/stretchr/testify/assert"
)

func TestRandomAuthorizer_Authorize(t *testing.T) {
	t.Run("rate of one approves everything", func(t *testing.T) {
		authorizer := NewRandomAuthorizer(1)

		for i := 0; i < 100; i++ {
			approved, err := authorizer.Authorize(context.Background(), models.Order{})
			assert.NoError(t, err)
			assert.True(t, approved)
		}
	})

	t.Run("rate of zero declines everything", func(t *testing.T) {
		authorizer := NewRandomAuthorizer(0)

		for i := 0; i < 100; i++ {
			approved, err := authorizer.Authorize(context.Background(), models.Order{})
			assert.NoError(t, err)
			assert.False(t, approved)
		}
	})

	t.Run("out of range rates are clamped", func(t *testing.T) {
		approved, err := NewRandomAuthorizer(7).Authorize(context.Background(), models.Order{})
		assert.NoError(t, err)
		assert.True(t, approved)

		approved, err = NewRandomAuthorizer(-1).Authorize(context.Background(), models.Order{})
		assert.NoError(t, err)
		assert.False(t, approved)
	})
}
