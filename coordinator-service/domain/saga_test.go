package domain

import (
	"testing"
	"time"

	"github.com/orderflow/order-system/shared/events"
	"github.com/orderflow/order-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() models.Order {
	return models.Order{
		OrderID: models.GenerateUUID(),
		UserID:  models.GenerateUUID(),
		Items: []models.OrderItem{
			{
				ProductID: models.GenerateUUID(),
				Quantity:  2,
				UnitPrice: models.NewMoney(2500, "USD"),
			},
		},
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func recordedTopics(saga *SagaState) []events.Topic {
	topics := make([]events.Topic, 0, len(saga.Events()))
	for _, event := range saga.Events() {
		topics = append(topics, event.Topic)
	}
	return topics
}

func TestStartSaga(t *testing.T) {
	order := testOrder()

	saga := StartSaga(order)

	assert.Equal(t, order.OrderID, saga.OrderID)
	assert.Equal(t, SagaStatusPending, saga.Status)
	assert.Empty(t, saga.Steps)
	assert.Equal(t, order, saga.CompensationData)
	assert.Equal(t, 1, saga.Version.Value)

	require.Len(t, saga.Events(), 1)
	assert.Equal(t, events.InventoryCommandTopic, saga.Events()[0].Topic)
	assert.Equal(t, order.OrderID, saga.Events()[0].AggregateID)
	assert.Equal(t, order.OrderID, saga.Events()[0].CorrelationID)
}

func TestSagaState_ConfirmInventoryReserved(t *testing.T) {
	t.Run("records step and commands payment", func(t *testing.T) {
		saga := StartSaga(testOrder())
		saga.ClearEvents()

		err := saga.ConfirmInventoryReserved()

		require.NoError(t, err)
		assert.Equal(t, []Step{StepInventoryReserved}, saga.Steps)
		assert.Equal(t, SagaStatusPending, saga.Status)
		assert.Equal(t, 2, saga.Version.Value)
		assert.Equal(t, []events.Topic{events.PaymentCommandTopic}, recordedTopics(saga))
	})

	t.Run("duplicate confirmation is a no-op", func(t *testing.T) {
		saga := StartSaga(testOrder())
		saga.ClearEvents()
		require.NoError(t, saga.ConfirmInventoryReserved())
		saga.ClearEvents()

		err := saga.ConfirmInventoryReserved()

		require.NoError(t, err)
		assert.Equal(t, []Step{StepInventoryReserved}, saga.Steps)
		assert.Equal(t, 2, saga.Version.Value)
		assert.Empty(t, saga.Events())
	})

	t.Run("rejected once compensation is underway", func(t *testing.T) {
		saga := StartSaga(testOrder())
		saga.ClearEvents()
		require.NoError(t, saga.Compensate("inventory shortage"))
		saga.ClearEvents()
		stepsBefore := append([]Step{}, saga.Steps...)

		err := saga.ConfirmInventoryReserved()

		assert.ErrorIs(t, err, ErrSagaAlreadyFailed)
		assert.Equal(t, stepsBefore, saga.Steps)
		assert.Empty(t, saga.Events())
	})

	t.Run("rejected on failed saga", func(t *testing.T) {
		saga := StartSaga(testOrder())
		saga.ClearEvents()
		require.NoError(t, saga.Compensate("inventory shortage"))
		saga.FinishCompensation()
		saga.ClearEvents()

		err := saga.ConfirmInventoryReserved()

		assert.ErrorIs(t, err, ErrSagaAlreadyFailed)
		assert.Empty(t, saga.Events())
	})
}

func TestSagaState_ConfirmPaymentApproved(t *testing.T) {
	t.Run("moves to completing and commands the notification", func(t *testing.T) {
		saga := StartSaga(testOrder())
		require.NoError(t, saga.ConfirmInventoryReserved())
		saga.ClearEvents()

		err := saga.ConfirmPaymentApproved()

		require.NoError(t, err)
		assert.Equal(t, []Step{StepInventoryReserved, StepPaymentProcessed, StepNotified}, saga.Steps)
		assert.Equal(t, SagaStatusCompleting, saga.Status)
		assert.False(t, saga.IsTerminal())
		assert.Equal(t, 3, saga.Version.Value)
		assert.Equal(t, []events.Topic{events.NotifySuccessTopic}, recordedTopics(saga))
	})

	t.Run("one version bump even though two steps are appended", func(t *testing.T) {
		saga := StartSaga(testOrder())
		require.NoError(t, saga.ConfirmInventoryReserved())
		versionBefore := saga.Version.Value

		require.NoError(t, saga.ConfirmPaymentApproved())

		assert.Equal(t, versionBefore+1, saga.Version.Value)
	})

	t.Run("finishing completion terminates the saga", func(t *testing.T) {
		saga := StartSaga(testOrder())
		require.NoError(t, saga.ConfirmInventoryReserved())
		require.NoError(t, saga.ConfirmPaymentApproved())
		versionBefore := saga.Version.Value

		saga.FinishCompletion()

		assert.Equal(t, SagaStatusCompleted, saga.Status)
		assert.True(t, saga.IsTerminal())
		assert.Equal(t, versionBefore+1, saga.Version.Value)
	})

	t.Run("re-confirming a completing saga re-records the notification", func(t *testing.T) {
		saga := StartSaga(testOrder())
		require.NoError(t, saga.ConfirmInventoryReserved())
		require.NoError(t, saga.ConfirmPaymentApproved())
		saga.ClearEvents()
		versionBefore := saga.Version.Value

		err := saga.ConfirmPaymentApproved()

		require.NoError(t, err)
		assert.Equal(t, []Step{StepInventoryReserved, StepPaymentProcessed, StepNotified}, saga.Steps)
		assert.Equal(t, versionBefore, saga.Version.Value)
		assert.Equal(t, []events.Topic{events.NotifySuccessTopic}, recordedTopics(saga))
	})

	t.Run("duplicate approval after completion is a no-op", func(t *testing.T) {
		saga := StartSaga(testOrder())
		require.NoError(t, saga.ConfirmInventoryReserved())
		require.NoError(t, saga.ConfirmPaymentApproved())
		saga.FinishCompletion()
		saga.ClearEvents()

		err := saga.ConfirmPaymentApproved()

		require.NoError(t, err)
		assert.Equal(t, []Step{StepInventoryReserved, StepPaymentProcessed, StepNotified}, saga.Steps)
		assert.Empty(t, saga.Events())
	})

	t.Run("rejected on failed saga", func(t *testing.T) {
		saga := StartSaga(testOrder())
		require.NoError(t, saga.Compensate("payment declined"))
		saga.FinishCompensation()
		saga.ClearEvents()

		err := saga.ConfirmPaymentApproved()

		assert.ErrorIs(t, err, ErrSagaAlreadyFailed)
		assert.Empty(t, saga.Events())
	})
}

func TestSagaState_Compensate(t *testing.T) {
	t.Run("no completed steps", func(t *testing.T) {
		saga := StartSaga(testOrder())
		saga.ClearEvents()

		err := saga.Compensate("inventory shortage")

		require.NoError(t, err)
		assert.Equal(t, SagaStatusCompensating, saga.Status)
		assert.Equal(t, []Step{StepCompensated}, saga.Steps)
		assert.Equal(t, []events.Topic{
			events.OrderCompensationTopic,
			events.NotifyFailureTopic,
		}, recordedTopics(saga))
	})

	t.Run("reverses completed steps in reverse order", func(t *testing.T) {
		saga := StartSaga(testOrder())
		require.NoError(t, saga.ConfirmInventoryReserved())
		saga.Steps = append(saga.Steps, StepPaymentProcessed)
		saga.ClearEvents()

		err := saga.Compensate("fulfillment failure")

		require.NoError(t, err)
		assert.Equal(t, SagaStatusCompensating, saga.Status)
		assert.Equal(t, []events.Topic{
			events.PaymentCompensationTopic,
			events.InventoryCompensationTopic,
			events.OrderCompensationTopic,
			events.NotifyFailureTopic,
		}, recordedTopics(saga))
	})

	t.Run("carries the reason in metadata", func(t *testing.T) {
		saga := StartSaga(testOrder())
		require.NoError(t, saga.ConfirmInventoryReserved())
		saga.ClearEvents()

		require.NoError(t, saga.Compensate("payment declined"))

		for _, event := range saga.Events() {
			reason, ok := event.Metadata.Get("reason")
			assert.True(t, ok)
			assert.Equal(t, "payment declined", reason)
		}
	})

	t.Run("compensating again re-records the same fan-out", func(t *testing.T) {
		saga := StartSaga(testOrder())
		require.NoError(t, saga.ConfirmInventoryReserved())
		require.NoError(t, saga.Compensate("payment declined"))
		firstFanOut := recordedTopics(saga)
		saga.ClearEvents()
		versionBefore := saga.Version.Value
		stepsBefore := append([]Step{}, saga.Steps...)

		err := saga.Compensate("payment declined")

		require.NoError(t, err)
		assert.Equal(t, SagaStatusCompensating, saga.Status)
		assert.Equal(t, stepsBefore, saga.Steps)
		assert.Equal(t, versionBefore, saga.Version.Value)
		assert.Equal(t, firstFanOut, recordedTopics(saga))
	})

	t.Run("finishing compensation terminates the saga", func(t *testing.T) {
		saga := StartSaga(testOrder())
		require.NoError(t, saga.ConfirmInventoryReserved())
		require.NoError(t, saga.Compensate("payment declined"))
		versionBefore := saga.Version.Value

		saga.FinishCompensation()

		assert.Equal(t, SagaStatusFailed, saga.Status)
		assert.True(t, saga.IsTerminal())
		assert.Equal(t, versionBefore+1, saga.Version.Value)
	})

	t.Run("compensation after failure is rejected", func(t *testing.T) {
		saga := StartSaga(testOrder())
		require.NoError(t, saga.ConfirmInventoryReserved())
		require.NoError(t, saga.Compensate("payment declined"))
		saga.FinishCompensation()
		saga.ClearEvents()

		err := saga.Compensate("payment declined")

		assert.ErrorIs(t, err, ErrSagaAlreadyFailed)
		assert.Empty(t, saga.Events())
	})
}

func TestSagaState_HasStep(t *testing.T) {
	saga := StartSaga(testOrder())

	assert.False(t, saga.HasStep(StepInventoryReserved))

	require.NoError(t, saga.ConfirmInventoryReserved())

	assert.True(t, saga.HasStep(StepInventoryReserved))
	assert.False(t, saga.HasStep(StepPaymentProcessed))
}
