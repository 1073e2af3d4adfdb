package domain

import (
	"context"
	"time"

	"github.com/orderflow/order-system/shared/events"
	"github.com/orderflow/order-system/shared/models"
	"github.com/pkg/errors"
)

// SagaStatus represents the status of a saga
type SagaStatus string

// The completing and compensating statuses are the publish-in-flight halves
// of their terminal states: the transition is persisted before its commands
// go on the wire, and the terminal status is written only after a successful
// publish. A crash or publish failure in between leaves the saga in the
// intermediate status, where redelivery and the watchdog can re-emit.
const (
	SagaStatusPending      SagaStatus = "pending"
	SagaStatusCompleting   SagaStatus = "completing"
	SagaStatusCompleted    SagaStatus = "completed"
	SagaStatusCompensating SagaStatus = "compensating"
	SagaStatusFailed       SagaStatus = "failed"
)

// Step names a forward step confirmed completed. The persisted step list is
// the only source of truth for which compensations are owed; it is never
// re-derived from the order payload.
type Step string

const (
	StepInventoryReserved Step = "inventory_reserved"
	StepPaymentProcessed  Step = "payment_processed"
	StepNotified          Step = "notified"
	StepCompensated       Step = "compensated"
)

// compensationTopics maps each forward step to the command that undoes it.
// Steps without an entry (notified, compensated) have nothing to reverse.
var compensationTopics = map[Step]events.Topic{
	StepInventoryReserved: events.InventoryCompensationTopic,
	StepPaymentProcessed:  events.PaymentCompensationTopic,
}

var (
	// ErrSagaAlreadyFailed rejects forward progress on a failed saga. Callers
	// treat it as an idempotent ignore, not a fault.
	ErrSagaAlreadyFailed = errors.New("saga already failed")

	// ErrSagaExists signals a duplicate saga.start for an order already admitted
	ErrSagaExists = errors.New("saga already exists for order")

	// ErrVersionConflict signals a lost optimistic-locking race; the caller
	// reloads and retries
	ErrVersionConflict = errors.New("saga version conflict")
)

// SagaState is the coordinator's record of one saga, keyed by order.
type SagaState struct {
	OrderID          models.ID
	Status           SagaStatus
	Steps            []Step
	CompensationData models.Order
	Timestamps       models.Timestamps
	Version          models.Version

	events []*events.Event
}

// SagaRepository persists saga records. Update must be conditional on the
// previous version so concurrent coordinator instances cannot interleave
// transitions on one saga.
type SagaRepository interface {
	Insert(ctx context.Context, saga *SagaState) error
	Update(ctx context.Context, saga *SagaState) error
	FindByOrderID(ctx context.Context, orderID models.ID) (*SagaState, error)
	FindStale(ctx context.Context, olderThan time.Time, limit int) ([]*SagaState, error)
}

// StartSaga admits an order into the saga: a pending record with the order
// payload snapshotted for later compensation, plus the first forward command.
func StartSaga(order models.Order) *SagaState {
	saga := &SagaState{
		OrderID:          order.OrderID,
		Status:           SagaStatusPending,
		Steps:            []Step{},
		CompensationData: order,
		Timestamps:       models.NewTimestamps(),
		Version:          models.NewVersion(),
	}

	saga.recordEvent(events.NewEvent(saga.OrderID, events.InventoryCommandTopic, order).
		WithCorrelationID(saga.OrderID))

	return saga
}

// HasStep reports whether the step was already confirmed
func (s *SagaState) HasStep(step Step) bool {
	for _, existing := range s.Steps {
		if existing == step {
			return true
		}
	}
	return false
}

// ConfirmInventoryReserved records the inventory step and commands the
// payment step. A duplicate confirmation is a no-op: the step list is
// unchanged and no second payment command is emitted.
func (s *SagaState) ConfirmInventoryReserved() error {
	if s.Status == SagaStatusFailed || s.Status == SagaStatusCompensating {
		return ErrSagaAlreadyFailed
	}

	if s.HasStep(StepInventoryReserved) {
		return nil
	}

	s.appendStep(StepInventoryReserved)
	s.touch()
	s.recordEvent(events.NewEvent(s.OrderID, events.PaymentCommandTopic, s.CompensationData).
		WithCorrelationID(s.OrderID))

	return nil
}

// ConfirmPaymentApproved records the payment and notification steps, moves
// the saga to completing, and commands the success notification. Re-confirming
// a completing saga re-records the command without touching the step list, so
// a delivery whose publish failed can put the notification back on the wire.
func (s *SagaState) ConfirmPaymentApproved() error {
	if s.Status == SagaStatusFailed || s.Status == SagaStatusCompensating {
		return ErrSagaAlreadyFailed
	}

	if s.HasStep(StepPaymentProcessed) && s.Status != SagaStatusCompleting {
		return nil
	}

	if !s.HasStep(StepPaymentProcessed) {
		s.appendStep(StepPaymentProcessed)
		s.appendStep(StepNotified)
		s.touch()
		s.Status = SagaStatusCompleting
	}

	s.recordEvent(events.NewEvent(s.OrderID, events.NotifySuccessTopic, s.CompensationData).
		WithCorrelationID(s.OrderID))

	return nil
}

// Compensate moves the saga to compensating and records one compensation
// command per completed forward step, in the exact reverse of completion
// order, followed by the order-record cancellation and the failure
// notification. Compensating again re-records the same commands, so a
// delivery whose publish failed can re-emit the fan-out; a saga that already
// failed refuses a second one.
func (s *SagaState) Compensate(reason string) error {
	if s.Status == SagaStatusFailed {
		return ErrSagaAlreadyFailed
	}

	for i := len(s.Steps) - 1; i >= 0; i-- {
		topic, ok := compensationTopics[s.Steps[i]]
		if !ok {
			continue
		}
		s.recordEvent(events.NewEvent(s.OrderID, topic, s.CompensationData).
			WithCorrelationID(s.OrderID).
			WithMetadata("reason", reason))
	}

	s.recordEvent(events.NewEvent(s.OrderID, events.OrderCompensationTopic, s.CompensationData).
		WithCorrelationID(s.OrderID).
		WithMetadata("reason", reason))
	s.recordEvent(events.NewEvent(s.OrderID, events.NotifyFailureTopic, s.CompensationData).
		WithCorrelationID(s.OrderID).
		WithMetadata("reason", reason))

	if s.Status != SagaStatusCompensating {
		s.Status = SagaStatusCompensating
		s.appendStep(StepCompensated)
		s.touch()
	}

	return nil
}

// FinishCompletion moves a completing saga to completed once its success
// notification is on the wire
func (s *SagaState) FinishCompletion() {
	s.Status = SagaStatusCompleted
	s.touch()
}

// FinishCompensation moves a compensating saga to failed once its fan-out is
// on the wire
func (s *SagaState) FinishCompensation() {
	s.Status = SagaStatusFailed
	s.touch()
}

// IsTerminal reports whether no further transitions are possible
func (s *SagaState) IsTerminal() bool {
	return s.Status == SagaStatusCompleted || s.Status == SagaStatusFailed
}

// StuckSince reports how long the saga has been waiting in a non-terminal
// state without progress
func (s *SagaState) StuckSince() time.Time {
	return s.Timestamps.UpdatedAt
}

func (s *SagaState) appendStep(step Step) {
	s.Steps = append(s.Steps, step)
}

// touch bumps the optimistic-locking version exactly once per transition,
// regardless of how many steps the transition appended.
func (s *SagaState) touch() {
	s.Timestamps = s.Timestamps.Update()
	s.Version = s.Version.Update()
}

// Events returns the commands recorded by the last transition
func (s *SagaState) Events() []*events.Event {
	return s.events
}

// ClearEvents clears recorded commands
func (s *SagaState) ClearEvents() {
	s.events = make([]*events.Event, 0)
}

func (s *SagaState) recordEvent(event *events.Event) {
	s.events = append(s.events, event)
}
