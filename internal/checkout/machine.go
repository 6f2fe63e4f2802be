// Package checkout drives the order/payment flow as an explicit finite state
// machine. The legal moves live in one transition table; the three-step
// handshake with the backend and the hosted payment widget (prepare order,
// obtain processor handle, open widget) maps onto the Preparing and
// AwaitingProcessor states.
package checkout

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/api"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
	"github.com/HarshalRajendraPatil/wcommerce-client/internal/store"
	"github.com/HarshalRajendraPatil/wcommerce-client/pkg/logger"
)

type Stage string

const (
	StageShipping          Stage = "shipping"
	StageReview            Stage = "review"
	StagePreparing         Stage = "preparing"
	StageAwaitingProcessor Stage = "awaiting_processor"
	StageVerifying         Stage = "verifying"
	StageSettled           Stage = "settled"
	StageFailed            Stage = "failed"
	StageCancelled         Stage = "cancelled"
)

// transitions is the single source of truth for legal moves. Failed and
// Cancelled both allow re-entering Preparing: retry is the user pressing
// "Place Order" again, there is no automatic retry or backoff.
var transitions = map[Stage][]Stage{
	StageShipping:          {StageReview},
	StageReview:            {StageShipping, StagePreparing},
	StagePreparing:         {StageAwaitingProcessor, StageFailed},
	StageAwaitingProcessor: {StageVerifying, StageFailed, StageCancelled},
	StageVerifying:         {StageSettled, StageFailed},
	StageFailed:            {StagePreparing, StageShipping},
	StageCancelled:         {StagePreparing, StageShipping},
	StageSettled:           {},
}

// InvalidTransitionError reports an illegal stage move.
type InvalidTransitionError struct {
	From Stage
	To   Stage
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("checkout: illegal transition %s -> %s", e.From, e.To)
}

// Callbacks are how the hosted payment widget completes. Exactly one fires
// per Open.
type Callbacks struct {
	OnSuccess func(domain.PaymentResult)
	OnFailure func(error)
	OnDismiss func()
}

// Processor abstracts the externally-hosted payment widget. Load models the
// runtime script fetch and must be idempotent when already loaded; Open keys
// the widget to a prepared processor order.
type Processor interface {
	Load(ctx context.Context) error
	Open(ctx context.Context, order domain.ProcessorOrder, cb Callbacks) error
}

// Machine is one checkout attempt's state. Safe for concurrent use; widget
// callbacks arrive asynchronously.
type Machine struct {
	mu    sync.Mutex
	stage Stage

	client    *api.Client
	store     *store.Store
	processor Processor

	shipping domain.ShippingAddress
	coupon   string

	// idempotencyKey is stable across retries of the same checkout so the
	// backend can dedupe re-submitted provisional orders.
	idempotencyKey string

	order     *domain.Order
	procOrder *domain.ProcessorOrder
	lastErr   string
}

func NewMachine(client *api.Client, st *store.Store, processor Processor) *Machine {
	return &Machine{
		stage:          StageShipping,
		client:         client,
		store:          st,
		processor:      processor,
		idempotencyKey: uuid.NewString(),
	}
}

// Stage returns the current stage.
func (m *Machine) Stage() Stage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stage
}

// LastError returns the message behind the most recent Failed/Cancelled.
func (m *Machine) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Order returns the prepared order, once one exists.
func (m *Machine) Order() *domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order
}

// transition moves to the target stage or fails per the table. Caller holds
// the lock.
func (m *Machine) transition(to Stage) error {
	for _, allowed := range transitions[m.stage] {
		if allowed == to {
			logger.Debug().Str("from", string(m.stage)).Str("to", string(to)).Msg("Checkout transition")
			m.stage = to
			return nil
		}
	}
	return &InvalidTransitionError{From: m.stage, To: to}
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 -]{8,14}$`)

// ValidateShipping applies the client-side gate for shipping -> review:
// required fields plus the phone pattern. Returns field name -> message.
func ValidateShipping(addr domain.ShippingAddress) map[string]string {
	errs := make(map[string]string)
	required := map[string]string{
		"fullName":    addr.FullName,
		"phone":       addr.Phone,
		"addressLine": addr.AddressLine,
		"city":        addr.City,
		"postalCode":  addr.PostalCode,
		"country":     addr.Country,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs[field] = "This field is required"
		}
	}
	if addr.Phone != "" && !phonePattern.MatchString(addr.Phone) {
		errs["phone"] = "Enter a valid phone number"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// SubmitShipping validates the address and advances shipping -> review.
// Field errors stay inline; they never become toasts.
func (m *Machine) SubmitShipping(addr domain.ShippingAddress) (map[string]string, error) {
	if errs := ValidateShipping(addr); errs != nil {
		return errs, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.transition(StageReview); err != nil {
		return nil, err
	}
	m.shipping = addr
	return nil, nil
}

// BackToShipping returns to the address form from review or after a failure.
func (m *Machine) BackToShipping() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transition(StageShipping)
}

// SetCoupon records the coupon code to submit with the order.
func (m *Machine) SetCoupon(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.coupon = code
}

// PlaceOrder runs the handshake: (1) submit the provisional order, (2)
// request the processor order handle, (3) open the hosted widget keyed to it.
// Terminal outcomes arrive through the widget callbacks. Callable from
// review, and again from failed/cancelled as the manual retry.
func (m *Machine) PlaceOrder(ctx context.Context) error {
	m.mu.Lock()
	if err := m.transition(StagePreparing); err != nil {
		m.mu.Unlock()
		return err
	}
	shipping := m.shipping
	coupon := m.coupon
	key := m.idempotencyKey
	m.mu.Unlock()

	// Scope transport logs for the whole handshake to this attempt.
	attempt := logger.Get().With().Str("checkout_key", key).Logger()
	ctx = logger.NewContext(ctx, &attempt)

	order, err := m.client.Orders.Create(ctx, api.CreateOrderInput{
		ShippingAddress: shipping,
		CouponCode:      coupon,
		IdempotencyKey:  key,
	})
	if err != nil {
		m.fail(err)
		return err
	}

	procOrder, err := m.client.Orders.CreateProcessorOrder(ctx, order.ID)
	if err != nil {
		m.fail(err)
		return err
	}

	m.mu.Lock()
	m.order = order
	m.procOrder = procOrder
	if err := m.transition(StageAwaitingProcessor); err != nil {
		m.mu.Unlock()
		return err
	}
	m.mu.Unlock()

	// Step three: the externally-hosted widget. Load must tolerate the
	// already-loaded case; a failed load is a Failed outcome like any other.
	if err := m.processor.Load(ctx); err != nil {
		m.fail(fmt.Errorf("payment widget failed to load: %w", err))
		return err
	}

	cb := Callbacks{
		OnSuccess: func(result domain.PaymentResult) { m.handleSuccess(ctx, result) },
		OnFailure: func(procErr error) { m.fail(procErr) },
		OnDismiss: func() { m.dismiss() },
	}
	if err := m.processor.Open(ctx, *procOrder, cb); err != nil {
		m.fail(err)
		return err
	}
	return nil
}

// handleSuccess verifies the processor's callback payload server-side, then
// clears the cart and settles.
func (m *Machine) handleSuccess(ctx context.Context, result domain.PaymentResult) {
	m.mu.Lock()
	if err := m.transition(StageVerifying); err != nil {
		m.mu.Unlock()
		logger.Error().Err(err).Msg("Dropping processor success callback")
		return
	}
	m.mu.Unlock()

	order, err := m.client.Orders.VerifyPayment(ctx, result)
	if err != nil {
		m.fail(fmt.Errorf("payment verification failed: %w", err))
		return
	}

	if err := m.store.ClearCart(ctx); err != nil {
		// The order is settled server-side; a stale local cart is recoverable
		// on the next fetch.
		logger.Warn().Err(err).Msg("Failed to clear cart after settled payment")
	}

	m.mu.Lock()
	m.order = order
	if err := m.transition(StageSettled); err != nil {
		logger.Error().Err(err).Msg("Settle transition rejected")
	}
	m.lastErr = ""
	m.mu.Unlock()
}

// fail records the error and moves to Failed; the user may retry manually.
func (m *Machine) fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if terr := m.transition(StageFailed); terr != nil {
		logger.Error().Err(terr).Msg("Fail transition rejected")
		return
	}
	m.lastErr = api.MessageOf(err)
}

// dismiss handles the user closing the widget without paying.
func (m *Machine) dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if terr := m.transition(StageCancelled); terr != nil {
		logger.Error().Err(terr).Msg("Cancel transition rejected")
		return
	}
	m.lastErr = "Payment was cancelled"
}
