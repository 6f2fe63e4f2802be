package api

import (
	"context"
	"net/http"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// OrderService talks to /orders* and the payment endpoints used by the
// checkout handshake.
type OrderService struct {
	client *Client
}

type CreateOrderInput struct {
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	CouponCode      string                 `json:"couponCode,omitempty"`
	// IdempotencyKey lets the server dedupe a re-submitted provisional order
	// after a payment retry.
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// Create submits the provisional order (checkout handshake step one).
// The server prices the cart authoritatively and returns the prepared order.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput, opts ...Option) (*domain.Order, error) {
	resp, err := s.client.do(ctx, http.MethodPost, "/orders", nil, input, opts...)
	if err != nil {
		return nil, err
	}
	order := &domain.Order{}
	if err := decodeData(resp, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CreateProcessorOrder asks the backend for a payment-processor order handle
// (handshake step two). The hosted payment UI is keyed to this handle.
func (s *OrderService) CreateProcessorOrder(ctx context.Context, orderID string, opts ...Option) (*domain.ProcessorOrder, error) {
	resp, err := s.client.do(ctx, http.MethodPost, "/orders/"+orderID+"/payment", nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	po := &domain.ProcessorOrder{}
	if err := decodeData(resp, po); err != nil {
		return nil, err
	}
	return po, nil
}

// VerifyPayment sends the processor's success callback payload server-side
// for signature verification (handshake completion).
func (s *OrderService) VerifyPayment(ctx context.Context, result domain.PaymentResult, opts ...Option) (*domain.Order, error) {
	resp, err := s.client.do(ctx, http.MethodPost, "/orders/verify-payment", nil, result, opts...)
	if err != nil {
		return nil, err
	}
	order := &domain.Order{}
	if err := decodeData(resp, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Mine lists the authenticated user's orders.
func (s *OrderService) Mine(ctx context.Context, page domain.PageQuery, opts ...Option) ([]domain.Order, *domain.Pagination, error) {
	q := newQuery().Int("page", page.Page).Int("limit", page.Limit)
	resp, err := s.client.do(ctx, http.MethodGet, "/orders/my", q.Values(), nil, opts...)
	if err != nil {
		return nil, nil, err
	}
	var orders []domain.Order
	if err := decodeData(resp, &orders); err != nil {
		return nil, nil, err
	}
	return orders, resp.Pagination, nil
}
