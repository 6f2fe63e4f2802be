package domain

import "time"

// Order Statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment Statuses
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	Status          string          `json:"status"`
	TotalAmount     float64         `json:"totalAmount"`
	DiscountAmount  float64         `json:"discountAmount"`
	TaxAmount       float64         `json:"taxAmount"`
	CouponCode      string          `json:"couponCode,omitempty"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentStatus   string          `json:"paymentStatus"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type OrderItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // Price at time of purchase
}

// ProcessorOrder is the payment-processor order handle the backend prepares
// for step two of the checkout handshake.
type ProcessorOrder struct {
	OrderID          string  `json:"orderId"`          // our order
	ProcessorOrderID string  `json:"processorOrderId"` // processor-side handle
	Amount           int64   `json:"amount"`           // smallest currency unit
	Currency         string  `json:"currency"`
	Key              string  `json:"key"` // public key for the hosted widget
	AmountDue        float64 `json:"amountDue"`
}

// PaymentResult is what the processor's success callback hands back and what
// the backend verifies server-side.
type PaymentResult struct {
	OrderID          string `json:"orderId"`
	ProcessorOrderID string `json:"processorOrderId"`
	PaymentID        string `json:"paymentId"`
	Signature        string `json:"signature"`
}
