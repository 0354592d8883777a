package domain

import (
	"context"
	"time"
)

// OrderStatusPaid is the gateway status of a fully captured order.
const OrderStatusPaid = "paid"

// PaymentRecord marks a gateway payment as consumed by a registration.
type PaymentRecord struct {
	PaymentID string    `bson:"_id" json:"paymentId"`
	OrderID   string    `bson:"orderId" json:"orderId"`
	EventID   string    `bson:"eventId" json:"eventId"`
	Amount    int64     `bson:"amount" json:"amount"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// PaymentRepository stores consumed payments. Records are insert-only.
type PaymentRepository interface {
	Exists(ctx context.Context, paymentID string) (bool, error)
	// Create returns ErrPaymentAlreadyConsumed when the payment id is already recorded.
	Create(ctx context.Context, rec *PaymentRecord) error
}

// Order is a payment gateway order.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
	// Notes holds the key/value notes attached at creation, including "eventId".
	Notes map[string]string `json:"notes,omitempty"`
}

// OrderNoteEventID is the order note naming the event an order was created for.
const OrderNoteEventID = "eventId"

// PaymentGateway is the port to the third-party payment provider.
type PaymentGateway interface {
	// CreateOrder creates an order for amount minor units.
	CreateOrder(ctx context.Context, amount int64, receipt string, notes map[string]string) (*Order, error)
	FetchOrder(ctx context.Context, orderID string) (*Order, error)
	// VerifySignature checks the gateway signature over "orderID|paymentID".
	VerifySignature(orderID, paymentID, signature string) error
	KeyID() string
}

// CreateOrderResult is returned by the order endpoint. Free events carry no order.
type CreateOrderResult struct {
	Free  bool   `json:"free"`
	Order *Order `json:"order,omitempty"`
	KeyID string `json:"keyId,omitempty"`
}
