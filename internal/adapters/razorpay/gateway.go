// Package razorpay adapts the Razorpay orders API to domain.PaymentGateway.
package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	rzp "github.com/razorpay/razorpay-go"

	"invento/internal/domain"
)

// Currency of every order.
const Currency = "INR"

// orderAPI is the subset of the Razorpay order resource used by Gateway.
type orderAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	Fetch(orderID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type gateway struct {
	orders    orderAPI
	keyID     string
	keySecret string
}

// NewGateway creates a gateway using the given API key pair.
func NewGateway(keyID, keySecret string) domain.PaymentGateway {
	client := rzp.NewClient(keyID, keySecret)
	return newGateway(client.Order, keyID, keySecret)
}

func newGateway(orders orderAPI, keyID, keySecret string) *gateway {
	return &gateway{orders: orders, keyID: keyID, keySecret: keySecret}
}

func (g *gateway) KeyID() string { return g.keyID }

func (g *gateway) CreateOrder(ctx context.Context, amount int64, receipt string, notes map[string]string) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := map[string]interface{}{
		"amount":   amount,
		"currency": Currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}
	body, err := g.orders.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}
	return parseOrder(body)
}

func (g *gateway) FetchOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := g.orders.Fetch(orderID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay fetch order %s: %w", orderID, err)
	}
	return parseOrder(body)
}

// VerifySignature checks signature against hex(HMAC-SHA256(orderID|paymentID, keySecret)).
func (g *gateway) VerifySignature(orderID, paymentID, signature string) error {
	if orderID == "" || paymentID == "" || signature == "" {
		return domain.Validationf("orderId, paymentId and signature are required for paid events")
	}
	expected := hmacHex(orderID+"|"+paymentID, g.keySecret)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return domain.Validationf("payment signature verification failed")
	}
	return nil
}

func hmacHex(msg, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(msg))
	return hex.EncodeToString(m.Sum(nil))
}

func parseOrder(body map[string]interface{}) (*domain.Order, error) {
	o := &domain.Order{}
	o.ID, _ = body["id"].(string)
	o.Currency, _ = body["currency"].(string)
	o.Receipt, _ = body["receipt"].(string)
	o.Status, _ = body["status"].(string)
	if o.ID == "" {
		return nil, fmt.Errorf("razorpay order response has no id")
	}
	// Razorpay renders empty notes as [] rather than {}.
	if notes, ok := body["notes"].(map[string]interface{}); ok && len(notes) > 0 {
		o.Notes = make(map[string]string, len(notes))
		for k, v := range notes {
			o.Notes[k] = fmt.Sprint(v)
		}
	}
	switch v := body["amount"].(type) {
	case float64:
		o.Amount = int64(v)
	case int64:
		o.Amount = v
	case int:
		o.Amount = int64(v)
	default:
		return nil, fmt.Errorf("razorpay order %s: unexpected amount %v", o.ID, body["amount"])
	}
	return o, nil
}
