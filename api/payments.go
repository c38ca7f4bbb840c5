package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iamkibet/bitedash-app-sub000/entity"
)

type InitiatePaymentRes struct {
	Message   string `json:"message"`
	Reference string `json:"reference"`
}

// InitiatePayment fires the mobile-money prompt to phone for the order and
// returns the reference handle the polling loop verifies against.
func (c *Client) InitiatePayment(ctx context.Context, orderID uint, phone string) (*InitiatePaymentRes, error) {
	body := map[string]string{"phone_number": phone}
	var out InitiatePaymentRes
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/payments/initiate", orderID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// verifyRes is the backend's unnormalized verify shape. Depending on the
// gateway path it answers with either "status" or "payment_status".
type verifyRes struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// VerifyPayment checks a payment reference and returns the canonical
// payment status, collapsing both historical response shapes.
func (c *Client) VerifyPayment(ctx context.Context, reference string) (entity.PaymentStatus, error) {
	var out verifyRes
	if err := c.do(ctx, http.MethodGet, "/payments/"+reference+"/verify", nil, &out); err != nil {
		return entity.PaymentUnpaid, err
	}
	return normalizeVerify(out), nil
}

func normalizeVerify(v verifyRes) entity.PaymentStatus {
	for _, s := range []string{v.PaymentStatus, v.Status} {
		switch s {
		case "completed", "paid":
			return entity.PaymentPaid
		case "failed", "cancelled":
			return entity.PaymentFailed
		}
	}
	return entity.PaymentUnpaid
}
