package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iamkibet/bitedash-app-sub000/entity"
)

// The backend answers verify with either "status" or "payment_status"
// depending on which gateway path handled it; both collapse to one enum
// before any polling decision is made.
func TestNormalizeVerify(t *testing.T) {
	cases := []struct {
		in   verifyRes
		want entity.PaymentStatus
	}{
		{verifyRes{Status: "completed"}, entity.PaymentPaid},
		{verifyRes{Status: "paid"}, entity.PaymentPaid},
		{verifyRes{PaymentStatus: "paid"}, entity.PaymentPaid},
		{verifyRes{PaymentStatus: "completed"}, entity.PaymentPaid},
		{verifyRes{Status: "failed"}, entity.PaymentFailed},
		{verifyRes{PaymentStatus: "cancelled"}, entity.PaymentFailed},
		{verifyRes{Status: "pending"}, entity.PaymentUnpaid},
		{verifyRes{}, entity.PaymentUnpaid},
		{verifyRes{Status: "pending", PaymentStatus: "paid"}, entity.PaymentPaid},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeVerify(tc.in), "%+v", tc.in)
	}
}
