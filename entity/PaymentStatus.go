package entity

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
	PaymentFailed PaymentStatus = "failed"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentUnpaid, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// Settled reports whether the payment axis can still move. paid is absorbing.
func (p PaymentStatus) Settled() bool {
	return p == PaymentPaid
}
