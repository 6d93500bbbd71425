package enum

// PaymentType represents how a receipt was paid
type PaymentType string

const (
	PaymentTypeCash     PaymentType = "cash"
	PaymentTypeCashless PaymentType = "cashless"
)

// Valid reports whether the payment type is one of the accepted values.
// Stored rows are never validated again: a receipt with an unrecognized type
// still renders, using the configured fallback label.
func (t PaymentType) Valid() bool {
	return t == PaymentTypeCash || t == PaymentTypeCashless
}

func (t PaymentType) String() string {
	return string(t)
}
