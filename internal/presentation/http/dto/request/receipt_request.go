package request

// ProductRequest represents one product entry in a create-receipt request.
// Value rules (positive price and quantity) are checked in the service so
// violations surface as 422, not 400.
type ProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// PaymentRequest represents the payment section of a create-receipt request
type PaymentRequest struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// CreateReceiptRequest represents a create-receipt request
type CreateReceiptRequest struct {
	Products []ProductRequest `json:"products" binding:"required"`
	Payment  PaymentRequest   `json:"payment"`
}
