package entity

import (
	"encoding/json"
	"time"

	"github.com/chekhub/chek-api/internal/domain/enum"
)

// Receipt represents an immutable record of a sale: purchased items, the
// payment tendered and the totals computed at creation time. Total and Rest
// are stored once and never recomputed on read.
type Receipt struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	UserID        uint             `gorm:"not null;index" json:"user_id"`
	CreatedAt     time.Time        `json:"created_at"`
	Total         float64          `gorm:"not null" json:"total"`
	PaymentType   enum.PaymentType `gorm:"size:50;not null" json:"-"`
	PaymentAmount float64          `gorm:"not null" json:"-"`
	Rest          float64          `json:"rest"`

	// Relationships
	User  User          `gorm:"foreignKey:UserID" json:"-"`
	Items []ReceiptItem `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE" json:"-"`
}

// Payment is the payment section of a receipt as exposed over the API.
type Payment struct {
	Type   enum.PaymentType `json:"type"`
	Amount float64          `json:"amount"`
}

// receiptJSON is a helper struct that reproduces the public API shape:
// line items under "products" and the payment fields nested under "payment".
type receiptJSON struct {
	ID        uint          `json:"id"`
	UserID    uint          `json:"user_id"`
	Products  []ReceiptItem `json:"products"`
	Payment   Payment       `json:"payment"`
	Total     float64       `json:"total"`
	Rest      float64       `json:"rest"`
	CreatedAt time.Time     `json:"created_at"`
}

// MarshalJSON converts a Receipt to its API representation
func (r Receipt) MarshalJSON() ([]byte, error) {
	products := r.Items
	if products == nil {
		products = []ReceiptItem{}
	}
	return json.Marshal(receiptJSON{
		ID:       r.ID,
		UserID:   r.UserID,
		Products: products,
		Payment: Payment{
			Type:   r.PaymentType,
			Amount: r.PaymentAmount,
		},
		Total:     r.Total,
		Rest:      r.Rest,
		CreatedAt: r.CreatedAt,
	})
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// ReceiptItem represents a single line item on a receipt. Items are owned by
// their receipt and are created atomically with it.
type ReceiptItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ReceiptID uint    `gorm:"not null;index" json:"-"`
	Name      string  `gorm:"size:255;not null" json:"name"`
	Price     float64 `gorm:"not null" json:"price"`
	Quantity  float64 `gorm:"not null" json:"quantity"`
	Total     float64 `gorm:"not null" json:"total"`
}

// TableName returns the table name for the ReceiptItem model
func (ReceiptItem) TableName() string {
	return "receipt_items"
}
