package repository

import (
	"context"
	"time"

	"github.com/chekhub/chek-api/internal/domain/entity"
	"github.com/chekhub/chek-api/internal/domain/enum"
	"github.com/chekhub/chek-api/pkg/pagination"
)

// ReceiptRepository defines the interface for receipt data operations
type ReceiptRepository interface {
	// Create persists the receipt header and all of its items in a single
	// transaction. Either everything is committed or nothing is visible.
	Create(ctx context.Context, receipt *entity.Receipt) error
	// GetByID returns the receipt with its items, or nil if it does not exist.
	GetByID(ctx context.Context, id uint) (*entity.Receipt, error)
	// List returns the receipts owned by userID that match every active
	// predicate in params, ordered by created_at DESC, id DESC.
	List(ctx context.Context, userID uint, params *ReceiptFilterParams) ([]entity.Receipt, error)
}

// ReceiptFilterParams contains filtering parameters for receipt queries.
// Nil predicates impose no constraint; present ones are AND-combined with the
// implicit owner filter.
type ReceiptFilterParams struct {
	List        *pagination.ListParams
	StartDate   *time.Time
	EndDate     *time.Time
	MinTotal    *float64
	MaxTotal    *float64
	PaymentType *enum.PaymentType
}
