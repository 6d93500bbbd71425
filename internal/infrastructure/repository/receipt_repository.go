package repository

import (
	"context"
	"errors"

	"github.com/chekhub/chek-api/internal/domain/entity"
	domainRepo "github.com/chekhub/chek-api/internal/domain/repository"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

// Create persists the receipt header together with all of its items. The
// writes run inside one transaction so a partially persisted receipt is never
// observable.
func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(receipt).Error
	})
}

func (r *receiptRepository) GetByID(ctx context.Context, id uint) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// List applies the implicit owner filter plus any active predicates, then
// skip/limit. Ordering is created_at DESC, id DESC so identical queries always
// return identical pages.
func (r *receiptRepository) List(ctx context.Context, userID uint, params *domainRepo.ReceiptFilterParams) ([]entity.Receipt, error) {
	var receipts []entity.Receipt

	query := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Where("user_id = ?", userID)

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}
	if params.MinTotal != nil {
		query = query.Where("total >= ?", *params.MinTotal)
	}
	if params.MaxTotal != nil {
		query = query.Where("total <= ?", *params.MaxTotal)
	}
	if params.PaymentType != nil {
		query = query.Where("payment_type = ?", *params.PaymentType)
	}

	params.List.Validate()
	err := query.
		Order("created_at DESC, id DESC").
		Offset(params.List.Skip).
		Limit(params.List.Limit).
		Preload("Items").
		Find(&receipts).Error

	return receipts, err
}
