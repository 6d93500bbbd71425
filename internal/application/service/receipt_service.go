package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chekhub/chek-api/internal/config"
	"github.com/chekhub/chek-api/internal/domain/entity"
	"github.com/chekhub/chek-api/internal/domain/enum"
	"github.com/chekhub/chek-api/internal/domain/repository"
	"github.com/chekhub/chek-api/pkg/apperror"
	"github.com/chekhub/chek-api/pkg/printer"
)

// ReceiptService handles receipt creation, listing and text rendering
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
	userRepo    repository.UserRepository
	printer     printer.Printer
	receiptCfg  *config.ReceiptConfig
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	userRepo repository.UserRepository,
	p printer.Printer,
	receiptCfg *config.ReceiptConfig,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		userRepo:    userRepo,
		printer:     p,
		receiptCfg:  receiptCfg,
	}
}

// ProductInput represents one purchased product in a create request
type ProductInput struct {
	Name     string
	Price    float64
	Quantity float64
}

// PaymentInput represents the payment section of a create request
type PaymentInput struct {
	Type   enum.PaymentType
	Amount float64
}

// CreateReceiptInput represents the create receipt input
type CreateReceiptInput struct {
	UserID   uint
	Products []ProductInput
	Payment  PaymentInput
}

// Create validates the product list and payment, computes total and rest, and
// persists the receipt header together with its items in one transaction.
// Payment amounts below the total are accepted: rest simply goes negative.
func (s *ReceiptService) Create(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	var total float64
	items := make([]entity.ReceiptItem, 0, len(input.Products))
	for _, p := range input.Products {
		lineTotal := p.Price * p.Quantity
		total += lineTotal
		items = append(items, entity.ReceiptItem{
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
			Total:    lineTotal,
		})
	}

	receipt := &entity.Receipt{
		UserID:        input.UserID,
		CreatedAt:     time.Now().UTC(),
		Total:         total,
		PaymentType:   input.Payment.Type,
		PaymentAmount: input.Payment.Amount,
		Rest:          input.Payment.Amount - total,
		Items:         items,
	}

	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, apperror.NewStorageError(err)
	}

	return receipt, nil
}

func validateCreateInput(input *CreateReceiptInput) error {
	var fieldErrors []apperror.FieldError

	if len(input.Products) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "products",
			Message: "at least one product is required",
		})
	}
	for i, p := range input.Products {
		if p.Price <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("products[%d].price", i),
				Message: "must be positive",
			})
		}
		if p.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("products[%d].quantity", i),
				Message: "must be positive",
			})
		}
	}
	if !input.Payment.Type.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "payment.type",
			Message: "must be cash or cashless",
		})
	}
	if input.Payment.Amount < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "payment.amount",
			Message: "must not be negative",
		})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// List returns the caller's receipts matching the given predicates. Receipts
// of other users are never returned through this path.
func (s *ReceiptService) List(ctx context.Context, userID uint, params *repository.ReceiptFilterParams) ([]entity.Receipt, error) {
	receipts, err := s.receiptRepo.List(ctx, userID, params)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	return receipts, nil
}

// GetOwn returns one of the caller's receipts with its items. A receipt owned
// by someone else is reported as not found, not as forbidden.
func (s *ReceiptService) GetOwn(ctx context.Context, userID, receiptID uint) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, apperror.NewStorageError(err)
	}
	if receipt == nil || receipt.UserID != userID {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// PublicText renders the receipt with the given id as a fixed-width text
// block. No authentication is involved: holding the id is enough.
func (s *ReceiptService) PublicText(ctx context.Context, receiptID uint, lineWidth int) (string, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return "", apperror.NewStorageError(err)
	}
	if receipt == nil {
		return "", apperror.NewNotFoundError("Receipt")
	}

	owner, err := s.userRepo.GetByID(ctx, receipt.UserID)
	if err != nil {
		return "", apperror.NewStorageError(err)
	}
	if owner == nil {
		return "", apperror.ErrInternalServer
	}

	if lineWidth <= 0 {
		lineWidth = s.receiptCfg.DefaultLineWidth
	}
	return FormatReceiptText(receipt, owner.Name, lineWidth, s.receiptCfg), nil
}

// Print renders one of the caller's receipts at the default width and sends it
// to the configured printer. The rendered text is returned so callers can show
// what went to paper.
func (s *ReceiptService) Print(ctx context.Context, userID, receiptID uint) (string, error) {
	receipt, err := s.GetOwn(ctx, userID, receiptID)
	if err != nil {
		return "", err
	}

	owner, err := s.userRepo.GetByID(ctx, receipt.UserID)
	if err != nil {
		return "", apperror.NewStorageError(err)
	}
	if owner == nil {
		return "", apperror.ErrInternalServer
	}

	text := FormatReceiptText(receipt, owner.Name, s.receiptCfg.DefaultLineWidth, s.receiptCfg)
	if err := s.printer.Print([]byte(text + "\n")); err != nil {
		return "", apperror.NewAppError(500, fmt.Sprintf("failed to print receipt: %v", err))
	}
	return text, nil
}
