package service

import (
	"context"
	"sort"
	"sync"

	"github.com/chekhub/chek-api/internal/domain/entity"
	"github.com/chekhub/chek-api/internal/domain/repository"
	"github.com/chekhub/chek-api/pkg/pagination"
)

// memUserRepo is an in-memory repository.UserRepository for tests.
type memUserRepo struct {
	mu    sync.Mutex
	seq   uint
	users []entity.User
}

func (m *memUserRepo) Create(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	user.ID = m.seq
	m.users = append(m.users, *user)
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id uint) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Username == username {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// memReceiptRepo is an in-memory repository.ReceiptRepository for tests. Its
// List applies the same predicates, ordering and pagination contract as the
// SQL-backed implementation.
type memReceiptRepo struct {
	mu       sync.Mutex
	seq      uint
	itemSeq  uint
	receipts []entity.Receipt

	createErr error
}

func (m *memReceiptRepo) Create(_ context.Context, receipt *entity.Receipt) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	receipt.ID = m.seq
	for i := range receipt.Items {
		m.itemSeq++
		receipt.Items[i].ID = m.itemSeq
		receipt.Items[i].ReceiptID = receipt.ID
	}
	m.receipts = append(m.receipts, cloneReceipt(receipt))
	return nil
}

func (m *memReceiptRepo) GetByID(_ context.Context, id uint) (*entity.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.receipts {
		if m.receipts[i].ID == id {
			r := cloneReceipt(&m.receipts[i])
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memReceiptRepo) List(_ context.Context, userID uint, params *repository.ReceiptFilterParams) ([]entity.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]entity.Receipt, 0)
	for i := range m.receipts {
		r := &m.receipts[i]
		if r.UserID != userID {
			continue
		}
		if params.StartDate != nil && r.CreatedAt.Before(*params.StartDate) {
			continue
		}
		if params.EndDate != nil && r.CreatedAt.After(*params.EndDate) {
			continue
		}
		if params.MinTotal != nil && r.Total < *params.MinTotal {
			continue
		}
		if params.MaxTotal != nil && r.Total > *params.MaxTotal {
			continue
		}
		if params.PaymentType != nil && r.PaymentType != *params.PaymentType {
			continue
		}
		matched = append(matched, cloneReceipt(r))
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	list := params.List
	if list == nil {
		list = pagination.DefaultListParams()
	}
	list.Validate()
	if list.Skip >= len(matched) {
		return []entity.Receipt{}, nil
	}
	matched = matched[list.Skip:]
	if list.Limit < len(matched) {
		matched = matched[:list.Limit]
	}
	return matched, nil
}

func cloneReceipt(r *entity.Receipt) entity.Receipt {
	out := *r
	out.Items = make([]entity.ReceiptItem, len(r.Items))
	copy(out.Items, r.Items)
	return out
}
