package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/chekhub/chek-api/internal/application/service"
	"github.com/chekhub/chek-api/internal/config"
	"github.com/chekhub/chek-api/internal/domain/entity"
	"github.com/chekhub/chek-api/internal/domain/repository"
	"github.com/chekhub/chek-api/internal/presentation/http/handler"
	"github.com/chekhub/chek-api/internal/presentation/http/routes"
	"github.com/chekhub/chek-api/pkg/pagination"
	"github.com/chekhub/chek-api/pkg/printer"
	"github.com/chekhub/chek-api/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- in-memory repositories backing the router under test ---

type stubUserRepo struct {
	mu    sync.Mutex
	seq   uint
	users []entity.User
}

func (s *stubUserRepo) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	user.ID = s.seq
	s.users = append(s.users, *user)
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id uint) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Username == username {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

type stubReceiptRepo struct {
	mu       sync.Mutex
	seq      uint
	receipts []entity.Receipt
}

func (s *stubReceiptRepo) Create(_ context.Context, receipt *entity.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	receipt.ID = s.seq
	for i := range receipt.Items {
		receipt.Items[i].ReceiptID = receipt.ID
	}
	stored := *receipt
	stored.Items = append([]entity.ReceiptItem(nil), receipt.Items...)
	s.receipts = append(s.receipts, stored)
	return nil
}

func (s *stubReceiptRepo) GetByID(_ context.Context, id uint) (*entity.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.receipts {
		if s.receipts[i].ID == id {
			r := s.receipts[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (s *stubReceiptRepo) List(_ context.Context, userID uint, params *repository.ReceiptFilterParams) ([]entity.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]entity.Receipt, 0)
	for _, r := range s.receipts {
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
		matched = append(matched, r)
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

// --- router wiring ---

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Name: "chek-api-test", Env: "test", Port: "0"},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
		Receipt: config.ReceiptConfig{
			OrgMarker:        "ФОП",
			FooterMessage:    "Дякуємо за покупку!",
			DefaultLineWidth: 40,
			PaymentLabels: map[string]string{
				"cash":     "Готівка",
				"cashless": "Безготівкова",
			},
			UnknownPaymentLabel: "НЕВІДОМИЙ ТИП ОПЛАТИ",
		},
	}
}

func newTestServer() *gin.Engine {
	cfg := testConfig()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, cfg.App.Name)

	userRepo := &stubUserRepo{}
	receiptRepo := &stubReceiptRepo{}

	authService := service.NewAuthService(userRepo, jwtManager)
	receiptService := service.NewReceiptService(receiptRepo, userRepo, printer.NewNullPrinter(), &cfg.Receipt)

	return routes.Setup(&routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Receipt: handler.NewReceiptHandler(receiptService),
	}, &routes.Deps{JWTManager: jwtManager, Cfg: cfg})
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func register(t *testing.T, router *gin.Engine, name, username string) string {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/register", "", gin.H{
		"name":     name,
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var data struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	require.Equal(t, "bearer", data.TokenType)
	return data.AccessToken
}

func createSampleReceipt(t *testing.T, router *gin.Engine, token string) uint {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/user/receipt", token, gin.H{
		"products": []gin.H{
			{"name": "Product1", "price": 100, "quantity": 2},
			{"name": "Product2", "price": 50, "quantity": 1},
		},
		"payment": gin.H{"type": "cash", "amount": 250},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var data struct {
		ID uint `json:"id"`
	}
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotZero(t, data.ID)
	return data.ID
}

// --- tests ---

func TestHealth(t *testing.T) {
	router := newTestServer()

	w := doJSON(router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestLoginAcceptsFormCredentials(t *testing.T) {
	router := newTestServer()
	register(t, router, "Alice", "alice")

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("password", "secret123")
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	require.Contains(t, string(env.Data), "access_token")
}

func TestLoginRejectsBadPassword(t *testing.T) {
	router := newTestServer()
	register(t, router, "Alice", "alice")

	w := doJSON(router, http.MethodPost, "/token", "", gin.H{
		"username": "alice",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.False(t, decodeEnvelope(t, w).Success)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	router := newTestServer()
	register(t, router, "Alice", "alice")

	w := doJSON(router, http.MethodPost, "/register", "", gin.H{
		"name":     "Another Alice",
		"username": "alice",
		"password": "secret123",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestServer()

	for _, path := range []string{"/user/receipts", "/user/receipts/1"} {
		w := doJSON(router, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, "GET %s", path)
	}

	w := doJSON(router, http.MethodPost, "/user/receipt", "garbage-token", gin.H{})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateReceipt(t *testing.T) {
	router := newTestServer()
	token := register(t, router, "Тарас Шевченко", "taras")

	w := doJSON(router, http.MethodPost, "/user/receipt", token, gin.H{
		"products": []gin.H{
			{"name": "Product1", "price": 100, "quantity": 2},
			{"name": "Product2", "price": 50, "quantity": 1},
		},
		"payment": gin.H{"type": "cash", "amount": 300},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var data struct {
		ID       uint    `json:"id"`
		Total    float64 `json:"total"`
		Rest     float64 `json:"rest"`
		Products []struct {
			Name  string  `json:"name"`
			Total float64 `json:"total"`
		} `json:"products"`
		Payment struct {
			Type   string  `json:"type"`
			Amount float64 `json:"amount"`
		} `json:"payment"`
	}
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, 250.0, data.Total)
	require.Equal(t, 50.0, data.Rest)
	require.Len(t, data.Products, 2)
	require.Equal(t, "Product1", data.Products[0].Name)
	require.Equal(t, 200.0, data.Products[0].Total)
	require.Equal(t, "cash", data.Payment.Type)
	require.Equal(t, 300.0, data.Payment.Amount)
}

func TestCreateReceiptRejectsMalformedBody(t *testing.T) {
	router := newTestServer()
	token := register(t, router, "Alice", "alice")

	req := httptest.NewRequest(http.MethodPost, "/user/receipt", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReceiptValueErrorsReturn422(t *testing.T) {
	router := newTestServer()
	token := register(t, router, "Alice", "alice")

	w := doJSON(router, http.MethodPost, "/user/receipt", token, gin.H{
		"products": []gin.H{
			{"name": "Tea", "price": 0, "quantity": 1},
		},
		"payment": gin.H{"type": "barter", "amount": -5},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	env := decodeEnvelope(t, w)
	require.False(t, env.Success)
	require.Contains(t, string(env.Errors), "products[0].price")
	require.Contains(t, string(env.Errors), "payment.type")
	require.Contains(t, string(env.Errors), "payment.amount")
}

func TestListReceiptsFilters(t *testing.T) {
	router := newTestServer()
	token := register(t, router, "Alice", "alice")
	otherToken := register(t, router, "Bob", "bob")

	createSampleReceipt(t, router, token) // total 250
	w := doJSON(router, http.MethodPost, "/user/receipt", token, gin.H{
		"products": []gin.H{{"name": "Tea", "price": 40, "quantity": 1}},
		"payment":  gin.H{"type": "cashless", "amount": 40},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	createSampleReceipt(t, router, otherToken)

	var receipts []struct {
		ID    uint    `json:"id"`
		Total float64 `json:"total"`
	}

	w = doJSON(router, http.MethodGet, "/user/receipts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &receipts))
	require.Len(t, receipts, 2)

	w = doJSON(router, http.MethodGet, "/user/receipts?min_total=100", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &receipts))
	require.Len(t, receipts, 1)
	require.Equal(t, 250.0, receipts[0].Total)

	w = doJSON(router, http.MethodGet, "/user/receipts?payment_type=cashless", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &receipts))
	require.Len(t, receipts, 1)
	require.Equal(t, 40.0, receipts[0].Total)

	w = doJSON(router, http.MethodGet, "/user/receipts?limit=1&skip=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, &receipts))
	require.Len(t, receipts, 1)
}

func TestGetReceiptScopedToOwner(t *testing.T) {
	router := newTestServer()
	aliceToken := register(t, router, "Alice", "alice")
	bobToken := register(t, router, "Bob", "bob")
	id := createSampleReceipt(t, router, aliceToken)

	path := fmt.Sprintf("/user/receipts/%d", id)
	w := doJSON(router, http.MethodGet, path, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, path, bobToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicReceiptText(t *testing.T) {
	router := newTestServer()
	token := register(t, router, "Тарас Шевченко", "taras")
	id := createSampleReceipt(t, router, token)

	path := fmt.Sprintf("/public/receipts/%d", id)
	w := doJSON(router, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	require.Contains(t, body, "ФОП Тарас Шевченко")
	require.Contains(t, body, "Product1")
	require.Contains(t, body, "Product2")
	require.Contains(t, body, "СУМА")
	require.Contains(t, body, "250.00")
	require.Contains(t, body, "Дякуємо за покупку!")

	w = doJSON(router, http.MethodGet, path+"?charPerLine=50", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, line := range strings.Split(w.Body.String(), "\n") {
		require.Equal(t, 50, len([]rune(line)), "line %q", line)
	}
}

func TestPublicReceiptNotFound(t *testing.T) {
	router := newTestServer()

	w := doJSON(router, http.MethodGet, "/public/receipts/424242", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, "/public/receipts/not-a-number", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPrintReceipt(t *testing.T) {
	router := newTestServer()
	token := register(t, router, "Alice", "alice")
	id := createSampleReceipt(t, router, token)

	w := doJSON(router, http.MethodPost, fmt.Sprintf("/user/receipts/%d/print", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	require.True(t, env.Success)
	require.Contains(t, string(env.Data), "Product1")
}
