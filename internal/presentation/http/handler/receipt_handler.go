package handler

import (
	"strconv"
	"time"

	"github.com/chekhub/chek-api/internal/application/service"
	"github.com/chekhub/chek-api/internal/domain/enum"
	"github.com/chekhub/chek-api/internal/domain/repository"
	"github.com/chekhub/chek-api/internal/presentation/http/dto/request"
	"github.com/chekhub/chek-api/internal/presentation/http/dto/response"
	"github.com/chekhub/chek-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Create handles creating a receipt
func (h *ReceiptHandler) Create(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	products := make([]service.ProductInput, len(req.Products))
	for i, p := range req.Products {
		products[i] = service.ProductInput{
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
		}
	}

	receipt, err := h.receiptService.Create(c.Request.Context(), &service.CreateReceiptInput{
		UserID:   userID,
		Products: products,
		Payment: service.PaymentInput{
			Type:   enum.PaymentType(req.Payment.Type),
			Amount: req.Payment.Amount,
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", receipt)
}

// List handles listing and filtering the caller's receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(pagination.DefaultLimit)))

	params := &repository.ReceiptFilterParams{
		List: &pagination.ListParams{
			Skip:  skip,
			Limit: limit,
		},
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := parseDate(startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := parseDate(endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}
	if minTotalStr := c.Query("min_total"); minTotalStr != "" {
		if minTotal, err := strconv.ParseFloat(minTotalStr, 64); err == nil {
			params.MinTotal = &minTotal
		}
	}
	if maxTotalStr := c.Query("max_total"); maxTotalStr != "" {
		if maxTotal, err := strconv.ParseFloat(maxTotalStr, 64); err == nil {
			params.MaxTotal = &maxTotal
		}
	}
	if paymentTypeStr := c.Query("payment_type"); paymentTypeStr != "" {
		paymentType := enum.PaymentType(paymentTypeStr)
		params.PaymentType = &paymentType
	}

	receipts, err := h.receiptService.List(c.Request.Context(), userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipts retrieved successfully", receipts)
}

// Get handles getting a single own receipt
func (h *ReceiptHandler) Get(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.GetOwn(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// PublicText handles the public plain-text view of a receipt. No
// authentication: anyone holding the id can fetch the printable rendition.
func (h *ReceiptHandler) PublicText(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	// 0 means "use the configured default width"
	charPerLine, _ := strconv.Atoi(c.DefaultQuery("charPerLine", "0"))

	text, err := h.receiptService.PublicText(c.Request.Context(), id, charPerLine)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.String(200, "%s", text)
}

// Print handles sending one of the caller's receipts to the printer
func (h *ReceiptHandler) Print(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	text, err := h.receiptService.Print(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{"text": text})
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	return uint(id), err
}

// parseDate accepts RFC 3339 timestamps as well as bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
