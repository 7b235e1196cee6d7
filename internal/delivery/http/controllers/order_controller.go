package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "eventadmissions/internal/delivery/http/helpers"
	"eventadmissions/internal/domain"
)

type OrderController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewOrderController(logger *slog.Logger, svc domain.RegistrationService) *OrderController {
	return &OrderController{
		Logger:  logger,
		Service: svc,
	}
}

// GetOrderSuccessResponse is the success response envelope for GET /orders/{orderID} (200).
type GetOrderSuccessResponse struct {
	Data  *domain.Order `json:"data"`
	Error *h.APIError   `json:"error"`
}

// GetOrder godoc
// @Summary Get an order
// @Description Returns the order with its registrant and lines. Admin only.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param orderID path string true "Order ID (UUID)"
// @Success 200 {object} controllers.GetOrderSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /orders/{orderID} [get]
func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("orderID")
	if !uuidRegex.MatchString(orderID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid orderID")
		return
	}

	order, err := c.Service.GetOrder(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, order)
}

// LineAdjustmentRequest is one replacement line in an order edit.
// Quantity zero drops the line from the order.
type LineAdjustmentRequest struct {
	ProductID     string `json:"product_id"`
	ProductTypeID string `json:"product_type_id"`
	SessionID     string `json:"session_id"`
	Quantity      int    `json:"quantity"`
}

// AdjustOrderRequest is the request body for PUT /orders/{orderID}/lines
type AdjustOrderRequest struct {
	Lines  []LineAdjustmentRequest `json:"lines"`
	Status string                  `json:"status"` // optional: "CONFIRMED" or "CANCELLED"
}

// Validate implements helpers.Validator.
func (a AdjustOrderRequest) Validate() []string {
	var errs []string
	if len(a.Lines) == 0 {
		errs = append(errs, "at least one line is required")
	}
	for _, l := range a.Lines {
		if strings.TrimSpace(l.ProductID) == "" || strings.TrimSpace(l.ProductTypeID) == "" || strings.TrimSpace(l.SessionID) == "" {
			errs = append(errs, "product_id, product_type_id, and session_id are required in each line")
			break
		}
	}
	for _, l := range a.Lines {
		if l.Quantity < 0 {
			errs = append(errs, "quantity must not be negative")
			break
		}
	}
	if a.Status != "" &&
		a.Status != string(domain.OrderStatusConfirmed) &&
		a.Status != string(domain.OrderStatusCancelled) {
		errs = append(errs, "status must be \"CONFIRMED\" or \"CANCELLED\"")
	}
	return errs
}

// AdjustOrder godoc
// @Summary Replace an order's lines
// @Description Replaces the order's lines at current prices and recomputes the total. Lines with quantity zero are dropped. Admin only.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param orderID path string true "Order ID (UUID)"
// @Param body body controllers.AdjustOrderRequest true "Replacement lines and optional status"
// @Success 200 {object} controllers.GetOrderSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or invalid_selection"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /orders/{orderID}/lines [put]
func (c *OrderController) AdjustOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("orderID")
	if !uuidRegex.MatchString(orderID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid orderID")
		return
	}
	var req AdjustOrderRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	lines := make([]domain.LineAdjustment, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, domain.LineAdjustment{
			ProductID:     l.ProductID,
			ProductTypeID: l.ProductTypeID,
			SessionID:     l.SessionID,
			Quantity:      l.Quantity,
		})
	}
	var status *domain.OrderStatus
	if req.Status != "" {
		s := domain.OrderStatus(req.Status)
		status = &s
	}

	order, err := c.Service.AdjustOrder(r.Context(), orderID, lines, status)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, order)
}
