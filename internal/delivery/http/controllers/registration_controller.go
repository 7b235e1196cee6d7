package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "eventadmissions/internal/delivery/http/helpers"
	"eventadmissions/internal/delivery/http/middleware"
	"eventadmissions/internal/domain"
)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// HeadcountsRequest is the party composition of a registration request.
type HeadcountsRequest struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
	Elders   int `json:"elders"`
}

func (hc HeadcountsRequest) toDomain() domain.Headcounts {
	return domain.Headcounts{
		Adults:   hc.Adults,
		Children: hc.Children,
		Infants:  hc.Infants,
		Elders:   hc.Elders,
	}
}

func (hc HeadcountsRequest) validate() []string {
	var errs []string
	if hc.Adults < 0 || hc.Children < 0 || hc.Infants < 0 || hc.Elders < 0 {
		errs = append(errs, "headcounts must not be negative")
	}
	return errs
}

// SessionSelectionRequest is the product picks for one session.
type SessionSelectionRequest struct {
	SessionID    string                    `json:"session_id"`
	OptOutOfFood bool                      `json:"opt_out_of_food"`
	Products     []ProductSelectionRequest `json:"products"`
}

// ProductSelectionRequest is one (product, product type, quantity) pick.
type ProductSelectionRequest struct {
	ProductID     string `json:"product_id"`
	ProductTypeID string `json:"product_type_id"`
	Quantity      int    `json:"quantity"`
}

func validateSelections(selections []SessionSelectionRequest) []string {
	var errs []string
	if len(selections) == 0 {
		errs = append(errs, "at least one session selection is required")
	}
	for _, sel := range selections {
		if strings.TrimSpace(sel.SessionID) == "" {
			errs = append(errs, "session_id is required in each selection")
			break
		}
	}
	for _, sel := range selections {
		for _, p := range sel.Products {
			if strings.TrimSpace(p.ProductID) == "" || strings.TrimSpace(p.ProductTypeID) == "" {
				errs = append(errs, "product_id and product_type_id are required in each product selection")
				return errs
			}
			if p.Quantity < 0 {
				errs = append(errs, "quantity must not be negative")
				return errs
			}
		}
	}
	return errs
}

func toDomainSelections(selections []SessionSelectionRequest) []domain.SessionSelection {
	out := make([]domain.SessionSelection, 0, len(selections))
	for _, sel := range selections {
		ds := domain.SessionSelection{
			SessionID:    sel.SessionID,
			OptOutOfFood: sel.OptOutOfFood,
			Products:     make([]domain.ProductSelection, 0, len(sel.Products)),
		}
		for _, p := range sel.Products {
			ds.Products = append(ds.Products, domain.ProductSelection{
				ProductID:     p.ProductID,
				ProductTypeID: p.ProductTypeID,
				Quantity:      p.Quantity,
			})
		}
		out = append(out, ds)
	}
	return out
}

// GuestRegistrationRequest is the request body for POST /events/{eventID}/registrations/guest
type GuestRegistrationRequest struct {
	Name            string                    `json:"name"`
	Email           string                    `json:"email"`
	Phone           string                    `json:"phone"`
	SponsorMemberID string                    `json:"sponsor_member_id"`
	Headcounts      HeadcountsRequest         `json:"headcounts"`
	Selections      []SessionSelectionRequest `json:"selections"`
}

// Validate implements helpers.Validator.
func (g GuestRegistrationRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(g.Name) == "" {
		errs = append(errs, "name is required")
	}
	email := strings.TrimSpace(g.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if strings.TrimSpace(g.SponsorMemberID) == "" {
		errs = append(errs, "sponsor_member_id is required")
	}
	errs = append(errs, g.Headcounts.validate()...)
	errs = append(errs, validateSelections(g.Selections)...)
	return errs
}

// MemberRegistrationRequest is the request body for POST /events/{eventID}/registrations/member
type MemberRegistrationRequest struct {
	Headcounts HeadcountsRequest         `json:"headcounts"`
	Selections []SessionSelectionRequest `json:"selections"`
}

// Validate implements helpers.Validator.
func (m MemberRegistrationRequest) Validate() []string {
	var errs []string
	errs = append(errs, m.Headcounts.validate()...)
	errs = append(errs, validateSelections(m.Selections)...)
	return errs
}

// CostResponse presents a cost breakdown with amounts rounded to two places.
type CostResponse struct {
	EntrySubtotal   string `json:"entry_subtotal"`
	EntryCost       string `json:"entry_cost"`
	FoodCost        string `json:"food_cost"`
	TotalCost       string `json:"total_cost"`
	DiscountApplied bool   `json:"discount_applied"`
	DiscountAmount  string `json:"discount_amount"`
}

// RegistrationResponseData is the data object for a successful registration.
type RegistrationResponseData struct {
	OrderID       string       `json:"order_id"`
	TransactionID string       `json:"transaction_id"`
	Status        string       `json:"status"`
	Cost          CostResponse `json:"cost"`
}

func newRegistrationResponse(res *domain.RegistrationResult) RegistrationResponseData {
	return RegistrationResponseData{
		OrderID:       res.Order.ID,
		TransactionID: res.TransactionID,
		Status:        string(res.Order.Status),
		Cost: CostResponse{
			EntrySubtotal:   res.Cost.EntrySubtotal.StringFixed(2),
			EntryCost:       res.Cost.EntryCost.StringFixed(2),
			FoodCost:        res.Cost.FoodCost.StringFixed(2),
			TotalCost:       res.Cost.TotalCost.StringFixed(2),
			DiscountApplied: res.Cost.DiscountApplied,
			DiscountAmount:  res.Cost.DiscountAmount().StringFixed(2),
		},
	}
}

// RegisterGuest godoc
// @Summary Register a sponsored guest for an event
// @Description Validates the selection, prices it, reserves seats, and returns the confirmed order. The sponsoring member must exist.
// @Tags registrations
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.GuestRegistrationRequest true "Guest details and session selections"
// @Success 201 {object} helpers.APIResponse "data contains order_id, transaction_id, status, and cost"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, invalid_selection, empty_selection, or dine_in_mismatch"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: capacity_exceeded"
// @Router /events/{eventID}/registrations/guest [post]
func (c *RegistrationController) RegisterGuest(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID")
		return
	}
	var req GuestRegistrationRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	guest := domain.GuestInfo{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.TrimSpace(strings.ToLower(req.Email)),
		Phone:           strings.TrimSpace(req.Phone),
		SponsorMemberID: strings.TrimSpace(req.SponsorMemberID),
		Headcounts:      req.Headcounts.toDomain(),
	}
	res, err := c.Service.RegisterGuest(r.Context(), eventID, guest, toDomainSelections(req.Selections))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, newRegistrationResponse(res))
}

// RegisterMember godoc
// @Summary Register the authenticated member for an event
// @Description Validates the selection, prices it with the member entry waiver, reserves seats, and returns the confirmed order.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.MemberRegistrationRequest true "Headcounts and session selections"
// @Success 201 {object} helpers.APIResponse "data contains order_id, transaction_id, status, and cost"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, invalid_selection, empty_selection, or dine_in_mismatch"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: capacity_exceeded"
// @Router /events/{eventID}/registrations/member [post]
func (c *RegistrationController) RegisterMember(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid eventID")
		return
	}
	memberID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "authentication required")
		return
	}
	var req MemberRegistrationRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	res, err := c.Service.RegisterMember(r.Context(), eventID, memberID, req.Headcounts.toDomain(), toDomainSelections(req.Selections))
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, newRegistrationResponse(res))
}
