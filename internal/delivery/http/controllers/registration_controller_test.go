package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventadmissions/internal/delivery/http/helpers"
	"eventadmissions/internal/delivery/http/middleware"
	"eventadmissions/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEventID = "2d9e6f1a-5b3c-4d7e-8f90-1a2b3c4d5e6f"

func registrationResult() *domain.RegistrationResult {
	return &domain.RegistrationResult{
		Order: &domain.Order{
			ID:            "order-1",
			TransactionID: "TXN-1-abcd1234",
			Status:        domain.OrderStatusConfirmed,
		},
		TransactionID: "TXN-1-abcd1234",
		Cost: domain.CostBreakdown{
			EntrySubtotal:   decimal.NewFromInt(100),
			EntryCost:       decimal.NewFromInt(70),
			FoodCost:        decimal.NewFromInt(40),
			TotalCost:       decimal.NewFromInt(110),
			DiscountApplied: true,
			DiscountFactor:  decimal.NewFromFloat(0.7),
		},
	}
}

func guestRequestBody() map[string]any {
	return map[string]any{
		"name":              "Guest One",
		"email":             "guest@example.com",
		"sponsor_member_id": "m-1",
		"headcounts":        map[string]int{"adults": 2},
		"selections": []map[string]any{
			{
				"session_id": "s1",
				"products": []map[string]any{
					{"product_id": "p-entry", "product_type_id": "pt-entry-adult", "quantity": 2},
				},
			},
		},
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, pathKey, pathValue string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if pathKey != "" {
		req.SetPathValue(pathKey, pathValue)
	}
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestRegistrationController_RegisterGuest(t *testing.T) {
	svc := &fakeRegistrationService{registerResult: registrationResult()}
	c := NewRegistrationController(testLogger, svc)

	rr := postJSON(t, c.RegisterGuest, "/events/"+testEventID+"/registrations/guest", "eventID", testEventID, guestRequestBody())

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, testEventID, svc.lastEventID)
	assert.Equal(t, "Guest One", svc.lastGuest.Name)
	assert.Equal(t, 2, svc.lastGuest.Headcounts.Adults)
	require.Len(t, svc.lastSelections, 1)

	var envelope struct {
		Data  RegistrationResponseData `json:"data"`
		Error *helpers.APIError        `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.Nil(t, envelope.Error)
	assert.Equal(t, "order-1", envelope.Data.OrderID)
	assert.Equal(t, "TXN-1-abcd1234", envelope.Data.TransactionID)
	assert.Equal(t, "CONFIRMED", envelope.Data.Status)
	assert.Equal(t, "110.00", envelope.Data.Cost.TotalCost)
	assert.Equal(t, "30.00", envelope.Data.Cost.DiscountAmount)
	assert.True(t, envelope.Data.Cost.DiscountApplied)
}

func TestRegistrationController_RegisterGuest_validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(body map[string]any)
	}{
		{"missing name", func(b map[string]any) { b["name"] = "" }},
		{"bad email", func(b map[string]any) { b["email"] = "not-an-email" }},
		{"missing sponsor", func(b map[string]any) { b["sponsor_member_id"] = "" }},
		{"negative headcount", func(b map[string]any) { b["headcounts"] = map[string]int{"adults": -1} }},
		{"no selections", func(b map[string]any) { b["selections"] = []map[string]any{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRegistrationService{registerResult: registrationResult()}
			c := NewRegistrationController(testLogger, svc)

			body := guestRequestBody()
			tt.mutate(body)
			rr := postJSON(t, c.RegisterGuest, "/events/"+testEventID+"/registrations/guest", "eventID", testEventID, body)

			require.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			assert.Empty(t, svc.lastEventID, "service should not be called")
		})
	}
}

func TestRegistrationController_RegisterGuest_invalidEventID(t *testing.T) {
	c := NewRegistrationController(testLogger, &fakeRegistrationService{})

	rr := postJSON(t, c.RegisterGuest, "/events/not-a-uuid/registrations/guest", "eventID", "not-a-uuid", guestRequestBody())

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegistrationController_RegisterGuest_serviceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"capacity exceeded", &domain.CapacityExceededError{SessionID: "s1", Available: 1, Requested: 2}, http.StatusConflict, helpers.ErrCodeCapacityExceeded},
		{"dine-in mismatch", &domain.DineInMismatchError{SessionID: "s1", Category: domain.SizeAdult, Required: 2, Selected: 1}, http.StatusBadRequest, helpers.ErrCodeDineInMismatch},
		{"empty selection", domain.ErrEmptySelection, http.StatusBadRequest, helpers.ErrCodeEmptySelection},
		{"invalid selection", domain.ErrInvalidSelection, http.StatusBadRequest, helpers.ErrCodeInvalidSelection},
		{"event not found", domain.ErrNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRegistrationService{registerErr: tt.err}
			c := NewRegistrationController(testLogger, svc)

			rr := postJSON(t, c.RegisterGuest, "/events/"+testEventID+"/registrations/guest", "eventID", testEventID, guestRequestBody())

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestRegistrationController_RegisterMember(t *testing.T) {
	svc := &fakeRegistrationService{registerResult: registrationResult()}
	c := NewRegistrationController(testLogger, svc)

	body := map[string]any{
		"headcounts": map[string]int{"adults": 1, "children": 2},
		"selections": []map[string]any{
			{
				"session_id": "s1",
				"products": []map[string]any{
					{"product_id": "p-entry", "product_type_id": "pt-entry-adult", "quantity": 1},
				},
			},
		},
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/events/"+testEventID+"/registrations/member", strings.NewReader(string(raw)))
	req.SetPathValue("eventID", testEventID)
	req = req.WithContext(middleware.SetUserID(req.Context(), "m-7"))
	rr := httptest.NewRecorder()

	c.RegisterMember(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "m-7", svc.lastMemberID)
	assert.Equal(t, domain.Headcounts{Adults: 1, Children: 2}, svc.lastHeadcounts)
}

func TestRegistrationController_RegisterMember_noAuthContext(t *testing.T) {
	c := NewRegistrationController(testLogger, &fakeRegistrationService{})

	req := httptest.NewRequest(http.MethodPost, "/events/"+testEventID+"/registrations/member", strings.NewReader("{}"))
	req.SetPathValue("eventID", testEventID)
	rr := httptest.NewRecorder()

	c.RegisterMember(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}
