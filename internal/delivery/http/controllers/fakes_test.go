package controllers

import (
	"context"
	"io"
	"log/slog"

	"eventadmissions/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeCatalogService implements domain.CatalogService for handler tests.
type fakeCatalogService struct {
	detailsResult *domain.EventDetails
	detailsErr    error
	listResult    []*domain.Event
	listTotal     int
	listErr       error
	lastEventID   string
}

func (f *fakeCatalogService) GetEventDetails(ctx context.Context, eventID string) (*domain.EventDetails, error) {
	f.lastEventID = eventID
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	return f.detailsResult, nil
}

func (f *fakeCatalogService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.listResult, f.listTotal, nil
}

// fakeRegistrationService implements domain.RegistrationService for handler tests.
type fakeRegistrationService struct {
	registerResult      *domain.RegistrationResult
	registerErr         error
	adjustResult        *domain.Order
	adjustErr           error
	getOrderResult      *domain.Order
	getOrderErr         error
	lastEventID         string
	lastGuest           domain.GuestInfo
	lastMemberID        string
	lastHeadcounts      domain.Headcounts
	lastSelections      []domain.SessionSelection
	lastAdjustOrderID   string
	lastAdjustLines     []domain.LineAdjustment
	lastAdjustStatus    *domain.OrderStatus
	lastGetOrderOrderID string
}

func (f *fakeRegistrationService) RegisterGuest(ctx context.Context, eventID string, guest domain.GuestInfo, selections []domain.SessionSelection) (*domain.RegistrationResult, error) {
	f.lastEventID = eventID
	f.lastGuest = guest
	f.lastSelections = selections
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerResult, nil
}

func (f *fakeRegistrationService) RegisterMember(ctx context.Context, eventID, memberID string, headcounts domain.Headcounts, selections []domain.SessionSelection) (*domain.RegistrationResult, error) {
	f.lastEventID = eventID
	f.lastMemberID = memberID
	f.lastHeadcounts = headcounts
	f.lastSelections = selections
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerResult, nil
}

func (f *fakeRegistrationService) AdjustOrder(ctx context.Context, orderID string, lines []domain.LineAdjustment, status *domain.OrderStatus) (*domain.Order, error) {
	f.lastAdjustOrderID = orderID
	f.lastAdjustLines = lines
	f.lastAdjustStatus = status
	if f.adjustErr != nil {
		return nil, f.adjustErr
	}
	return f.adjustResult, nil
}

func (f *fakeRegistrationService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	f.lastGetOrderOrderID = orderID
	if f.getOrderErr != nil {
		return nil, f.getOrderErr
	}
	return f.getOrderResult, nil
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	signUpResult *domain.User
	signUpErr    error
	loginToken   string
	loginErr     error
	lastEmail    string
	lastRole     string
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password, name, role string) (*domain.User, error) {
	f.lastEmail = email
	f.lastRole = role
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return f.signUpResult, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	f.lastEmail = email
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}
