package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"eventadmissions/internal/domain"
)

func newCatalogFixture() (*mockEventRepository, *mockSessionRepository, *mockProductRepository, *mockOrderRepository, domain.CatalogService) {
	eventRepo := &mockEventRepository{
		events: []*domain.Event{{ID: "ev-1", Name: "Annual Gathering", VenueID: "v-1"}},
		venues: map[string]*domain.Venue{"v-1": {ID: "v-1", Name: "Main Hall"}},
	}
	sessionRepo := &mockSessionRepository{
		sessions: map[string]*domain.Session{
			"s1": {ID: "s1", EventID: "ev-1", Name: "Day One", BalanceCapacity: 10},
		},
		mappings: map[string][]*domain.SessionProduct{
			"s1": {
				{SessionID: "s1", ProductID: "p-entry", ProductTypeID: "pt-entry-adult"},
				{SessionID: "s1", ProductID: "p-entry", ProductTypeID: "pt-entry-child"},
				{SessionID: "s1", ProductID: "p-meal", ProductTypeID: "pt-meal-adult"},
			},
		},
	}
	productRepo := &mockProductRepository{
		products: map[string]*domain.Product{
			"p-entry": {ID: "p-entry", Kind: domain.ProductKindEntry, Status: domain.StatusActive},
			"p-meal":  {ID: "p-meal", Kind: domain.ProductKindFood, Status: domain.StatusActive},
		},
		types: map[string]*domain.ProductType{
			"pt-entry-adult": {ID: "pt-entry-adult", ProductID: "p-entry", Size: domain.SizeAdult, Price: decimal.NewFromInt(25), Status: domain.StatusActive},
			"pt-entry-child": {ID: "pt-entry-child", ProductID: "p-entry", Size: domain.SizeChildren, Price: decimal.NewFromInt(15), Status: domain.StatusActive},
			"pt-meal-adult":  {ID: "pt-meal-adult", ProductID: "p-meal", Size: domain.SizeAdult, Price: decimal.NewFromInt(10), Status: domain.StatusActive},
		},
	}
	orderRepo := &mockOrderRepository{bookedEntries: map[string]int{"s1": 4}}
	capacity := NewCapacityService(sessionRepo, orderRepo)
	svc := NewCatalogService(eventRepo, sessionRepo, productRepo, capacity)
	return eventRepo, sessionRepo, productRepo, orderRepo, svc
}

func TestCatalogService_GetEventDetails(t *testing.T) {
	_, _, _, _, svc := newCatalogFixture()

	details, err := svc.GetEventDetails(context.Background(), "ev-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if details.Event.Name != "Annual Gathering" {
		t.Fatalf("Event.Name = %s", details.Event.Name)
	}
	if details.Venue == nil || details.Venue.Name != "Main Hall" {
		t.Fatalf("venue not resolved: %+v", details.Venue)
	}
	if len(details.Sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(details.Sessions))
	}

	sess := details.Sessions[0]
	if sess.AvailableSpots != 6 {
		t.Fatalf("AvailableSpots = %d, want 6", sess.AvailableSpots)
	}
	if sess.Full {
		t.Fatal("Full = true, want false")
	}
	if len(sess.Catalog) != 2 {
		t.Fatalf("got %d catalog items, want 2", len(sess.Catalog))
	}
	if sess.Catalog[0].Product.ID != "p-entry" || len(sess.Catalog[0].Types) != 2 {
		t.Fatalf("entry types not grouped: %+v", sess.Catalog[0])
	}
	if sess.Catalog[1].Product.ID != "p-meal" || len(sess.Catalog[1].Types) != 1 {
		t.Fatalf("meal types not grouped: %+v", sess.Catalog[1])
	}
}

func TestCatalogService_GetEventDetails_skipsInactive(t *testing.T) {
	_, _, productRepo, _, svc := newCatalogFixture()
	productRepo.products["p-meal"].Status = domain.StatusInactive
	productRepo.types["pt-entry-child"].Status = domain.StatusInactive

	details, err := svc.GetEventDetails(context.Background(), "ev-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	catalog := details.Sessions[0].Catalog
	if len(catalog) != 1 {
		t.Fatalf("got %d catalog items, want 1", len(catalog))
	}
	if len(catalog[0].Types) != 1 || catalog[0].Types[0].ID != "pt-entry-adult" {
		t.Fatalf("inactive type not skipped: %+v", catalog[0].Types)
	}
}

func TestCatalogService_GetEventDetails_fullSession(t *testing.T) {
	_, _, _, orderRepo, svc := newCatalogFixture()
	orderRepo.bookedEntries["s1"] = 10

	details, err := svc.GetEventDetails(context.Background(), "ev-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !details.Sessions[0].Full {
		t.Fatal("Full = false, want true")
	}
	if details.Sessions[0].AvailableSpots != 0 {
		t.Fatalf("AvailableSpots = %d, want 0", details.Sessions[0].AvailableSpots)
	}
}

func TestCatalogService_GetEventDetails_notFound(t *testing.T) {
	_, _, _, _, svc := newCatalogFixture()

	_, err := svc.GetEventDetails(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogService_ListEvents(t *testing.T) {
	_, _, _, _, svc := newCatalogFixture()

	events, total, err := svc.ListEvents(context.Background(), domain.PaginationParams{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(events) != 1 {
		t.Fatalf("got %d events, total %d", len(events), total)
	}
}
