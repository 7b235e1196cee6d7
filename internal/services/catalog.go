package services

import (
	"context"
	"errors"
	"fmt"

	"eventadmissions/internal/domain"
)

type catalogService struct {
	eventRepo   domain.EventRepository
	sessionRepo domain.SessionRepository
	productRepo domain.ProductRepository
	capacity    domain.CapacityService
}

// NewCatalogService creates a CatalogService with the given repositories and
// capacity accounting.
func NewCatalogService(
	eventRepo domain.EventRepository,
	sessionRepo domain.SessionRepository,
	productRepo domain.ProductRepository,
	capacity domain.CapacityService,
) domain.CatalogService {
	return &catalogService{
		eventRepo:   eventRepo,
		sessionRepo: sessionRepo,
		productRepo: productRepo,
		capacity:    capacity,
	}
}

// GetEventDetails returns the event, its venue, and every session with
// remaining seats and the products sellable in it.
func (s *catalogService) GetEventDetails(ctx context.Context, eventID string) (*domain.EventDetails, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	venue, err := s.eventRepo.GetVenueByID(ctx, event.VenueID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get venue: %w", err)
	}

	sessions, err := s.sessionRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	details := &domain.EventDetails{
		Event:    event,
		Venue:    venue,
		Sessions: make([]*domain.SessionAvailability, 0, len(sessions)),
	}
	for _, session := range sessions {
		spots, err := s.capacity.AvailableSpots(ctx, session.ID)
		if err != nil {
			return nil, fmt.Errorf("available spots for session %s: %w", session.ID, err)
		}
		catalog, err := s.sessionCatalog(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		details.Sessions = append(details.Sessions, &domain.SessionAvailability{
			Session:        session,
			AvailableSpots: spots,
			Full:           spots <= 0,
			Catalog:        catalog,
		})
	}
	return details, nil
}

// sessionCatalog groups a session's sellable product types under their parent
// products, skipping inactive entries.
func (s *catalogService) sessionCatalog(ctx context.Context, sessionID string) ([]*domain.SessionCatalogItem, error) {
	mappings, err := s.sessionRepo.ListProductMappings(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session products: %w", err)
	}

	itemsByProduct := make(map[string]*domain.SessionCatalogItem)
	var order []string
	for _, m := range mappings {
		item, ok := itemsByProduct[m.ProductID]
		if !ok {
			product, err := s.productRepo.GetByID(ctx, m.ProductID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					continue
				}
				return nil, fmt.Errorf("get product: %w", err)
			}
			if product.Status != domain.StatusActive {
				continue
			}
			item = &domain.SessionCatalogItem{Product: product}
			itemsByProduct[m.ProductID] = item
			order = append(order, m.ProductID)
		}
		ptype, err := s.productRepo.GetProductType(ctx, m.ProductTypeID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get product type: %w", err)
		}
		if ptype.Status != domain.StatusActive {
			continue
		}
		item.Types = append(item.Types, ptype)
	}

	items := make([]*domain.SessionCatalogItem, 0, len(order))
	for _, id := range order {
		items = append(items, itemsByProduct[id])
	}
	return items, nil
}

func (s *catalogService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	events, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	total, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}
