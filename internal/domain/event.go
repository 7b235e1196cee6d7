package domain

import (
	"context"
	"time"
)

// Venue represents a physical location where events take place.
// swagger:model Venue
type Venue struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Event represents a multi-session event held at a venue.
// Invariant: StartDate is never after EndDate.
// swagger:model Event
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	VenueID   string    `json:"venue_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(name, venueID string, startDate, endDate, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:      name,
		VenueID:   venueID,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Session represents a time-boxed sub-unit of an event with its own seat
// capacity and sellable product catalog.
// swagger:model Session
type Session struct {
	ID              string    `json:"id"`
	EventID         string    `json:"event_id"`
	Name            string    `json:"name"`
	Date            time.Time `json:"date"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	BalanceCapacity int       `json:"balance_capacity"`
	Detail          string    `json:"detail"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SessionProduct maps a (product, product type) pair as sellable in a session.
type SessionProduct struct {
	SessionID     string `json:"session_id"`
	ProductID     string `json:"product_id"`
	ProductTypeID string `json:"product_type_id"`
}

// EventRepository defines the interface for venue and event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, error)
	Count(ctx context.Context) (int, error)
	GetVenueByID(ctx context.Context, id string) (*Venue, error)
}

// SessionRepository defines the interface for session storage.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Session, error)
	ListProductMappings(ctx context.Context, sessionID string) ([]*SessionProduct, error)
}

// SessionAvailability is a session together with its derived seat availability.
type SessionAvailability struct {
	Session        *Session              `json:"session"`
	AvailableSpots int                   `json:"available_spots"`
	Full           bool                  `json:"full"`
	Catalog        []*SessionCatalogItem `json:"catalog"`
}

// SessionCatalogItem groups the product types of one product sellable in a session.
type SessionCatalogItem struct {
	Product *Product       `json:"product"`
	Types   []*ProductType `json:"types"`
}

// EventDetails bundles an event with its venue and per-session availability.
type EventDetails struct {
	Event    *Event                 `json:"event"`
	Venue    *Venue                 `json:"venue"`
	Sessions []*SessionAvailability `json:"sessions"`
}

// CatalogService exposes read-only event, session, and product lookups,
// including remaining seats per session.
type CatalogService interface {
	GetEventDetails(ctx context.Context, eventID string) (*EventDetails, error)
	ListEvents(ctx context.Context, params PaginationParams) ([]*Event, int, error)
}

// CapacityService derives seat availability for a session from its capacity
// and the entry order lines already booked against it. Read-only.
type CapacityService interface {
	AvailableSpots(ctx context.Context, sessionID string) (int, error)
	IsFull(ctx context.Context, sessionID string) (bool, error)
}
