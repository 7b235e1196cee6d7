package services

import (
	"context"

	"github.com/shopspring/decimal"

	"eventadmissions/internal/domain"
)

// Map-backed repository mocks shared across the service tests.

type mockEventRepository struct {
	events []*domain.Event
	venues map[string]*domain.Venue
	err    error
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, ev := range m.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockEventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

func (m *mockEventRepository) Count(ctx context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.events), nil
}

func (m *mockEventRepository) GetVenueByID(ctx context.Context, id string) (*domain.Venue, error) {
	if v, ok := m.venues[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

type mockSessionRepository struct {
	sessions map[string]*domain.Session
	mappings map[string][]*domain.SessionProduct
	err      error
}

func (m *mockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return nil
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	sess, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

func (m *mockSessionRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Session
	for _, sess := range m.sessions {
		if sess.EventID == eventID {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (m *mockSessionRepository) ListProductMappings(ctx context.Context, sessionID string) ([]*domain.SessionProduct, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.mappings[sessionID], nil
}

type mockProductRepository struct {
	products map[string]*domain.Product
	types    map[string]*domain.ProductType
	err      error
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockProductRepository) GetProductType(ctx context.Context, id string) (*domain.ProductType, error) {
	if m.err != nil {
		return nil, m.err
	}
	pt, ok := m.types[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return pt, nil
}

func (m *mockProductRepository) ListTypesByProductID(ctx context.Context, productID string) ([]*domain.ProductType, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.ProductType
	for _, pt := range m.types {
		if pt.ProductID == productID {
			out = append(out, pt)
		}
	}
	return out, nil
}

type mockOrderRepository struct {
	orders        map[string]*domain.Order
	bookedEntries map[string]int
	createErr     error
	created       *domain.Order
	replaced      []*domain.OrderLine
	replacedTotal decimal.Decimal
	err           error
}

func (m *mockOrderRepository) CreateOrder(ctx context.Context, order *domain.Order, entryRequested map[string]int) error {
	if m.createErr != nil {
		return m.createErr
	}
	order.ID = "order-1"
	m.created = order
	return nil
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	order, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (m *mockOrderRepository) CountEntryLinesBySession(ctx context.Context, sessionID string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.bookedEntries[sessionID], nil
}

func (m *mockOrderRepository) ReplaceLines(ctx context.Context, orderID string, lines []*domain.OrderLine, totalCost decimal.Decimal, status *domain.OrderStatus) (*domain.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.replaced = lines
	m.replacedTotal = totalCost
	order := m.orders[orderID]
	order.Lines = lines
	order.TotalCost = totalCost
	if status != nil {
		order.Status = *status
	}
	return order, nil
}

type mockUserRepository struct {
	users map[string]*domain.User
	err   error
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	user.ID = "user-1"
	if m.users == nil {
		m.users = make(map[string]*domain.User)
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) AssignRole(ctx context.Context, userID, roleID string) error {
	return m.err
}

type mockRoleRepository struct {
	roles map[string]*domain.Role
	err   error
}

func (m *mockRoleRepository) GetByCode(ctx context.Context, code string) (*domain.Role, error) {
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.roles[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (m *mockRoleRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Role, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Role
	for _, r := range m.roles {
		out = append(out, r)
	}
	return out, nil
}

type mockEmailService struct {
	sent []*domain.OrderConfirmationEmailData
	err  error
}

func (m *mockEmailService) SendOrderConfirmation(ctx context.Context, data *domain.OrderConfirmationEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, data)
	return nil
}
