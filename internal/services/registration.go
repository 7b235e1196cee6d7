package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"eventadmissions/internal/domain"
)

type registrationService struct {
	eventRepo    domain.EventRepository
	sessionRepo  domain.SessionRepository
	productRepo  domain.ProductRepository
	orderRepo    domain.OrderRepository
	userRepo     domain.UserRepository
	emailService domain.EmailService
}

// NewRegistrationService creates a RegistrationService with the given
// repositories. emailService may be nil; confirmation emails are best-effort.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	sessionRepo domain.SessionRepository,
	productRepo domain.ProductRepository,
	orderRepo domain.OrderRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:    eventRepo,
		sessionRepo:  sessionRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		userRepo:     userRepo,
		emailService: emailService,
	}
}

func (s *registrationService) RegisterGuest(ctx context.Context, eventID string, guest domain.GuestInfo, selections []domain.SessionSelection) (*domain.RegistrationResult, error) {
	if guest.SponsorMemberID != "" {
		if _, err := s.userRepo.GetByID(ctx, guest.SponsorMemberID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("sponsoring member: %w", domain.ErrNotFound)
			}
			return nil, fmt.Errorf("get sponsoring member: %w", err)
		}
	}

	now := time.Now()
	registrant := domain.GuestRegistrant(&domain.Guest{
		Name:            guest.Name,
		Email:           guest.Email,
		Phone:           guest.Phone,
		SponsorMemberID: guest.SponsorMemberID,
		Headcounts:      guest.Headcounts,
		CreatedAt:       now,
	})
	return s.register(ctx, eventID, registrant, guest.Headcounts, selections, false)
}

func (s *registrationService) RegisterMember(ctx context.Context, eventID, memberID string, headcounts domain.Headcounts, selections []domain.SessionSelection) (*domain.RegistrationResult, error) {
	if _, err := s.userRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("member: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return s.register(ctx, eventID, domain.MemberRegistrant(memberID), headcounts, selections, true)
}

// register runs the full admission pipeline: resolve the event and catalog,
// validate dine-in and capacity for every selected session, price the request,
// and only then materialize the order. First violation rejects the whole
// request; nothing is written until all sessions pass.
func (s *registrationService) register(ctx context.Context, eventID string, registrant domain.Registrant, headcounts domain.Headcounts, selections []domain.SessionSelection, member bool) (*domain.RegistrationResult, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("event: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	eventSessions, err := s.sessionRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	sessionsByID := make(map[string]*domain.Session, len(eventSessions))
	for _, sess := range eventSessions {
		sessionsByID[sess.ID] = sess
	}

	resolved, err := s.resolveSelections(ctx, sessionsByID, selections)
	if err != nil {
		return nil, err
	}
	if !hasNonZeroQuantity(resolved) {
		return nil, domain.ErrEmptySelection
	}

	for _, sel := range resolved {
		if err := validateDineIn(sel, headcounts); err != nil {
			return nil, err
		}
	}

	entryRequested := entryQuantitiesBySession(resolved)
	for _, sel := range resolved {
		requested := entryRequested[sel.Session.ID]
		if requested == 0 {
			continue
		}
		booked, err := s.orderRepo.CountEntryLinesBySession(ctx, sel.Session.ID)
		if err != nil {
			return nil, fmt.Errorf("count entry lines: %w", err)
		}
		available := sel.Session.BalanceCapacity - booked
		if requested > available {
			return nil, &domain.CapacityExceededError{
				SessionID:   sel.Session.ID,
				SessionName: sel.Session.Name,
				Available:   available,
				Requested:   requested,
			}
		}
	}

	cost := computeCost(resolved, len(eventSessions), member)

	now := time.Now()
	order := &domain.Order{
		Registrant:    registrant,
		TotalCost:     cost.TotalCost,
		TransactionID: generateTransactionID(),
		Status:        domain.OrderStatusConfirmed,
		Lines:         buildOrderLines(resolved),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.orderRepo.CreateOrder(ctx, order, entryRequested); err != nil {
		var capErr *domain.CapacityExceededError
		if errors.As(err, &capErr) {
			return nil, capErr
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.sendConfirmation(ctx, event, order, cost, len(resolved))

	return &domain.RegistrationResult{
		Order:         order,
		TransactionID: order.TransactionID,
		Cost:          cost,
	}, nil
}

// resolveSelections checks every selected session belongs to the event and
// every product pick is mapped to its session and active, and loads the
// product and price detail needed for validation and pricing.
func (s *registrationService) resolveSelections(ctx context.Context, sessionsByID map[string]*domain.Session, selections []domain.SessionSelection) ([]resolvedSession, error) {
	resolved := make([]resolvedSession, 0, len(selections))
	seen := make(map[string]bool, len(selections))

	for _, sel := range selections {
		session, ok := sessionsByID[sel.SessionID]
		if !ok {
			return nil, fmt.Errorf("session %s does not belong to the event: %w", sel.SessionID, domain.ErrInvalidSelection)
		}
		if seen[sel.SessionID] {
			return nil, fmt.Errorf("session %s selected more than once: %w", sel.SessionID, domain.ErrInvalidSelection)
		}
		seen[sel.SessionID] = true

		mappings, err := s.sessionRepo.ListProductMappings(ctx, sel.SessionID)
		if err != nil {
			return nil, fmt.Errorf("list session products: %w", err)
		}
		allowed := make(map[string]bool, len(mappings))
		for _, m := range mappings {
			allowed[m.ProductID+":"+m.ProductTypeID] = true
		}

		rs := resolvedSession{Session: session, OptOutOfFood: sel.OptOutOfFood}
		for _, pick := range sel.Products {
			if pick.Quantity < 0 {
				return nil, fmt.Errorf("negative quantity for product type %s: %w", pick.ProductTypeID, domain.ErrInvalidInput)
			}
			if !allowed[pick.ProductID+":"+pick.ProductTypeID] {
				return nil, fmt.Errorf("product type %s is not sold in session %s: %w", pick.ProductTypeID, sel.SessionID, domain.ErrInvalidSelection)
			}
			ptype, err := s.productRepo.GetProductType(ctx, pick.ProductTypeID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, fmt.Errorf("product type %s: %w", pick.ProductTypeID, domain.ErrNotFound)
				}
				return nil, fmt.Errorf("get product type: %w", err)
			}
			if ptype.ProductID != pick.ProductID {
				return nil, fmt.Errorf("product type %s does not belong to product %s: %w", pick.ProductTypeID, pick.ProductID, domain.ErrInvalidSelection)
			}
			product, err := s.productRepo.GetByID(ctx, pick.ProductID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, fmt.Errorf("product %s: %w", pick.ProductID, domain.ErrNotFound)
				}
				return nil, fmt.Errorf("get product: %w", err)
			}
			if product.Status != domain.StatusActive || ptype.Status != domain.StatusActive {
				return nil, fmt.Errorf("product %s is not active: %w", pick.ProductID, domain.ErrInvalidSelection)
			}
			rs.Lines = append(rs.Lines, resolvedLine{Product: product, Type: ptype, Quantity: pick.Quantity})
		}
		resolved = append(resolved, rs)
	}
	return resolved, nil
}

func (s *registrationService) AdjustOrder(ctx context.Context, orderID string, lines []domain.LineAdjustment, status *domain.OrderStatus) (*domain.Order, error) {
	if _, err := s.orderRepo.GetByID(ctx, orderID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("order: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	newLines := make([]*domain.OrderLine, 0, len(lines))
	total := decimal.Zero
	for _, adj := range lines {
		if adj.Quantity < 0 {
			return nil, fmt.Errorf("negative quantity for product type %s: %w", adj.ProductTypeID, domain.ErrInvalidInput)
		}
		if adj.Quantity == 0 {
			continue
		}
		ptype, err := s.productRepo.GetProductType(ctx, adj.ProductTypeID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("product type %s: %w", adj.ProductTypeID, domain.ErrNotFound)
			}
			return nil, fmt.Errorf("get product type: %w", err)
		}
		if ptype.ProductID != adj.ProductID {
			return nil, fmt.Errorf("product type %s does not belong to product %s: %w", adj.ProductTypeID, adj.ProductID, domain.ErrInvalidSelection)
		}
		newLines = append(newLines, &domain.OrderLine{
			OrderID:       orderID,
			ProductID:     adj.ProductID,
			ProductTypeID: adj.ProductTypeID,
			SessionID:     adj.SessionID,
			Quantity:      adj.Quantity,
			UnitPrice:     ptype.Price,
		})
		total = total.Add(ptype.Price.Mul(decimal.NewFromInt(int64(adj.Quantity))))
	}

	order, err := s.orderRepo.ReplaceLines(ctx, orderID, newLines, total, status)
	if err != nil {
		return nil, fmt.Errorf("replace order lines: %w", err)
	}
	return order, nil
}

func (s *registrationService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// sendConfirmation emails the registrant a cost breakdown. Failures are
// swallowed: the order is already committed and the email is a courtesy.
func (s *registrationService) sendConfirmation(ctx context.Context, event *domain.Event, order *domain.Order, cost domain.CostBreakdown, sessionCount int) {
	if s.emailService == nil {
		return
	}
	var email, name string
	if order.Registrant.Guest != nil {
		email = order.Registrant.Guest.Email
		name = order.Registrant.Guest.Name
	} else if order.Registrant.IsMember() {
		user, err := s.userRepo.GetByID(ctx, order.Registrant.MemberID)
		if err != nil {
			return
		}
		email = user.Email
		name = user.Name
	}
	if email == "" {
		return
	}
	_ = s.emailService.SendOrderConfirmation(ctx, &domain.OrderConfirmationEmailData{
		Email:          email,
		Name:           name,
		EventName:      event.Name,
		TransactionID:  order.TransactionID,
		EntryCost:      cost.EntryCost.StringFixed(2),
		FoodCost:       cost.FoodCost.StringFixed(2),
		TotalCost:      cost.TotalCost.StringFixed(2),
		DiscountAmount: cost.DiscountAmount().StringFixed(2),
		SessionCount:   sessionCount,
	})
}

// hasNonZeroQuantity reports whether any session carries a positive quantity.
func hasNonZeroQuantity(resolved []resolvedSession) bool {
	for _, sel := range resolved {
		for _, line := range sel.Lines {
			if line.Quantity > 0 {
				return true
			}
		}
	}
	return false
}

// entryQuantitiesBySession sums the entry-ticket quantities this request adds
// per session. Sessions with no entry units are omitted.
func entryQuantitiesBySession(resolved []resolvedSession) map[string]int {
	out := make(map[string]int)
	for _, sel := range resolved {
		for _, line := range sel.Lines {
			if line.Product.Kind == domain.ProductKindEntry && line.Quantity > 0 {
				out[sel.Session.ID] += line.Quantity
			}
		}
	}
	return out
}

// buildOrderLines flattens resolved selections into order lines with price
// snapshots, dropping zero-quantity picks.
func buildOrderLines(resolved []resolvedSession) []*domain.OrderLine {
	var lines []*domain.OrderLine
	for _, sel := range resolved {
		for _, line := range sel.Lines {
			if line.Quantity == 0 {
				continue
			}
			lines = append(lines, &domain.OrderLine{
				ProductID:     line.Product.ID,
				ProductTypeID: line.Type.ID,
				SessionID:     sel.Session.ID,
				Quantity:      line.Quantity,
				UnitPrice:     line.Type.Price,
			})
		}
	}
	return lines
}

// generateTransactionID returns a unique order reference of the form
// TXN-<epoch-ms>-<8 hex chars>, usable as a reconciliation key.
func generateTransactionID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), suffix)
}
