package services

import (
	"context"
	"errors"
	"fmt"

	"eventadmissions/internal/domain"
)

type capacityService struct {
	sessionRepo domain.SessionRepository
	orderRepo   domain.OrderRepository
}

// NewCapacityService creates a CapacityService backed by the given repositories.
func NewCapacityService(sessionRepo domain.SessionRepository, orderRepo domain.OrderRepository) domain.CapacityService {
	return &capacityService{
		sessionRepo: sessionRepo,
		orderRepo:   orderRepo,
	}
}

// AvailableSpots returns the session's seat ceiling minus the entry units
// already booked. The result can be negative if administrators reduced the
// capacity below the booked count.
func (s *capacityService) AvailableSpots(ctx context.Context, sessionID string) (int, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("get session: %w", err)
	}

	booked, err := s.orderRepo.CountEntryLinesBySession(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("count entry lines: %w", err)
	}
	return session.BalanceCapacity - booked, nil
}

func (s *capacityService) IsFull(ctx context.Context, sessionID string) (bool, error) {
	spots, err := s.AvailableSpots(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return spots <= 0, nil
}
