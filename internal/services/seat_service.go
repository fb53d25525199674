package services

import (
	"context"
	"errors"
	"fmt"

	"ticketing/internal/domain/models"
	"ticketing/internal/query"
	"ticketing/internal/repository"
	"ticketing/internal/uow"
)

// SeatCreate is the data needed to add a seat to an event.
type SeatCreate struct {
	EventID    int64
	SeatNumber string
	SeatRow    string
	Price      float64
}

// SeatService manages the seat map of events.
type SeatService struct {
	uow *uow.Factory
}

func NewSeatService(f *uow.Factory) *SeatService {
	return &SeatService{uow: f}
}

// Add creates a seat. The event must exist; a duplicate row/number
// within the event surfaces as ErrConflict.
func (s *SeatService) Add(ctx context.Context, in SeatCreate) (*models.Seat, error) {
	var seat *models.Seat
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		event, err := w.Events.Find(ctx, nil, map[string]query.Predicate{
			"id": query.Eq(in.EventID),
		})
		if err != nil {
			return err
		}
		if event == nil {
			return fmt.Errorf("event %d: %w", in.EventID, ErrNotFound)
		}
		seat, err = w.Seats.Add(ctx, map[string]any{
			"event_id":    in.EventID,
			"seat_number": in.SeatNumber,
			"seat_row":    in.SeatRow,
			"is_reserved": false,
			"price":       in.Price,
		})
		if err != nil {
			if errors.Is(err, repository.ErrIntegrity) {
				return fmt.Errorf("seat %s%s already exists for event %d: %w",
					in.SeatRow, in.SeatNumber, in.EventID, ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seat, nil
}

// Available lists the unreserved seats of an event.
func (s *SeatService) Available(ctx context.Context, eventID int64, offset, limit int) (*Collection[models.Seat], error) {
	var seats []*models.Seat
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		var err error
		seats, err = w.Seats.FindAll(ctx, offset, limit, nil, map[string]query.Predicate{
			"event_id":    query.Eq(eventID),
			"is_reserved": query.Eq(false),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return newCollection(seats, offset, limit), nil
}

// Reserve marks a seat taken. An already-reserved seat is ErrConflict.
func (s *SeatService) Reserve(ctx context.Context, seatID int64) (*models.Seat, error) {
	var seat *models.Seat
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		current, err := w.Seats.Find(ctx, nil, map[string]query.Predicate{
			"id": query.Eq(seatID),
		})
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("seat %d: %w", seatID, ErrNotFound)
		}
		if current.IsReserved {
			return fmt.Errorf("seat %d is already reserved: %w", seatID, ErrConflict)
		}
		seat, err = w.Seats.Update(ctx, seatID, map[string]any{"is_reserved": true})
		return err
	})
	if err != nil {
		return nil, err
	}
	return seat, nil
}
