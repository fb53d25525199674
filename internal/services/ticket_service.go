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

// TicketCreate is the data needed to reserve a ticket.
type TicketCreate struct {
	EventID    int64
	TicketType string
	Price      float64
	SeatID     *int64
}

// TicketService manages reservations.
type TicketService struct {
	uow *uow.Factory
}

func NewTicketService(f *uow.Factory) *TicketService {
	return &TicketService{uow: f}
}

// Create reserves a ticket for ownerID. The event must exist; a seat
// already taken by another ticket surfaces as ErrConflict.
func (s *TicketService) Create(ctx context.Context, in TicketCreate, ownerID int64) (*models.Ticket, error) {
	var ticket *models.Ticket
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

		ticketType := in.TicketType
		if ticketType == "" {
			ticketType = "Standard"
		}
		data := map[string]any{
			"owner_id":    ownerID,
			"event_id":    in.EventID,
			"ticket_type": ticketType,
			"price":       in.Price,
			"status":      models.TicketStatusReserved,
			"is_used":     false,
			"is_paid":     false,
		}
		if in.SeatID != nil {
			data["seat_id"] = *in.SeatID
		}
		ticket, err = w.Tickets.Add(ctx, data)
		if err != nil {
			if errors.Is(err, repository.ErrIntegrity) {
				return fmt.Errorf("ticket for seat already exists: %w", ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// Get returns the ticket or ErrNotFound.
func (s *TicketService) Get(ctx context.Context, id int64) (*models.Ticket, error) {
	var ticket *models.Ticket
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		var err error
		ticket, err = w.Tickets.Find(ctx, nil, map[string]query.Predicate{
			"id": query.Eq(id),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, fmt.Errorf("ticket %d: %w", id, ErrNotFound)
	}
	return ticket, nil
}

// ListByOwner returns every ticket held by the user.
func (s *TicketService) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) (*Collection[models.Ticket], error) {
	var tickets []*models.Ticket
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		var err error
		tickets, err = w.Tickets.FindAll(ctx, offset, limit, nil, map[string]query.Predicate{
			"owner_id": query.Eq(ownerID),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return newCollection(tickets, offset, limit), nil
}
