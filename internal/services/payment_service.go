package services

import (
	"context"
	"fmt"
	"time"

	"ticketing/internal/domain/models"
	"ticketing/internal/query"
	"ticketing/internal/uow"
)

// PaymentCreate is the data needed to pay for a ticket.
type PaymentCreate struct {
	TicketID      int64
	Amount        float64
	PaymentMethod string
}

// PaymentService settles tickets. A successful payment and the
// ticket's paid flag commit in one unit of work.
type PaymentService struct {
	uow *uow.Factory
}

func NewPaymentService(f *uow.Factory) *PaymentService {
	return &PaymentService{uow: f}
}

// Process charges userID for a ticket they own. The ticket must exist,
// be unpaid, and the amount must cover its price.
func (s *PaymentService) Process(ctx context.Context, in PaymentCreate, userID int64) (*models.Payment, error) {
	var payment *models.Payment
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		ticket, err := w.Tickets.Find(ctx, nil, map[string]query.Predicate{
			"id": query.Eq(in.TicketID),
		})
		if err != nil {
			return err
		}
		if ticket == nil {
			return fmt.Errorf("ticket %d: %w", in.TicketID, ErrNotFound)
		}
		if ticket.IsPaid {
			return fmt.Errorf("ticket %d is already paid: %w", in.TicketID, ErrConflict)
		}
		if ticket.OwnerID != userID {
			return fmt.Errorf("ticket %d is not owned by user %d: %w", in.TicketID, userID, ErrPermission)
		}
		if in.Amount < ticket.Price {
			return fmt.Errorf("amount %.2f does not cover price %.2f: %w", in.Amount, ticket.Price, ErrConflict)
		}

		payment, err = w.Payments.Add(ctx, map[string]any{
			"user_id":        userID,
			"ticket_id":      in.TicketID,
			"amount":         in.Amount,
			"payment_method": in.PaymentMethod,
			"payment_status": models.PaymentStatusSuccess,
			"payment_date":   time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		_, err = w.Tickets.Update(ctx, in.TicketID, map[string]any{
			"is_paid": true,
			"status":  models.TicketStatusPaid,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// UpdateStatus patches a payment's status. Moving to success marks the
// ticket paid in the same unit of work.
func (s *PaymentService) UpdateStatus(ctx context.Context, paymentID int64, status string) (*models.Payment, error) {
	var payment *models.Payment
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		var err error
		payment, err = w.Payments.Update(ctx, paymentID, map[string]any{"payment_status": status})
		if err != nil {
			return err
		}
		if payment == nil {
			return fmt.Errorf("payment %d: %w", paymentID, ErrNotFound)
		}
		if payment.PaymentStatus != models.PaymentStatusSuccess {
			return nil
		}
		ticket, err := w.Tickets.Find(ctx, nil, map[string]query.Predicate{
			"id": query.Eq(payment.TicketID),
		})
		if err != nil {
			return err
		}
		if ticket != nil && !ticket.IsPaid {
			_, err = w.Tickets.Update(ctx, ticket.ID, map[string]any{
				"is_paid": true,
				"status":  models.TicketStatusPaid,
			})
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}
