package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"ticketing/internal/query"
	"ticketing/internal/uow"
)

// DocsService renders printable ticket documents.
type DocsService struct {
	uow *uow.Factory
}

func NewDocsService(f *uow.Factory) *DocsService {
	return &DocsService{uow: f}
}

type ticketDocData struct {
	TicketID   int64
	TicketType string
	Status     string
	Price      float64
	Holder     string
	Email      string
	EventTitle string
	Location   string
	StartTime  time.Time
	SeatLabel  string
}

// ETicket renders the e-ticket PDF for a ticket the user owns.
// Returns the document bytes and a download filename.
func (s *DocsService) ETicket(ctx context.Context, ticketID, userID int64) ([]byte, string, error) {
	var d ticketDocData
	err := s.uow.Do(ctx, func(w *uow.UnitOfWork) error {
		ticket, err := w.Tickets.Find(ctx, nil, map[string]query.Predicate{
			"id": query.Eq(ticketID),
		})
		if err != nil {
			return err
		}
		if ticket == nil {
			return fmt.Errorf("ticket %d: %w", ticketID, ErrNotFound)
		}
		if ticket.OwnerID != userID {
			return fmt.Errorf("ticket %d is not owned by user %d: %w", ticketID, userID, ErrPermission)
		}
		event, err := w.Events.Find(ctx, nil, map[string]query.Predicate{
			"id": query.Eq(ticket.EventID),
		})
		if err != nil {
			return err
		}
		owner, err := w.Users.Find(ctx, nil, map[string]query.Predicate{
			"id": query.Eq(ticket.OwnerID),
		})
		if err != nil {
			return err
		}

		d = ticketDocData{
			TicketID:   ticket.ID,
			TicketType: ticket.TicketType,
			Status:     ticket.Status,
			Price:      ticket.Price,
		}
		if owner != nil {
			d.Holder = owner.Nickname
			d.Email = owner.Email
		}
		if event != nil {
			d.EventTitle = event.Title
			d.Location = event.Location
			d.StartTime = event.StartTime
		}
		if ticket.SeatID != nil {
			seat, err := w.Seats.Find(ctx, nil, map[string]query.Predicate{
				"id": query.Eq(*ticket.SeatID),
			})
			if err != nil {
				return err
			}
			if seat != nil {
				d.SeatLabel = seat.SeatRow + seat.SeatNumber
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return buildETicketPDF(d)
}

func buildETicketPDF(d ticketDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Ticket code : TCK-%d", d.TicketID),
		fmt.Sprintf("Holder      : %s", safe(d.Holder)),
		fmt.Sprintf("Email       : %s", safe(d.Email)),
		fmt.Sprintf("Event       : %s", safe(d.EventTitle)),
		fmt.Sprintf("Location    : %s", safe(d.Location)),
		fmt.Sprintf("Starts      : %s", d.StartTime.Format("2006-01-02 15:04")),
		fmt.Sprintf("Seat        : %s", safe(d.SeatLabel)),
		fmt.Sprintf("Type        : %s", safe(d.TicketType)),
		fmt.Sprintf("Status      : %s", safe(d.Status)),
		fmt.Sprintf("Price       : %.2f", d.Price),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket admits one person. Present it at the entrance.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", d.TicketID, filenamePart(d.Holder))
	return buf.Bytes(), filename, nil
}

func safe(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func filenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "ticket"
	}
	clean := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			clean = append(clean, r)
		default:
			clean = append(clean, '_')
		}
	}
	return string(clean)
}
