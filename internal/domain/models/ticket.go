package models

import (
	"database/sql"
	"time"

	"ticketing/internal/query"
)

// Ticket statuses.
const (
	TicketStatusReserved = "reserved"
	TicketStatusPaid     = "paid"
)

// Ticket grants one user entry to one event, optionally pinned to a
// seat (unique per seat).
type Ticket struct {
	ID         int64     `json:"id"`
	OwnerID    int64     `json:"owner_id"`
	EventID    int64     `json:"event_id"`
	TicketType string    `json:"ticket_type"`
	Price      float64   `json:"price"`
	Status     string    `json:"status"`
	IsUsed     bool      `json:"is_used"`
	IsPaid     bool      `json:"is_paid"`
	SeatID     *int64    `json:"seat_id"`
	CreatedAt  time.Time `json:"created_at"`
}

var TicketTable = &query.Table{
	Name: "tickets",
	Columns: []query.Column{
		{Name: "id", Kind: query.KindInt},
		{Name: "owner_id", Kind: query.KindInt},
		{Name: "event_id", Kind: query.KindInt},
		{Name: "ticket_type", Kind: query.KindString},
		{Name: "price", Kind: query.KindFloat},
		{Name: "status", Kind: query.KindString},
		{Name: "is_used", Kind: query.KindBool},
		{Name: "is_paid", Kind: query.KindBool},
		{Name: "seat_id", Kind: query.KindInt},
		{Name: "created_at", Kind: query.KindTime},
	},
}

var TicketFilter = query.NewDef("ticket",
	query.F("id", query.KindInt),
	query.F("owner_id", query.KindInt),
	query.F("event_id", query.KindInt),
	query.F("status", query.KindString),
	query.F("is_paid", query.KindBool),
)

func ScanTicket(s query.RowScanner) (*Ticket, error) {
	var (
		t    Ticket
		seat sql.NullInt64
	)
	if err := s.Scan(&t.ID, &t.OwnerID, &t.EventID, &t.TicketType, &t.Price, &t.Status,
		&t.IsUsed, &t.IsPaid, &seat, &t.CreatedAt); err != nil {
		return nil, err
	}
	if seat.Valid {
		t.SeatID = &seat.Int64
	}
	return &t, nil
}
