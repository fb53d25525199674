package models

import (
	"time"

	"ticketing/internal/query"
)

// Payment statuses.
const (
	PaymentStatusSuccess = "success"
	PaymentStatusPending = "pending"
	PaymentStatusFailed  = "failed"
)

// Payment records money received for one ticket.
type Payment struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	TicketID      int64     `json:"ticket_id"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
	PaymentDate   time.Time `json:"payment_date"`
	CreatedAt     time.Time `json:"created_at"`
}

var PaymentTable = &query.Table{
	Name: "payments",
	Columns: []query.Column{
		{Name: "id", Kind: query.KindInt},
		{Name: "user_id", Kind: query.KindInt},
		{Name: "ticket_id", Kind: query.KindInt},
		{Name: "amount", Kind: query.KindFloat},
		{Name: "payment_method", Kind: query.KindString},
		{Name: "payment_status", Kind: query.KindString},
		{Name: "payment_date", Kind: query.KindTime},
		{Name: "created_at", Kind: query.KindTime},
	},
}

var PaymentFilter = query.NewDef("payment",
	query.F("id", query.KindInt),
	query.F("user_id", query.KindInt),
	query.F("ticket_id", query.KindInt),
	query.F("payment_status", query.KindString),
	query.F("payment_date", query.KindTime, query.Default(query.CmpGte)),
)

func ScanPayment(s query.RowScanner) (*Payment, error) {
	var p Payment
	if err := s.Scan(&p.ID, &p.UserID, &p.TicketID, &p.Amount, &p.PaymentMethod, &p.PaymentStatus, &p.PaymentDate, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
