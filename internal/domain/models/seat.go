package models

import (
	"time"

	"ticketing/internal/query"
)

// Seat is one sellable place at an event. Row plus number are unique
// within an event.
type Seat struct {
	ID         int64     `json:"id"`
	EventID    int64     `json:"event_id"`
	SeatNumber string    `json:"seat_number"`
	SeatRow    string    `json:"seat_row"`
	IsReserved bool      `json:"is_reserved"`
	Price      float64   `json:"price"`
	CreatedAt  time.Time `json:"created_at"`
}

var SeatTable = &query.Table{
	Name: "seats",
	Columns: []query.Column{
		{Name: "id", Kind: query.KindInt},
		{Name: "event_id", Kind: query.KindInt},
		{Name: "seat_number", Kind: query.KindString},
		{Name: "seat_row", Kind: query.KindString},
		{Name: "is_reserved", Kind: query.KindBool},
		{Name: "price", Kind: query.KindFloat},
		{Name: "created_at", Kind: query.KindTime},
	},
}

var SeatFilter = query.NewDef("seat",
	query.F("id", query.KindInt),
	query.F("event_id", query.KindInt),
	query.F("seat_row", query.KindString),
	query.F("is_reserved", query.KindBool),
	query.F("price", query.KindFloat, query.Default(query.CmpLte)),
)

func ScanSeat(s query.RowScanner) (*Seat, error) {
	var st Seat
	if err := s.Scan(&st.ID, &st.EventID, &st.SeatNumber, &st.SeatRow, &st.IsReserved, &st.Price, &st.CreatedAt); err != nil {
		return nil, err
	}
	return &st, nil
}
