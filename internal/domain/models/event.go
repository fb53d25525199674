package models

import (
	"database/sql"
	"time"

	"ticketing/internal/query"
)

// Event is a bookable happening owned by one user.
type Event struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
}

var EventTable = &query.Table{
	Name: "events",
	Columns: []query.Column{
		{Name: "id", Kind: query.KindInt},
		{Name: "owner_id", Kind: query.KindInt},
		{Name: "title", Kind: query.KindString},
		{Name: "description", Kind: query.KindString},
		{Name: "location", Kind: query.KindString},
		{Name: "start_time", Kind: query.KindTime},
		{Name: "end_time", Kind: query.KindTime},
		{Name: "created_at", Kind: query.KindTime},
	},
}

// EventFilter supports listing by owner, fuzzy title/location search
// and a start-time window.
var EventFilter = query.NewDef("event",
	query.F("id", query.KindInt),
	query.F("owner_id", query.KindInt),
	query.F("title", query.KindString, query.Default(query.CmpContains)),
	query.F("location", query.KindString, query.Default(query.CmpContains)),
	query.F("start_time", query.KindTime, query.Default(query.CmpGte)),
)

func ScanEvent(s query.RowScanner) (*Event, error) {
	var (
		e    Event
		desc sql.NullString
	)
	if err := s.Scan(&e.ID, &e.OwnerID, &e.Title, &desc, &e.Location, &e.StartTime, &e.EndTime, &e.CreatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		e.Description = &desc.String
	}
	return &e, nil
}
