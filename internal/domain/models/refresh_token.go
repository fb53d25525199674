package models

import (
	"time"

	"ticketing/internal/query"
)

// RefreshToken is the persisted record backing one issued refresh
// token. The record lives until explicit revocation or cascading user
// deletion; expiry is enforced only when the token itself is decoded.
type RefreshToken struct {
	ID        int64     `json:"id"`
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

var RefreshTokenTable = &query.Table{
	Name: "refresh_tokens",
	Columns: []query.Column{
		{Name: "id", Kind: query.KindInt},
		{Name: "token", Kind: query.KindString},
		{Name: "user_id", Kind: query.KindInt},
		{Name: "revoked", Kind: query.KindBool},
		{Name: "created_at", Kind: query.KindTime},
	},
}

func ScanRefreshToken(s query.RowScanner) (*RefreshToken, error) {
	var t RefreshToken
	if err := s.Scan(&t.ID, &t.Token, &t.UserID, &t.Revoked, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
