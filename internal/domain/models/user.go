// Package models declares the storage entities: their Go structs, the
// static table schemas filters resolve against, and the row scanners
// repositories hydrate with.
package models

import (
	"time"

	"ticketing/internal/query"
)

// User is a registered account. Password holds the bcrypt hash and
// never leaves the service layer.
type User struct {
	ID        int64     `json:"id"`
	Nickname  string    `json:"nickname"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

var UserTable = &query.Table{
	Name: "users",
	Columns: []query.Column{
		{Name: "id", Kind: query.KindInt},
		{Name: "nickname", Kind: query.KindString},
		{Name: "email", Kind: query.KindString},
		{Name: "password", Kind: query.KindString},
		{Name: "is_active", Kind: query.KindBool},
		{Name: "is_admin", Kind: query.KindBool},
		{Name: "created_at", Kind: query.KindTime},
	},
}

// UserFilter is the declared filter schema for user listings. Nickname
// searches match substrings.
var UserFilter = query.NewDef("user",
	query.F("id", query.KindInt),
	query.F("nickname", query.KindString, query.Default(query.CmpContains)),
	query.F("email", query.KindString),
	query.F("is_active", query.KindBool),
)

func ScanUser(s query.RowScanner) (*User, error) {
	var u User
	if err := s.Scan(&u.ID, &u.Nickname, &u.Email, &u.Password, &u.IsActive, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
