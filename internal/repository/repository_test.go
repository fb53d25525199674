package repository

import (
	"context"
	"errors"
	"testing"

	"ticketing/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

type user struct {
	ID       int64
	Nickname string
	Email    string
}

var userTable = &query.Table{
	Name: "users",
	Columns: []query.Column{
		{Name: "id", Kind: query.KindInt},
		{Name: "nickname", Kind: query.KindString},
		{Name: "email", Kind: query.KindString},
	},
}

func scanUser(row query.RowScanner) (*user, error) {
	var u user
	if err := row.Scan(&u.ID, &u.Nickname, &u.Email); err != nil {
		return nil, err
	}
	return &u, nil
}

func userRows(users ...user) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "nickname", "email"})
	for _, u := range users {
		rows.AddRow(u.ID, u.Nickname, u.Email)
	}
	return rows
}

func newUserRepo(t *testing.T) (*Repository[user], sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return New[user](db, userTable, scanUser), mock, func() { db.Close() }
}

func TestAddInsertsAndReloads(t *testing.T) {
	repo, mock, done := newUserRepo(t)
	defer done()

	mock.ExpectExec("INSERT INTO `users` \\(`nickname`, `email`\\)").
		WithArgs("alice", "a@b.c").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery("SELECT `id`, `nickname`, `email` FROM `users` WHERE `id` = \\?").
		WithArgs(int64(7)).
		WillReturnRows(userRows(user{ID: 7, Nickname: "alice", Email: "a@b.c"}))

	got, err := repo.Add(context.Background(), map[string]any{
		"id":       int64(99), // ignored
		"nickname": "alice",
		"email":    "a@b.c",
	})
	if err != nil {
		t.Fatalf("add error: %v", err)
	}
	if got.ID != 7 || got.Email != "a@b.c" {
		t.Fatalf("unexpected entity: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddDuplicateIsIntegrityError(t *testing.T) {
	repo, mock, done := newUserRepo(t)
	defer done()

	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate entry"})

	_, err := repo.Add(context.Background(), map[string]any{"email": "a@b.c"})
	if !errors.Is(err, ErrIntegrity) {
		t.Fatalf("want ErrIntegrity, got %v", err)
	}
}

func TestFindAppliesOverridesAndLimitsToOne(t *testing.T) {
	repo, mock, done := newUserRepo(t)
	defer done()

	mock.ExpectQuery("SELECT `id`, `nickname`, `email` FROM `users` WHERE `email` = \\? LIMIT 1").
		WithArgs("a@b.c").
		WillReturnRows(userRows(user{ID: 1, Nickname: "alice", Email: "a@b.c"}))

	got, err := repo.Find(context.Background(), nil, map[string]query.Predicate{
		"email": query.Eq("a@b.c"),
	})
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if got == nil || got.ID != 1 {
		t.Fatalf("unexpected entity: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindNoMatchReturnsNil(t *testing.T) {
	repo, mock, done := newUserRepo(t)
	defer done()

	mock.ExpectQuery("SELECT `id`, `nickname`, `email` FROM `users` WHERE `email` = \\? LIMIT 1").
		WithArgs("ghost@b.c").
		WillReturnRows(userRows())

	got, err := repo.Find(context.Background(), nil, map[string]query.Predicate{
		"email": query.Eq("ghost@b.c"),
	})
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if got != nil {
		t.Fatalf("want nil, got %+v", got)
	}
}

func TestFindCarriedPredicateErrorFailsBeforeQuery(t *testing.T) {
	repo, _, done := newUserRepo(t)
	defer done()

	_, err := repo.Find(context.Background(), nil, map[string]query.Predicate{
		"nickname": query.Gt(true),
	})
	if !errors.Is(err, query.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestFindAllPassesPagination(t *testing.T) {
	repo, mock, done := newUserRepo(t)
	defer done()

	mock.ExpectQuery("SELECT `id`, `nickname`, `email` FROM `users` WHERE `nickname` LIKE \\? LIMIT \\? OFFSET \\?").
		WithArgs("%al%", 10, 20).
		WillReturnRows(userRows(
			user{ID: 1, Nickname: "alice", Email: "a@b.c"},
			user{ID: 2, Nickname: "alina", Email: "c@d.e"},
		))

	got, err := repo.FindAll(context.Background(), 20, 10, nil, map[string]query.Predicate{
		"nickname": query.Contains("al"),
	})
	if err != nil {
		t.Fatalf("find all error: %v", err)
	}
	if len(got) != 2 || got[1].Nickname != "alina" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindAllBadSyntaxIsInvalidQuery(t *testing.T) {
	repo, mock, done := newUserRepo(t)
	defer done()

	mock.ExpectQuery("SELECT `id`, `nickname`, `email` FROM `users`").
		WillReturnError(&mysql.MySQLError{Number: 1064, Message: "syntax error"})

	_, err := repo.FindAll(context.Background(), 0, 10, nil, nil)
	if !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("want ErrInvalidQuery, got %v", err)
	}
}

func TestUpdateReturnsNewState(t *testing.T) {
	repo, mock, done := newUserRepo(t)
	defer done()

	mock.ExpectExec("UPDATE `users` SET `nickname` = \\? WHERE `id` = \\?").
		WithArgs("bob", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT `id`, `nickname`, `email` FROM `users` WHERE `id` = \\?").
		WithArgs(int64(1)).
		WillReturnRows(userRows(user{ID: 1, Nickname: "bob", Email: "a@b.c"}))

	got, err := repo.Update(context.Background(), 1, map[string]any{"id": int64(5), "nickname": "bob"})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if got.Nickname != "bob" {
		t.Fatalf("unexpected entity: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateMissingRowReturnsNil(t *testing.T) {
	repo, mock, done := newUserRepo(t)
	defer done()

	mock.ExpectExec("UPDATE `users` SET `nickname` = \\? WHERE `id` = \\?").
		WithArgs("bob", int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT `id`, `nickname`, `email` FROM `users` WHERE `id` = \\?").
		WithArgs(int64(999)).
		WillReturnRows(userRows())

	got, err := repo.Update(context.Background(), 999, map[string]any{"nickname": "bob"})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if got != nil {
		t.Fatalf("want nil for missing row, got %+v", got)
	}
}

func TestUpdateEmptyPatchFails(t *testing.T) {
	repo, _, done := newUserRepo(t)
	defer done()

	_, err := repo.Update(context.Background(), 1, map[string]any{"id": int64(1)})
	if !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("want ErrInvalidQuery, got %v", err)
	}
}

func TestDeleteReturnsPriorState(t *testing.T) {
	repo, mock, done := newUserRepo(t)
	defer done()

	mock.ExpectQuery("SELECT `id`, `nickname`, `email` FROM `users` WHERE `id` = \\?").
		WithArgs(int64(1)).
		WillReturnRows(userRows(user{ID: 1, Nickname: "alice", Email: "a@b.c"}))
	mock.ExpectExec("DELETE FROM `users` WHERE `id` = \\?").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Delete(context.Background(), 1)
	if err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if got == nil || got.Nickname != "alice" {
		t.Fatalf("unexpected prior state: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteMissingRowReturnsNil(t *testing.T) {
	repo, mock, done := newUserRepo(t)
	defer done()

	mock.ExpectQuery("SELECT `id`, `nickname`, `email` FROM `users` WHERE `id` = \\?").
		WithArgs(int64(999)).
		WillReturnRows(userRows())

	got, err := repo.Delete(context.Background(), 999)
	if err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if got != nil {
		t.Fatalf("want nil for missing row, got %+v", got)
	}
}
