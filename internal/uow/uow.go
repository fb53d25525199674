// Package uow provides the per-request transaction coordinator: one
// connection, one transaction, one repository per entity type, with
// commit-on-clean-exit, rollback-on-error and guaranteed connection
// release.
package uow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"ticketing/internal/domain/models"
	"ticketing/internal/repository"
)

// Factory creates units of work over a shared pool. It replaces the
// package-global engine the coordinator must not depend on: construct
// one at startup and inject it into the services.
type Factory struct {
	db *sql.DB
}

// NewFactory wraps the pool.
func NewFactory(db *sql.DB) *Factory {
	return &Factory{db: db}
}

// UnitOfWork owns one connection for the duration of one scope. The
// repositories all execute on the unit's current transaction. A unit
// is single-use: create a fresh one per logical unit of work.
type UnitOfWork struct {
	ctx  context.Context
	conn *sql.Conn
	tx   *sql.Tx

	Users         *repository.Repository[models.User]
	RefreshTokens *repository.Repository[models.RefreshToken]
	Events        *repository.Repository[models.Event]
	Tickets       *repository.Repository[models.Ticket]
	Seats         *repository.Repository[models.Seat]
	Payments      *repository.Repository[models.Payment]
}

// Do runs fn inside one unit-of-work scope. On a nil return the
// transaction commits; on error or panic it rolls back. The connection
// is released on every path, including context cancellation mid-scope.
func (f *Factory) Do(ctx context.Context, fn func(w *UnitOfWork) error) error {
	conn, err := f.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	w := &UnitOfWork{ctx: ctx, conn: conn, tx: tx}
	w.Users = repository.New(w, models.UserTable, models.ScanUser)
	w.RefreshTokens = repository.New(w, models.RefreshTokenTable, models.ScanRefreshToken)
	w.Events = repository.New(w, models.EventTable, models.ScanEvent)
	w.Tickets = repository.New(w, models.TicketTable, models.ScanTicket)
	w.Seats = repository.New(w, models.SeatTable, models.ScanSeat)
	w.Payments = repository.New(w, models.PaymentTable, models.ScanPayment)

	defer func() {
		if p := recover(); p != nil {
			w.rollback()
			panic(p)
		}
	}()

	if err := fn(w); err != nil {
		w.rollback()
		return err
	}
	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Commit flushes the current transaction without ending the scope and
// opens a fresh transaction on the same connection, so the automatic
// commit at scope exit closes over whatever follows (possibly
// nothing).
func (w *UnitOfWork) Commit() error {
	if err := w.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	tx, err := w.conn.BeginTx(w.ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	w.tx = tx
	return nil
}

func (w *UnitOfWork) rollback() {
	if err := w.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Error().Err(err).Msg("unit of work rollback failed")
	}
}

// ExecContext runs on the unit's current transaction.
func (w *UnitOfWork) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return w.tx.ExecContext(ctx, query, args...)
}

// QueryContext runs on the unit's current transaction.
func (w *UnitOfWork) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return w.tx.QueryContext(ctx, query, args...)
}

// QueryRowContext runs on the unit's current transaction.
func (w *UnitOfWork) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return w.tx.QueryRowContext(ctx, query, args...)
}
