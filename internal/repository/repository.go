// Package repository provides the generic, filter-driven data access
// layer shared by every entity type.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"ticketing/internal/query"
)

// DBTX is the executor a repository runs on: a *sql.DB, a *sql.Tx, or
// the unit-of-work wrapper around the current transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ScanFunc hydrates one entity from a result row. The scan order must
// match the table's declared column order.
type ScanFunc[T any] func(query.RowScanner) (*T, error)

// Repository implements Add/Find/FindAll/Update/Delete for one entity
// type, composing the filter resolver to build its WHERE clauses.
type Repository[T any] struct {
	db       DBTX
	table    *query.Table
	resolver *query.Resolver
	scan     ScanFunc[T]
	selects  string
}

// New builds a repository bound to the given executor and table.
func New[T any](db DBTX, table *query.Table, scan ScanFunc[T]) *Repository[T] {
	cols := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		cols[i] = "`" + c.Name + "`"
	}
	return &Repository[T]{
		db:       db,
		table:    table,
		resolver: query.NewResolver(table),
		scan:     scan,
		selects:  strings.Join(cols, ", "),
	}
}

// Add inserts a new record and returns its stored state. Columns are
// taken from data in declared order; an "id" key is ignored. A
// uniqueness or foreign-key violation surfaces as ErrIntegrity.
func (r *Repository[T]) Add(ctx context.Context, data map[string]any) (*T, error) {
	var (
		cols []string
		args []any
	)
	for _, c := range r.table.Columns {
		if c.Name == "id" {
			continue
		}
		v, ok := data[c.Name]
		if !ok {
			continue
		}
		cols = append(cols, "`"+c.Name+"`")
		args = append(args, v)
	}
	if len(cols) == 0 {
		return nil, errors.Join(ErrInvalidQuery, errors.New("no insertable columns"))
	}

	stmt := "INSERT INTO `" + r.table.Name + "` (" + strings.Join(cols, ", ") + ") VALUES (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ")"
	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return nil, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, translate(err)
	}
	return r.byID(ctx, id)
}

// Find returns at most one entity matching the filter, nil when none
// match. Overrides are applied through Filter.Overload first. More
// than one matching row is the caller's integrity problem; the first
// row wins.
func (r *Repository[T]) Find(ctx context.Context, f *query.Filter, overrides map[string]query.Predicate) (*T, error) {
	where, args, err := r.where(f, overrides)
	if err != nil {
		return nil, err
	}
	stmt := "SELECT " + r.selects + " FROM `" + r.table.Name + "`" + where + " LIMIT 1"
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, translate(err)
		}
		return nil, nil
	}
	ent, err := r.scan(rows)
	if err != nil {
		return nil, translate(err)
	}
	return ent, nil
}

// FindAll returns the matching entities with pagination. Offset and
// limit validation is the caller's contract, not enforced here.
func (r *Repository[T]) FindAll(ctx context.Context, offset, limit int, f *query.Filter, overrides map[string]query.Predicate) ([]*T, error) {
	where, args, err := r.where(f, overrides)
	if err != nil {
		return nil, err
	}
	stmt := "SELECT " + r.selects + " FROM `" + r.table.Name + "`" + where + " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		ent, err := r.scan(rows)
		if err != nil {
			return nil, translate(err)
		}
		out = append(out, ent)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// Update applies a partial update by id and returns the new state, nil
// when no row matched. An "id" key inside data is ignored.
func (r *Repository[T]) Update(ctx context.Context, id int64, data map[string]any) (*T, error) {
	var (
		sets []string
		args []any
	)
	for _, c := range r.table.Columns {
		if c.Name == "id" {
			continue
		}
		v, ok := data[c.Name]
		if !ok {
			continue
		}
		sets = append(sets, "`"+c.Name+"` = ?")
		args = append(args, v)
	}
	if len(sets) == 0 {
		return nil, errors.Join(ErrInvalidQuery, errors.New("empty update"))
	}
	args = append(args, id)

	stmt := "UPDATE `" + r.table.Name + "` SET " + strings.Join(sets, ", ") + " WHERE `id` = ?"
	if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, translate(err)
	}
	return r.byID(ctx, id)
}

// Delete removes the record and returns its prior state, nil when the
// id did not exist.
func (r *Repository[T]) Delete(ctx context.Context, id int64) (*T, error) {
	prior, err := r.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prior == nil {
		return nil, nil
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM `"+r.table.Name+"` WHERE `id` = ?", id); err != nil {
		return nil, translate(err)
	}
	return prior, nil
}

func (r *Repository[T]) byID(ctx context.Context, id int64) (*T, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+r.selects+" FROM `"+r.table.Name+"` WHERE `id` = ?", id)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, translate(err)
		}
		return nil, nil
	}
	ent, err := r.scan(rows)
	if err != nil {
		return nil, translate(err)
	}
	return ent, nil
}

func (r *Repository[T]) where(f *query.Filter, overrides map[string]query.Predicate) (string, []any, error) {
	if f == nil {
		f = query.NewFilter()
	}
	if len(overrides) > 0 {
		if err := f.Overload(overrides); err != nil {
			return "", nil, err
		}
	}
	conds, _, err := r.resolver.Resolve(f)
	if err != nil {
		return "", nil, err
	}
	if len(conds) == 0 {
		return "", nil, nil
	}
	var (
		exprs []string
		args  []any
	)
	for _, c := range conds {
		exprs = append(exprs, c.Expr)
		args = append(args, c.Args...)
	}
	return " WHERE " + strings.Join(exprs, " AND "), args, nil
}
