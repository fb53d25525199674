package query

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Comparator identifies one supported comparison.
type Comparator string

const (
	CmpEq         Comparator = "eq"
	CmpNeq        Comparator = "neq"
	CmpGt         Comparator = "gt"
	CmpLt         Comparator = "lt"
	CmpGte        Comparator = "gte"
	CmpLte        Comparator = "lte"
	CmpLike       Comparator = "like"
	CmpNotLike    Comparator = "not_like"
	CmpStartsWith Comparator = "starts_with"
	CmpEndsWith   Comparator = "ends_with"
	CmpContains   Comparator = "contains"
	CmpIn         Comparator = "in"
	CmpBetween    Comparator = "between"
	CmpLenGt      Comparator = "len_gt"
	CmpLenLt      Comparator = "len_lt"
	CmpLenGte     Comparator = "len_gte"
	CmpLenLte     Comparator = "len_lte"
	CmpLenEq      Comparator = "len_eq"
)

var (
	// ErrTypeMismatch reports an operand outside the comparator's or
	// column's accepted domain.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnsupportedOperator reports a comparator the target column
	// cannot support.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrOperator wraps any other failure while lowering a predicate.
	ErrOperator = errors.New("operator error")

	// ErrValidation reports a bad filter construction or overload.
	ErrValidation = errors.New("validation error")
)

// Predicate is one immutable comparison awaiting resolution against a
// column. The zero value is an EQ against nil.
type Predicate struct {
	cmp   Comparator
	value any
	err   error

	// unset marks a schema placeholder: the field was declared but the
	// caller supplied no value. Resolution skips unset predicates. An
	// explicit nil operand stays set and lowers to IS NULL.
	unset bool
}

// New builds a predicate, checking the operand against the
// comparator's accepted domain. Nil operands skip the check, as do
// sequence operands for IN and BETWEEN (their elements are checked at
// lowering time by the store).
func New(cmp Comparator, value any) (Predicate, error) {
	if err := checkDomain(cmp, value); err != nil {
		return Predicate{}, err
	}
	return Predicate{cmp: cmp, value: value}, nil
}

func newPredicate(cmp Comparator, value any) Predicate {
	p, err := New(cmp, value)
	if err != nil {
		return Predicate{cmp: cmp, value: value, err: err}
	}
	return p
}

// Comparator convenience constructors. A domain violation is carried
// inside the predicate and surfaces on first use.
func Eq(v any) Predicate         { return newPredicate(CmpEq, v) }
func Neq(v any) Predicate        { return newPredicate(CmpNeq, v) }
func Gt(v any) Predicate         { return newPredicate(CmpGt, v) }
func Lt(v any) Predicate         { return newPredicate(CmpLt, v) }
func Gte(v any) Predicate        { return newPredicate(CmpGte, v) }
func Lte(v any) Predicate        { return newPredicate(CmpLte, v) }
func Like(v any) Predicate       { return newPredicate(CmpLike, v) }
func NotLike(v any) Predicate    { return newPredicate(CmpNotLike, v) }
func StartsWith(v any) Predicate { return newPredicate(CmpStartsWith, v) }
func EndsWith(v any) Predicate   { return newPredicate(CmpEndsWith, v) }
func Contains(v any) Predicate   { return newPredicate(CmpContains, v) }
func In(v any) Predicate         { return newPredicate(CmpIn, v) }
func Between(v any) Predicate    { return newPredicate(CmpBetween, v) }
func LenGt(v any) Predicate      { return newPredicate(CmpLenGt, v) }
func LenLt(v any) Predicate      { return newPredicate(CmpLenLt, v) }
func LenGte(v any) Predicate     { return newPredicate(CmpLenGte, v) }
func LenLte(v any) Predicate     { return newPredicate(CmpLenLte, v) }
func LenEq(v any) Predicate      { return newPredicate(CmpLenEq, v) }

// Comparator returns the predicate's comparator.
func (p Predicate) Comparator() Comparator { return p.cmp }

// Value returns the predicate's operand.
func (p Predicate) Value() any { return p.value }

// Err returns the construction error, if any.
func (p Predicate) Err() error { return p.err }

// Unset reports whether the predicate is a schema placeholder with no
// caller-supplied value.
func (p Predicate) Unset() bool { return p.unset }

// Condition is a lowered predicate: an SQL fragment plus its
// placeholder arguments. Transient, consumed within one query build.
type Condition struct {
	Expr string
	Args []any
}

// Lower resolves the predicate against a concrete column, producing
// the SQL condition. It re-checks the operand type against the column
// kind (skipped for nil and sequence operands).
func (p Predicate) Lower(col Column) (Condition, error) {
	if p.err != nil {
		return Condition{}, p.err
	}
	if err := checkColumn(p, col); err != nil {
		return Condition{}, err
	}
	return lower(p, col)
}

func checkDomain(cmp Comparator, v any) error {
	if v == nil {
		return nil
	}
	switch cmp {
	case CmpEq, CmpNeq:
		return nil
	case CmpGt, CmpLt, CmpGte, CmpLte:
		if !isOrderable(v) {
			return fmt.Errorf("%w: comparator %q requires an orderable scalar, got %T", ErrTypeMismatch, cmp, v)
		}
	case CmpLike, CmpNotLike, CmpStartsWith, CmpEndsWith, CmpContains:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%w: comparator %q requires a string, got %T", ErrTypeMismatch, cmp, v)
		}
	case CmpIn, CmpBetween:
		if !isSequence(v) {
			return fmt.Errorf("%w: comparator %q requires a sequence, got %T", ErrTypeMismatch, cmp, v)
		}
	case CmpLenGt, CmpLenLt, CmpLenGte, CmpLenLte, CmpLenEq:
		if !isInteger(v) {
			return fmt.Errorf("%w: comparator %q requires an integer length, got %T", ErrTypeMismatch, cmp, v)
		}
	default:
		return fmt.Errorf("%w: unknown comparator %q", ErrUnsupportedOperator, cmp)
	}
	return nil
}

// checkColumn mirrors the construction-time check against the column's
// declared kind. Sequence operands are left to the store; length and
// pattern comparators are resolved in lower, which decides whether the
// column supports them at all.
func checkColumn(p Predicate, col Column) error {
	switch p.cmp {
	case CmpIn, CmpBetween,
		CmpLike, CmpNotLike, CmpStartsWith, CmpEndsWith, CmpContains,
		CmpLenGt, CmpLenLt, CmpLenGte, CmpLenLte, CmpLenEq:
		return nil
	}
	if p.value == nil {
		return nil
	}
	if !kindAccepts(col.Kind, p.value) {
		return fmt.Errorf("%w: column %q is %s, not %T", ErrTypeMismatch, col.Name, col.Kind, p.value)
	}
	return nil
}

func lower(p Predicate, col Column) (Condition, error) {
	c := quote(col.Name)
	switch p.cmp {
	case CmpEq:
		if p.value == nil {
			return Condition{Expr: c + " IS NULL"}, nil
		}
		return Condition{Expr: c + " = ?", Args: []any{p.value}}, nil
	case CmpNeq:
		if p.value == nil {
			return Condition{Expr: c + " IS NOT NULL"}, nil
		}
		return Condition{Expr: c + " <> ?", Args: []any{p.value}}, nil
	case CmpGt, CmpLt, CmpGte, CmpLte:
		if p.value == nil {
			return Condition{}, fmt.Errorf("%w: comparator %q needs a value for column %q", ErrOperator, p.cmp, col.Name)
		}
		return Condition{Expr: c + " " + sqlOp(p.cmp) + " ?", Args: []any{p.value}}, nil
	case CmpLike, CmpNotLike, CmpStartsWith, CmpEndsWith, CmpContains:
		if col.Kind != KindString {
			return Condition{}, fmt.Errorf("%w: column %q does not support %q", ErrUnsupportedOperator, col.Name, p.cmp)
		}
		s, ok := p.value.(string)
		if !ok {
			return Condition{}, fmt.Errorf("%w: comparator %q needs a string value for column %q", ErrOperator, p.cmp, col.Name)
		}
		expr := c + " LIKE ?"
		switch p.cmp {
		case CmpNotLike:
			expr = c + " NOT LIKE ?"
		case CmpStartsWith:
			s = s + "%"
		case CmpEndsWith:
			s = "%" + s
		case CmpContains:
			s = "%" + s + "%"
		}
		return Condition{Expr: expr, Args: []any{s}}, nil
	case CmpIn:
		items, err := sequenceItems(p.value)
		if err != nil {
			return Condition{}, fmt.Errorf("%w: IN on column %q: %v", ErrOperator, col.Name, err)
		}
		if len(items) == 0 {
			// IN over an empty set matches nothing.
			return Condition{Expr: "1 = 0"}, nil
		}
		return Condition{
			Expr: c + " IN (" + placeholders(len(items)) + ")",
			Args: items,
		}, nil
	case CmpBetween:
		items, err := sequenceItems(p.value)
		if err != nil || len(items) != 2 {
			return Condition{}, fmt.Errorf("%w: BETWEEN on column %q requires a pair", ErrOperator, col.Name)
		}
		return Condition{Expr: c + " BETWEEN ? AND ?", Args: items}, nil
	case CmpLenGt, CmpLenLt, CmpLenGte, CmpLenLte, CmpLenEq:
		if col.Kind != KindString {
			return Condition{}, fmt.Errorf("%w: length comparator %q on non-sized column %q", ErrUnsupportedOperator, p.cmp, col.Name)
		}
		if p.value == nil {
			return Condition{}, fmt.Errorf("%w: comparator %q needs a value for column %q", ErrOperator, p.cmp, col.Name)
		}
		return Condition{
			Expr: "LENGTH(" + c + ") " + sqlOp(p.cmp) + " ?",
			Args: []any{p.value},
		}, nil
	}
	return Condition{}, fmt.Errorf("%w: comparator %q", ErrUnsupportedOperator, p.cmp)
}

func sqlOp(cmp Comparator) string {
	switch cmp {
	case CmpGt, CmpLenGt:
		return ">"
	case CmpLt, CmpLenLt:
		return "<"
	case CmpGte, CmpLenGte:
		return ">="
	case CmpLte, CmpLenLte:
		return "<="
	case CmpLenEq:
		return "="
	}
	return ""
}

func quote(name string) string {
	return "`" + name + "`"
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func isOrderable(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64, string, time.Time:
		return true
	}
	return false
}

func isInteger(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func isSequence(v any) bool {
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func sequenceItems(v any) ([]any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("value %T is not a sequence", v)
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, nil
}

func kindAccepts(k Kind, v any) bool {
	switch k {
	case KindInt:
		return isInteger(v)
	case KindFloat:
		switch v.(type) {
		case float32, float64:
			return true
		}
		return isInteger(v)
	case KindString:
		_, ok := v.(string)
		return ok
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindTime:
		_, ok := v.(time.Time)
		return ok
	}
	return false
}
