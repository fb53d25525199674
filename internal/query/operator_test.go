package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPredicateDomains(t *testing.T) {
	tests := []struct {
		name    string
		cmp     Comparator
		value   any
		wantErr error
	}{
		{"eq accepts anything", CmpEq, true, nil},
		{"neq accepts anything", CmpNeq, []int{1}, nil},
		{"gt accepts int", CmpGt, 5, nil},
		{"gt accepts string", CmpGt, "m", nil},
		{"gt accepts time", CmpGte, time.Now(), nil},
		{"gt rejects bool", CmpGt, true, ErrTypeMismatch},
		{"lt rejects slice", CmpLt, []int{1}, ErrTypeMismatch},
		{"like accepts string", CmpLike, "abc%", nil},
		{"like rejects int", CmpLike, 5, ErrTypeMismatch},
		{"contains rejects bool", CmpContains, false, ErrTypeMismatch},
		{"in accepts slice", CmpIn, []int64{1, 2, 3}, nil},
		{"in rejects scalar", CmpIn, 3, ErrTypeMismatch},
		{"between accepts pair", CmpBetween, []int{1, 10}, nil},
		{"between rejects scalar", CmpBetween, 10, ErrTypeMismatch},
		{"len_gt accepts int", CmpLenGt, 3, nil},
		{"len_gt rejects string", CmpLenGt, "abc", ErrTypeMismatch},
		{"nil skips the check", CmpGt, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cmp, tt.value)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSugarConstructorCarriesError(t *testing.T) {
	p := Gt(true)
	require.Error(t, p.Err())
	assert.ErrorIs(t, p.Err(), ErrTypeMismatch)

	_, err := p.Lower(Column{Name: "age", Kind: KindInt})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestLowerSQL(t *testing.T) {
	name := Column{Name: "name", Kind: KindString}
	age := Column{Name: "age", Kind: KindInt}

	tests := []struct {
		name     string
		pred     Predicate
		col      Column
		wantExpr string
		wantArgs []any
	}{
		{"eq", Eq("alice"), name, "`name` = ?", []any{"alice"}},
		{"eq nil is IS NULL", Eq(nil), name, "`name` IS NULL", nil},
		{"neq nil is IS NOT NULL", Neq(nil), name, "`name` IS NOT NULL", nil},
		{"gt", Gt(18), age, "`age` > ?", []any{18}},
		{"lte", Lte(65), age, "`age` <= ?", []any{65}},
		{"like", Like("a%"), name, "`name` LIKE ?", []any{"a%"}},
		{"not like", NotLike("a%"), name, "`name` NOT LIKE ?", []any{"a%"}},
		{"starts_with", StartsWith("al"), name, "`name` LIKE ?", []any{"al%"}},
		{"ends_with", EndsWith("ce"), name, "`name` LIKE ?", []any{"%ce"}},
		{"contains", Contains("li"), name, "`name` LIKE ?", []any{"%li%"}},
		{"in", In([]int{1, 2, 3}), age, "`age` IN (?, ?, ?)", []any{1, 2, 3}},
		{"empty in matches nothing", In([]int{}), age, "1 = 0", nil},
		{"between", Between([]int{18, 65}), age, "`age` BETWEEN ? AND ?", []any{18, 65}},
		{"len_gt", LenGt(3), name, "LENGTH(`name`) > ?", []any{3}},
		{"len_eq", LenEq(3), name, "LENGTH(`name`) = ?", []any{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := tt.pred.Lower(tt.col)
			require.NoError(t, err)
			assert.Equal(t, tt.wantExpr, cond.Expr)
			assert.Equal(t, tt.wantArgs, cond.Args)
		})
	}
}

func TestLowerFailures(t *testing.T) {
	name := Column{Name: "name", Kind: KindString}
	age := Column{Name: "age", Kind: KindInt}

	t.Run("length comparator on non-sized column", func(t *testing.T) {
		_, err := LenGt(3).Lower(age)
		assert.ErrorIs(t, err, ErrUnsupportedOperator)
	})
	t.Run("like on non-string column", func(t *testing.T) {
		for _, p := range []Predicate{Like("a"), NotLike("a"), StartsWith("a"), EndsWith("a"), Contains("a")} {
			_, err := p.Lower(age)
			assert.ErrorIs(t, err, ErrUnsupportedOperator)
		}
	})
	t.Run("column kind mismatch", func(t *testing.T) {
		_, err := Eq("not a number").Lower(age)
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})
	t.Run("between with a non-pair", func(t *testing.T) {
		_, err := Between([]int{1, 2, 3}).Lower(age)
		assert.ErrorIs(t, err, ErrOperator)
	})
	t.Run("ordering comparator with nil value", func(t *testing.T) {
		_, err := Gt(nil).Lower(name)
		assert.ErrorIs(t, err, ErrOperator)
	})
}
