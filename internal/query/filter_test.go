package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDef() *Def {
	return NewDef("users",
		F("nickname", KindString, Default(CmpContains)),
		F("email", KindString),
		F("is_active", KindBool),
	)
}

func TestBuildPopulatesEveryField(t *testing.T) {
	f, err := testDef().Build(map[string]any{"email": "a@b.c"})
	require.NoError(t, err)

	pairs := f.Pairs()
	require.Len(t, pairs, 3)
	assert.Equal(t, "nickname", pairs[0].Field)
	assert.Equal(t, "email", pairs[1].Field)
	assert.Equal(t, "is_active", pairs[2].Field)

	// Default comparators: declared one for nickname, EQ elsewhere.
	assert.Equal(t, CmpContains, pairs[0].Pred.Comparator())
	assert.Nil(t, pairs[0].Pred.Value())
	assert.True(t, pairs[0].Pred.Unset())
	assert.Equal(t, CmpEq, pairs[1].Pred.Comparator())
	assert.Equal(t, "a@b.c", pairs[1].Pred.Value())
	assert.False(t, pairs[1].Pred.Unset())
}

func TestBuildRejectsWrongKind(t *testing.T) {
	_, err := testDef().Build(map[string]any{"email": 42})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOverloadDeclaredField(t *testing.T) {
	f, err := testDef().Build(nil)
	require.NoError(t, err)

	require.NoError(t, f.Overload(map[string]Predicate{"email": StartsWith("admin")}))
	pairs := f.Pairs()
	assert.Equal(t, CmpStartsWith, pairs[1].Pred.Comparator())
	assert.Equal(t, 3, f.Len())
}

func TestOverloadUndeclaredFieldAppends(t *testing.T) {
	f, err := testDef().Build(nil)
	require.NoError(t, err)

	require.NoError(t, f.Overload(map[string]Predicate{"created_at": Gt("2024-01-01")}))
	pairs := f.Pairs()
	require.Len(t, pairs, 4)
	assert.Equal(t, "created_at", pairs[3].Field)
}

func TestOverloadFailureLeavesFilterUntouched(t *testing.T) {
	f, err := testDef().Build(map[string]any{"email": "a@b.c"})
	require.NoError(t, err)

	err = f.Overload(map[string]Predicate{
		"nickname": Contains("al"),
		"email":    Eq(42), // declared as string
	})
	require.ErrorIs(t, err, ErrValidation)

	pairs := f.Pairs()
	assert.Equal(t, CmpContains, pairs[0].Pred.Comparator())
	assert.Nil(t, pairs[0].Pred.Value())
	assert.Equal(t, "a@b.c", pairs[1].Pred.Value())
}

func TestOverloadCarriedConstructionError(t *testing.T) {
	f := NewFilter()
	err := f.Overload(map[string]Predicate{"age": Gt(true)})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, f.Len())
}

func TestOverloadOrderIsDeterministic(t *testing.T) {
	overrides := map[string]Predicate{
		"event_id":    Eq(int64(1)),
		"is_reserved": Eq(false),
	}
	for i := 0; i < 100; i++ {
		f := NewFilter()
		require.NoError(t, f.Overload(overrides))
		pairs := f.Pairs()
		require.Len(t, pairs, 2)
		assert.Equal(t, "event_id", pairs[0].Field)
		assert.Equal(t, "is_reserved", pairs[1].Field)
	}
}

func TestBareFilterSkipsTypeChecks(t *testing.T) {
	f := NewFilter()
	require.NoError(t, f.Overload(map[string]Predicate{"anything": Eq(42)}))
	assert.Equal(t, 1, f.Len())
}
