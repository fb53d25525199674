package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var usersTable = &Table{
	Name: "users",
	Columns: []Column{
		{Name: "id", Kind: KindInt},
		{Name: "nickname", Kind: KindString},
		{Name: "email", Kind: KindString},
		{Name: "is_active", Kind: KindBool},
	},
}

func TestResolveFullMatch(t *testing.T) {
	f, err := testDef().Build(map[string]any{
		"nickname":  "al",
		"email":     "a@b.c",
		"is_active": true,
	})
	require.NoError(t, err)

	conds, skipped, err := NewResolver(usersTable).Resolve(f)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, conds, 3)
	assert.Equal(t, "`nickname` LIKE ?", conds[0].Expr)
	assert.Equal(t, []any{"%al%"}, conds[0].Args)
	assert.Equal(t, "`email` = ?", conds[1].Expr)
	assert.Equal(t, "`is_active` = ?", conds[2].Expr)
}

func TestResolveSkipsUnsetFields(t *testing.T) {
	f, err := testDef().Build(map[string]any{"email": "a@b.c"})
	require.NoError(t, err)

	conds, skipped, err := NewResolver(usersTable).Resolve(f)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, conds, 1)
	assert.Equal(t, "`email` = ?", conds[0].Expr)
}

func TestResolveSkipsUnknownFieldsAndReportsThem(t *testing.T) {
	f := NewFilter()
	require.NoError(t, f.Overload(map[string]Predicate{
		"email": Eq("a@b.c"),
		"ghost": Eq(1),
	}))

	conds, skipped, err := NewResolver(usersTable).Resolve(f)
	require.NoError(t, err)
	assert.Equal(t, []string{"ghost"}, skipped)
	require.Len(t, conds, 1)
	assert.Equal(t, "`email` = ?", conds[0].Expr)
}

func TestResolveSurfacesLoweringErrors(t *testing.T) {
	f := NewFilter()
	require.NoError(t, f.Overload(map[string]Predicate{
		"is_active": LenGt(3), // length comparator on a bool column
	}))

	_, _, err := NewResolver(usersTable).Resolve(f)
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestResolveNilFilter(t *testing.T) {
	conds, skipped, err := NewResolver(usersTable).Resolve(nil)
	require.NoError(t, err)
	assert.Nil(t, conds)
	assert.Nil(t, skipped)
}
