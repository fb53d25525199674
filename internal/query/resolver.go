package query

import (
	"github.com/rs/zerolog/log"
)

// Resolver binds filters to one table schema, turning field names into
// concrete column conditions.
type Resolver struct {
	table *Table
}

// NewResolver creates a resolver bound to the given table.
func NewResolver(table *Table) *Resolver {
	return &Resolver{table: table}
}

// Resolve lowers the filter's predicates against the bound table.
// Unset schema placeholders contribute no condition. Fields with no
// matching column are skipped, not failed:
// callers may reuse one filter across several entities. Every skipped
// field is returned and logged so the dropped condition stays
// observable.
func (r *Resolver) Resolve(f *Filter) ([]Condition, []string, error) {
	if f == nil {
		return nil, nil, nil
	}
	var (
		conds   []Condition
		skipped []string
	)
	for _, pair := range f.Pairs() {
		if pair.Pred.Unset() {
			continue
		}
		col, ok := r.table.Column(pair.Field)
		if !ok {
			skipped = append(skipped, pair.Field)
			log.Warn().
				Str("table", r.table.Name).
				Str("field", pair.Field).
				Msg("filter field has no matching column, condition dropped")
			continue
		}
		cond, err := pair.Pred.Lower(col)
		if err != nil {
			return nil, skipped, err
		}
		conds = append(conds, cond)
	}
	return conds, skipped, nil
}
