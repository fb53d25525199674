// Package query implements the typed filter engine shared by every
// repository: predicates over named fields, declarative filter
// schemas, and a resolver that lowers them into SQL conditions.
package query

// Kind describes the Go-side value domain of a table column.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	}
	return "unknown"
}

// Column is one addressable column of a table.
type Column struct {
	Name string
	Kind Kind
}

// Table describes a storage entity: its table name and the ordered
// column set filters can be resolved against.
type Table struct {
	Name    string
	Columns []Column
}

// Column returns the column with the given name, if declared.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the declared column names in order. Repositories
// use it to build deterministic SELECT lists.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// RowScanner is the subset of sql.Row / sql.Rows needed to hydrate an
// entity from a result set.
type RowScanner interface {
	Scan(dest ...any) error
}
