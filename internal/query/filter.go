package query

import (
	"fmt"
	"sort"
)

// Field declares one filterable field of a Def: its name, expected
// value kind, and the comparator used when a plain value is supplied.
type Field struct {
	Name    string
	Kind    Kind
	Default Comparator
}

// F builds a field declaration. The default comparator is EQ unless
// overridden with Default.
func F(name string, kind Kind, opts ...func(*Field)) Field {
	f := Field{Name: name, Kind: kind, Default: CmpEq}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Default sets the field's default comparator.
func Default(cmp Comparator) func(*Field) {
	return func(f *Field) { f.Default = cmp }
}

// Def is a filter schema: the declared field set of one filter type.
// Defs are built once at startup and shared; they carry no request
// state.
type Def struct {
	name   string
	fields []Field
}

// NewDef declares a filter schema.
func NewDef(name string, fields ...Field) *Def {
	return &Def{name: name, fields: fields}
}

// Field looks up a declared field by name.
func (d *Def) Field(name string) (Field, bool) {
	for _, f := range d.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Pair is one field/predicate entry of a built filter.
type Pair struct {
	Field string
	Pred  Predicate
}

// Filter is a request-scoped bundle of predicates. Built from a Def it
// holds exactly one predicate per declared field (value possibly nil);
// built bare it starts empty and grows through Overload.
type Filter struct {
	def   *Def
	order []string
	preds map[string]Predicate
}

// NewFilter returns an empty, schema-less filter. Fields added through
// Overload are accepted without type checking, matching the behavior
// of overloading undeclared fields on a schema filter.
func NewFilter() *Filter {
	return &Filter{preds: map[string]Predicate{}}
}

// Build constructs a filter from the schema: every declared field gets
// a predicate wrapping the supplied value (nil when absent) with the
// field's default comparator. Values are checked against the declared
// kind.
func (d *Def) Build(values map[string]any) (*Filter, error) {
	f := &Filter{def: d, preds: make(map[string]Predicate, len(d.fields))}
	for _, fd := range d.fields {
		v, supplied := values[fd.Name]
		if v != nil && !kindAccepts(fd.Kind, v) {
			return nil, fmt.Errorf("%w: filter %q field %q must be %s, got %T",
				ErrValidation, d.name, fd.Name, fd.Kind, v)
		}
		p, err := New(fd.Default, v)
		if err != nil {
			return nil, fmt.Errorf("%w: filter %q field %q: %v", ErrValidation, d.name, fd.Name, err)
		}
		p.unset = !supplied || v == nil
		f.order = append(f.order, fd.Name)
		f.preds[fd.Name] = p
	}
	return f, nil
}

// Overload replaces per-field predicates. Declared fields validate the
// new operand against their declared kind; a mismatch fails without
// touching the existing predicate. Undeclared fields are added as-is,
// appended after the declared order.
func (f *Filter) Overload(overrides map[string]Predicate) error {
	// Validate everything before touching the filter: a failed overload
	// must leave it unchanged.
	for field, p := range overrides {
		if p.err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrValidation, field, p.err)
		}
		if f.def != nil {
			if fd, ok := f.def.Field(field); ok {
				if p.value != nil && !kindAccepts(fd.Kind, p.value) {
					return fmt.Errorf("%w: field %q must be %s, got %T",
						ErrValidation, field, fd.Kind, p.value)
				}
			}
		}
	}
	// Apply in sorted key order: map iteration would make the appended
	// field order, and with it the generated query text, vary between
	// identical calls.
	fields := make([]string, 0, len(overrides))
	for field := range overrides {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if _, ok := f.preds[field]; !ok {
			f.order = append(f.order, field)
		}
		f.preds[field] = overrides[field]
	}
	return nil
}

// Pairs returns the field/predicate entries in declaration order, then
// overload-insertion order for undeclared fields. The order carries no
// meaning downstream but keeps generated query text deterministic.
func (f *Filter) Pairs() []Pair {
	pairs := make([]Pair, 0, len(f.order))
	for _, name := range f.order {
		pairs = append(pairs, Pair{Field: name, Pred: f.preds[name]})
	}
	return pairs
}

// Len returns the number of fields currently present.
func (f *Filter) Len() int { return len(f.order) }
