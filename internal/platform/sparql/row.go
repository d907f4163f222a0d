// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sparql

// Row is one binding set of a SELECT result, flattened to variable → value.
//
// Keys keep the order of the response's head.vars. Unbound variables are absent,
// which is how OPTIONAL clauses without a match show up.
type Row struct {
	keys   []string
	values map[string]string
}

// NewRow builds a row from alternating name/value pairs.
//
// It exists for fakes and tests; a trailing name without a value is ignored.
func NewRow(pairs ...string) Row {
	row := Row{values: make(map[string]string, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		row.set(pairs[i], pairs[i+1])
	}
	return row
}

// Get returns the value bound to name and whether it was bound.
func (r Row) Get(name string) (string, bool) {
	value, ok := r.values[name]
	return value, ok
}

// Value returns the value bound to name, or "" when unbound.
func (r Row) Value(name string) string {
	return r.values[name]
}

// Keys returns the bound variable names in response order.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len reports the number of bound variables.
func (r Row) Len() int {
	return len(r.keys)
}

func (r *Row) set(name, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, exists := r.values[name]; !exists {
		r.keys = append(r.keys, name)
	}
	r.values[name] = value
}
