package dataset

import (
	"fmt"
	"sort"
)

// ValueKind discriminates the scalar types a cell can hold
type ValueKind int

const (
	ValueNumeric ValueKind = iota
	ValueString
)

// Value is a single scalar cell: either a number or a string.
// The zero value is the number 0.
type Value struct {
	kind ValueKind
	num  float64
	str  string
}

// Num creates a numeric value
func Num(v float64) Value {
	return Value{kind: ValueNumeric, num: v}
}

// Str creates a string value
func Str(v string) Value {
	return Value{kind: ValueString, str: v}
}

// Kind returns the value's scalar kind
func (v Value) Kind() ValueKind { return v.kind }

// IsNumeric reports whether the value holds a number
func (v Value) IsNumeric() bool { return v.kind == ValueNumeric }

// IsString reports whether the value holds a string
func (v Value) IsString() bool { return v.kind == ValueString }

// Float returns the numeric payload (0 for string values)
func (v Value) Float() float64 { return v.num }

// Label returns the string payload (empty for numeric values)
func (v Value) Label() string { return v.str }

func (v Value) String() string {
	if v.kind == ValueString {
		return v.str
	}
	return fmt.Sprintf("%g", v.num)
}

// Column is an ordered sequence of scalar values for one field
type Column []Value

// Floats extracts the numeric payload of every cell. The second return is
// false if any cell is not numeric.
func (c Column) Floats() ([]float64, bool) {
	out := make([]float64, len(c))
	for i, v := range c {
		if !v.IsNumeric() {
			return nil, false
		}
		out[i] = v.Float()
	}
	return out, true
}

// Labels extracts the string payload of every cell. The second return is
// false if any cell is not a string.
func (c Column) Labels() ([]string, bool) {
	out := make([]string, len(c))
	for i, v := range c {
		if !v.IsString() {
			return nil, false
		}
		out[i] = v.Label()
	}
	return out, true
}

// Dataset is a table of named columns. Column order is the discovery order
// and is preserved across all iteration.
type Dataset struct {
	fields  []string
	columns map[string]Column
}

// New creates an empty dataset
func New() *Dataset {
	return &Dataset{columns: make(map[string]Column)}
}

// FromColumns creates a dataset from named columns in the given field order.
// Fields not present in cols get an empty column.
func FromColumns(fields []string, cols map[string]Column) *Dataset {
	ds := New()
	for _, f := range fields {
		ds.SetColumn(f, cols[f])
	}
	return ds
}

// FromRecords creates a dataset from row-oriented records. Field order is the
// sorted union of record keys, so construction is deterministic regardless of
// map iteration order.
func FromRecords(records []map[string]Value) *Dataset {
	seen := make(map[string]bool)
	var fields []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				fields = append(fields, k)
			}
		}
	}
	sort.Strings(fields)

	ds := New()
	for _, f := range fields {
		col := make(Column, 0, len(records))
		for _, rec := range records {
			if v, ok := rec[f]; ok {
				col = append(col, v)
			}
		}
		ds.SetColumn(f, col)
	}
	return ds
}

// SetColumn adds or replaces a column, appending the field to the order on
// first insertion
func (ds *Dataset) SetColumn(field string, col Column) {
	if _, exists := ds.columns[field]; !exists {
		ds.fields = append(ds.fields, field)
	}
	ds.columns[field] = col
}

// Fields returns the field names in discovery order
func (ds *Dataset) Fields() []string {
	out := make([]string, len(ds.fields))
	copy(out, ds.fields)
	return out
}

// Column returns the named column and whether it exists
func (ds *Dataset) Column(field string) (Column, bool) {
	col, ok := ds.columns[field]
	return col, ok
}

// HasField reports whether the dataset contains the named field
func (ds *Dataset) HasField(field string) bool {
	_, ok := ds.columns[field]
	return ok
}

// FieldCount returns the number of columns
func (ds *Dataset) FieldCount() int {
	return len(ds.fields)
}

// RowCount returns the length of the longest column
func (ds *Dataset) RowCount() int {
	max := 0
	for _, col := range ds.columns {
		if len(col) > max {
			max = len(col)
		}
	}
	return max
}
