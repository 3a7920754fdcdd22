package dataset

// FieldKind is the inferred statistical kind of a field, resolved once per
// column before any strategy dispatch.
type FieldKind string

const (
	// KindNumeric means every cell in the column is a number
	KindNumeric FieldKind = "numeric"
	// KindCategorical means every cell in the column is a string
	KindCategorical FieldKind = "categorical"
	// KindEmpty means the column has no cells. Empty columns are excluded
	// from statistical comparison rather than vacuously treated as numeric.
	KindEmpty FieldKind = "empty"
	// KindUnclassifiable means the column mixes numbers and strings
	KindUnclassifiable FieldKind = "unclassifiable"
)

// Comparable reports whether a field of this kind can be statistically compared
func (k FieldKind) Comparable() bool {
	return k == KindNumeric || k == KindCategorical
}

// Classify infers the kind of a column in a single pass
func Classify(col Column) FieldKind {
	if len(col) == 0 {
		return KindEmpty
	}

	numeric, categorical := true, true
	for _, v := range col {
		if v.IsNumeric() {
			categorical = false
		} else {
			numeric = false
		}
		if !numeric && !categorical {
			return KindUnclassifiable
		}
	}
	if numeric {
		return KindNumeric
	}
	return KindCategorical
}

// FieldDescriptor captures a field's identity, inferred kind and membership
// across the two datasets of an analysis.
type FieldDescriptor struct {
	Name        string    `json:"name"`
	Kind        FieldKind `json:"kind"`
	InReference bool      `json:"in_reference"`
	InCandidate bool      `json:"in_candidate"`
}

// Describe builds descriptors for the union of fields across the reference
// and candidate datasets: reference fields first in native order, then
// candidate-only fields in native order. Kind is inferred from the reference
// column when present, otherwise from the candidate column.
func Describe(reference, candidate *Dataset) []FieldDescriptor {
	var out []FieldDescriptor

	for _, field := range reference.Fields() {
		col, _ := reference.Column(field)
		out = append(out, FieldDescriptor{
			Name:        field,
			Kind:        Classify(col),
			InReference: true,
			InCandidate: candidate.HasField(field),
		})
	}
	for _, field := range candidate.Fields() {
		if reference.HasField(field) {
			continue
		}
		col, _ := candidate.Column(field)
		out = append(out, FieldDescriptor{
			Name:        field,
			Kind:        Classify(col),
			InReference: false,
			InCandidate: true,
		})
	}
	return out
}
