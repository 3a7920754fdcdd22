package dataset

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		col  Column
		want FieldKind
	}{
		{"all numeric", Column{Num(1), Num(2.5), Num(-3)}, KindNumeric},
		{"all strings", Column{Str("a"), Str("b")}, KindCategorical},
		{"mixed types", Column{Num(1), Str("a")}, KindUnclassifiable},
		{"mixed types string first", Column{Str("a"), Num(1)}, KindUnclassifiable},
		{"single number", Column{Num(0)}, KindNumeric},
		{"single string", Column{Str("")}, KindCategorical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.col); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Empty columns get an explicit kind instead of the vacuous all-numeric
// answer a predicate-based check would give.
func TestClassify_EmptyColumn(t *testing.T) {
	if got := Classify(Column{}); got != KindEmpty {
		t.Fatalf("Classify(empty) = %v, want %v", got, KindEmpty)
	}
	if KindEmpty.Comparable() {
		t.Fatal("empty columns must not be statistically comparable")
	}
}

func TestDescribe_Ordering(t *testing.T) {
	reference := New()
	reference.SetColumn("size", Column{Num(1)})
	reference.SetColumn("color", Column{Str("green")})
	reference.SetColumn("legacy", Column{Num(2)})

	candidate := New()
	candidate.SetColumn("color", Column{Str("red")})
	candidate.SetColumn("size", Column{Num(3)})
	candidate.SetColumn("extra", Column{Str("x")})

	descs := Describe(reference, candidate)

	wantOrder := []string{"size", "color", "legacy", "extra"}
	if len(descs) != len(wantOrder) {
		t.Fatalf("got %d descriptors, want %d", len(descs), len(wantOrder))
	}
	for i, want := range wantOrder {
		if descs[i].Name != want {
			t.Errorf("descriptor %d = %s, want %s", i, descs[i].Name, want)
		}
	}

	if !descs[2].InReference || descs[2].InCandidate {
		t.Error("legacy should be reference-only")
	}
	if descs[3].InReference || !descs[3].InCandidate {
		t.Error("extra should be candidate-only")
	}
}

func TestFromRecords_Deterministic(t *testing.T) {
	records := []map[string]Value{
		{"b": Num(1), "a": Str("x")},
		{"a": Str("y"), "b": Num(2)},
	}

	ds1 := FromRecords(records)
	ds2 := FromRecords(records)

	fields1 := ds1.Fields()
	fields2 := ds2.Fields()
	if len(fields1) != 2 || fields1[0] != "a" || fields1[1] != "b" {
		t.Fatalf("unexpected field order: %v", fields1)
	}
	for i := range fields1 {
		if fields1[i] != fields2[i] {
			t.Fatal("field order must be deterministic across constructions")
		}
	}
}

func TestColumn_Extraction(t *testing.T) {
	numeric := Column{Num(1), Num(2)}
	if _, ok := numeric.Labels(); ok {
		t.Error("Labels() should fail on a numeric column")
	}
	floats, ok := numeric.Floats()
	if !ok || len(floats) != 2 || floats[1] != 2 {
		t.Errorf("Floats() = %v, %v", floats, ok)
	}

	categorical := Column{Str("a"), Str("b")}
	if _, ok := categorical.Floats(); ok {
		t.Error("Floats() should fail on a categorical column")
	}
	labels, ok := categorical.Labels()
	if !ok || labels[0] != "a" {
		t.Errorf("Labels() = %v, %v", labels, ok)
	}
}
