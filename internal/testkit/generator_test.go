package testkit

import (
	"testing"
)

func TestGenerate_Deterministic(t *testing.T) {
	cfg := GeneratorConfig{SampleCount: 200, Seed: 42}

	first := NewProduceGenerator(cfg).Generate()
	second := NewProduceGenerator(cfg).Generate()

	for _, field := range []string{"size", "color", "weight"} {
		a, ok := first.Column(field)
		if !ok {
			t.Fatalf("missing column %s", field)
		}
		b, _ := second.Column(field)
		if len(a) != cfg.SampleCount {
			t.Fatalf("column %s has %d rows, want %d", field, len(a), cfg.SampleCount)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("column %s differs at row %d across same-seed runs", field, i)
			}
		}
	}
}

func TestGenerate_ValueRanges(t *testing.T) {
	ds := NewProduceGenerator(GeneratorConfig{SampleCount: 500, Seed: 1}).Generate()

	size, _ := ds.Column("size")
	floats, ok := size.Floats()
	if !ok {
		t.Fatal("size must be numeric")
	}
	for _, v := range floats {
		if v < 100 || v > 600 {
			t.Fatalf("size %v out of range [100, 600]", v)
		}
	}

	color, _ := ds.Column("color")
	labels, ok := color.Labels()
	if !ok {
		t.Fatal("color must be categorical")
	}
	seen := map[string]bool{}
	for _, l := range labels {
		switch l {
		case "green", "yellow", "red":
			seen[l] = true
		default:
			t.Fatalf("unexpected color %q", l)
		}
	}
	if !seen["green"] || !seen["yellow"] {
		t.Error("500 samples should cover the common colors")
	}
}

func TestCorrupt_OnlyTouchesColor(t *testing.T) {
	gen := NewProduceGenerator(GeneratorConfig{SampleCount: 100, Seed: 7})
	clean := gen.Generate()
	corrupted := gen.Corrupt(clean)

	for _, field := range []string{"size", "weight"} {
		a, _ := clean.Column(field)
		b, _ := corrupted.Column(field)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("column %s changed at row %d", field, i)
			}
		}
	}

	color, _ := corrupted.Column("color")
	labels, _ := color.Labels()
	for i := 0; i < len(labels); i += 4 {
		if labels[i] != "red" {
			t.Fatalf("row %d should be forced red, got %q", i, labels[i])
		}
	}

	// The original dataset must be untouched
	original, _ := clean.Column("color")
	origLabels, _ := original.Labels()
	allRed := true
	for i := 0; i < len(origLabels); i += 4 {
		if origLabels[i] != "red" {
			allRed = false
		}
	}
	if allRed {
		t.Error("Corrupt must copy, not mutate, the source dataset")
	}
}
