package drift

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestStatus(t *testing.T) {
	if !StatusMissing.Drift() || !StatusAdditional.Drift() {
		t.Error("missing and additional statuses are drift conditions")
	}
	if StatusCompared.Drift() || StatusUnclassifiable.Drift() {
		t.Error("compared and unclassifiable statuses are not drift conditions")
	}

	if got := StatusMissing.Detail(); got != "Missing in candidate data" {
		t.Errorf("missing detail = %q", got)
	}
	if got := StatusAdditional.Detail(); got != "Additional in candidate data" {
		t.Errorf("additional detail = %q", got)
	}
	if StatusCompared.Detail() != "" {
		t.Error("compared rows carry no detail text")
	}
}

func TestTable_Fingerprint(t *testing.T) {
	p := 0.01
	table := Table{Rows: []Result{
		{Field: "size", Probability: 99.0, PValue: &p},
		{Field: "legacy", Probability: 99.999, ExtraStatus: true, Details: "Missing in candidate data"},
	}}

	if table.Fingerprint() != table.Fingerprint() {
		t.Fatal("fingerprint must be stable for identical content")
	}

	reordered := Table{Rows: []Result{table.Rows[1], table.Rows[0]}}
	if table.Fingerprint() == reordered.Fingerprint() {
		t.Error("fingerprint must reflect row order")
	}

	changed := Table{Rows: []Result{
		{Field: "size", Probability: 98.0, PValue: &p},
		table.Rows[1],
	}}
	if table.Fingerprint() == changed.Fingerprint() {
		t.Error("fingerprint must reflect row content")
	}
}

func TestResult_JSON(t *testing.T) {
	drifted := Result{Field: "legacy", Probability: 99.999, ExtraStatus: true, Details: "Missing in candidate data"}
	raw, err := json.Marshal(drifted)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"field":"legacy"`, `"probability":99.999`, `"extra_status":true`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("marshaled row missing %s: %s", want, raw)
		}
	}
	if strings.Contains(string(raw), "p_value") {
		t.Error("drift rows must omit p_value")
	}

	p := 0.02
	compared := Result{Field: "size", Probability: 98.0, PValue: &p}
	raw, err = json.Marshal(compared)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"p_value":0.02`) {
		t.Errorf("compared rows must carry p_value: %s", raw)
	}
	if strings.Contains(string(raw), "details") {
		t.Error("compared rows must omit details")
	}
}
