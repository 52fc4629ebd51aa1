package dataset

import (
	"reflect"
	"testing"
)

func testRawDataset() *Dataset {
	return &Dataset{
		rows: 5,
		Columns: []*Column{
			{Name: "MonthlyIncome", Kind: Continuous, Float: []float64{5993, 5130, 2090, 2909, 3468}},
			{Name: "OverTime", Kind: Nominal, Raw: []string{"Yes", "No", "Yes", "Yes", "No"}},
			{Name: "JobLevel", Kind: Ordinal, Raw: []string{"2", "10", "1", "1", "2"}},
		},
		Label: &Label{Name: "Attrition", Raw: []string{"Yes", "No", "Yes", "No", "No"}},
	}
}

func TestEncode(t *testing.T) {
	raw := testRawDataset()
	enc, err := Encode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ot := enc.Column("OverTime")
	if !ot.Encoded() {
		t.Fatalf("expected OverTime to be encoded")
	}
	if !reflect.DeepEqual(ot.Levels, []string{"No", "Yes"}) {
		t.Fatalf("unexpected OverTime levels: %v", ot.Levels)
	}
	if !reflect.DeepEqual(ot.Codes, []int{1, 0, 1, 1, 0}) {
		t.Fatalf("unexpected OverTime codes: %v", ot.Codes)
	}

	// Ordinal levels sort numerically, so 10 comes after 2.
	jl := enc.Column("JobLevel")
	if !reflect.DeepEqual(jl.Levels, []string{"1", "2", "10"}) {
		t.Fatalf("unexpected JobLevel levels: %v", jl.Levels)
	}

	if !enc.Label.Encoded() {
		t.Fatalf("expected encoded label")
	}
	if enc.Label.Levels[0] != "Yes" {
		t.Fatalf("positive class must come first, got %v", enc.Label.Levels)
	}
	if !reflect.DeepEqual(enc.Label.Codes, []int{1, 0, 1, 0, 0}) {
		t.Fatalf("unexpected label codes: %v", enc.Label.Codes)
	}

	// Continuous columns pass through untouched.
	if enc.Column("MonthlyIncome") != raw.Column("MonthlyIncome") {
		t.Fatalf("continuous column must be shared, not copied")
	}
}

func TestEncodeIdempotent(t *testing.T) {
	once, err := Encode(testRawDataset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := Encode(once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(once.Label, twice.Label) {
		t.Fatalf("label changed on re-encode")
	}
	for i := range once.Columns {
		if !reflect.DeepEqual(once.Columns[i], twice.Columns[i]) {
			t.Fatalf("column %s changed on re-encode", once.Columns[i].Name)
		}
	}
}

func TestEncodeRejectsUnknownLabel(t *testing.T) {
	ds := testRawDataset()
	ds.Label.Raw[2] = "Maybe"
	if _, err := Encode(ds); err == nil {
		t.Fatalf("expected error for label outside {Yes,No}")
	}
}

func TestEncodePositiveShare(t *testing.T) {
	enc, err := Encode(testRawDataset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := enc.PositiveShare(); got != 0.4 {
		t.Fatalf("expected positive share 0.4, got %v", got)
	}
}
