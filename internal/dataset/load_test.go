package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFixture(t *testing.T) {
	ds, warnings, err := Load(filepath.Join("testdata", "attrition.csv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if ds.Len() != 6 {
		t.Fatalf("expected 6 rows, got %d", ds.Len())
	}
	if len(ds.Columns) != len(Schema) {
		t.Fatalf("expected %d columns, got %d", len(Schema), len(ds.Columns))
	}

	// The BOM-mangled first header must come back as Age.
	age := ds.Column("Age")
	if age == nil {
		t.Fatalf("expected Age column after header rename")
	}
	if age.Kind != Continuous {
		t.Fatalf("expected Age to be continuous, got %s", age.Kind)
	}
	if age.Float[0] != 41 || age.Float[5] != 32 {
		t.Fatalf("unexpected Age values: %v", age.Float)
	}

	for _, name := range []string{"DailyRate", "HourlyRate", "EmployeeCount", "EmployeeNumber", "Over18", "StandardHours"} {
		if ds.Column(name) != nil {
			t.Fatalf("expected dropped column %s to be absent", name)
		}
	}

	if ds.Label.Name != "Attrition" {
		t.Fatalf("unexpected label column: %s", ds.Label.Name)
	}
	if ds.Label.Raw[0] != "Yes" || ds.Label.Raw[1] != "No" {
		t.Fatalf("unexpected label values: %v", ds.Label.Raw[:2])
	}
	if ds.Label.Encoded() {
		t.Fatalf("label must not be encoded at load time")
	}
}

func TestLoadMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.csv")
	content := "Age,Attrition\n41,Yes\n30,No\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	_, _, err := Load(path)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Column != "BusinessTravel" {
		t.Fatalf("expected first missing column BusinessTravel, got %s", schemaErr.Column)
	}
}

func TestLoadMissingValuesWarn(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "attrition.csv"))
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	// Blank out one Gender cell; empty strings count as missing values.
	broken := []byte(string(src))
	broken = []byte(replaceOnce(string(broken), ",Female,", ",,"))
	path := filepath.Join(t.TempDir(), "missing.csv")
	if err := os.WriteFile(path, broken, 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	_, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}

func replaceOnce(s, old, new string) string {
	for i := 0; i+len(old) <= len(s); i++ {
		if s[i:i+len(old)] == old {
			return s[:i] + new + s[i+len(old):]
		}
	}
	return s
}
