package dataset

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
)

const (
	labelColumn   = "Attrition"
	positiveLabel = "Yes"
	negativeLabel = "No"
)

// Field describes one attribute of the expected schema.
type Field struct {
	Name string
	Kind Kind
}

// Schema lists the attributes a valid input file must carry, in report order.
// Background, working condition, satisfaction and benefits groups of the IBM
// HR attrition table; the label column is handled separately.
var Schema = []Field{
	{"Age", Continuous},
	{"BusinessTravel", Nominal},
	{"Department", Nominal},
	{"DistanceFromHome", Continuous},
	{"Education", Ordinal},
	{"EducationField", Nominal},
	{"EnvironmentSatisfaction", Ordinal},
	{"Gender", Nominal},
	{"JobInvolvement", Ordinal},
	{"JobLevel", Ordinal},
	{"JobRole", Nominal},
	{"JobSatisfaction", Ordinal},
	{"MaritalStatus", Nominal},
	{"MonthlyIncome", Continuous},
	{"MonthlyRate", Continuous},
	{"NumCompaniesWorked", Continuous},
	{"OverTime", Nominal},
	{"PercentSalaryHike", Continuous},
	{"PerformanceRating", Ordinal},
	{"RelationshipSatisfaction", Ordinal},
	{"StockOptionLevel", Ordinal},
	{"TotalWorkingYears", Continuous},
	{"TrainingTimesLastYear", Continuous},
	{"WorkLifeBalance", Ordinal},
	{"YearsAtCompany", Continuous},
	{"YearsInCurrentRole", Continuous},
	{"YearsSinceLastPromotion", Continuous},
	{"YearsWithCurrManager", Continuous},
}

// droppedColumns are artifacts of the input format carrying no discriminative
// information: constants (EmployeeCount, Over18, StandardHours), a per-row
// identifier (EmployeeNumber) and the two pay-rate columns the analysis
// discards alongside them.
var droppedColumns = []string{
	"DailyRate",
	"HourlyRate",
	"EmployeeCount",
	"EmployeeNumber",
	"Over18",
	"StandardHours",
}

// Load reads the delimited attrition table at path into a Dataset.
//
// The first header cell is often mangled by a byte-order mark ("ï..Age" in the
// exported file); it is renamed back to Age. Columns listed in droppedColumns
// are discarded. A missing required column yields a *SchemaError. Empty cells
// are counted and reported as warnings: the source table has none, so this is
// a verification, not an enforcement.
func Load(path string) (*Dataset, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f, dataframe.HasHeader(true), dataframe.DetectTypes(false))
	if df.Err != nil {
		return nil, nil, fmt.Errorf("reading dataset: %w", df.Err)
	}

	df = renameMalformed(df)

	for _, name := range droppedColumns {
		if hasColumn(df, name) {
			df = df.Drop(name)
		}
	}
	if df.Err != nil {
		return nil, nil, fmt.Errorf("dropping columns: %w", df.Err)
	}

	present := make(map[string]bool, len(df.Names()))
	for _, name := range df.Names() {
		present[name] = true
	}
	for _, field := range Schema {
		if !present[field.Name] {
			return nil, nil, &SchemaError{Column: field.Name}
		}
	}
	if !present[labelColumn] {
		return nil, nil, &SchemaError{Column: labelColumn}
	}

	var warnings []string
	ds := &Dataset{rows: df.Nrow()}
	for _, field := range Schema {
		records := df.Col(field.Name).Records()
		col := &Column{Name: field.Name, Kind: field.Kind}
		missing := 0
		if field.Kind == Continuous {
			col.Float = make([]float64, len(records))
			for i, r := range records {
				r = strings.TrimSpace(r)
				if r == "" {
					missing++
					continue
				}
				v, err := strconv.ParseFloat(r, 64)
				if err != nil {
					return nil, nil, fmt.Errorf("column %s row %d: parsing %q: %w", field.Name, i, r, err)
				}
				col.Float[i] = v
			}
		} else {
			col.Raw = make([]string, len(records))
			for i, r := range records {
				r = strings.TrimSpace(r)
				if r == "" {
					missing++
				}
				col.Raw[i] = r
			}
		}
		if missing > 0 {
			warnings = append(warnings, fmt.Sprintf("column %s has %d missing values", field.Name, missing))
		}
		ds.Columns = append(ds.Columns, col)
	}

	labels := df.Col(labelColumn).Records()
	ds.Label = &Label{Name: labelColumn, Raw: make([]string, len(labels))}
	for i, r := range labels {
		ds.Label.Raw[i] = strings.TrimSpace(r)
	}

	return ds, warnings, nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// renameMalformed strips a UTF-8 BOM from the first header and maps the
// R-export artifact "ï..Age" back to Age.
func renameMalformed(df dataframe.DataFrame) dataframe.DataFrame {
	for _, name := range df.Names() {
		clean := strings.TrimPrefix(name, "\ufeff")
		if clean == "ï..Age" || clean == "i..Age" {
			clean = "Age"
		}
		if clean != name {
			df = df.Rename(clean, name)
		}
	}
	return df
}
