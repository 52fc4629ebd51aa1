package dataset

import "fmt"

// Kind classifies an attribute by the way models consume it.
type Kind int

const (
	// Continuous attributes are real-valued measurements.
	Continuous Kind = iota
	// Ordinal attributes are small-integer codes with a meaningful order.
	Ordinal
	// Nominal attributes are unordered categories.
	Nominal
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Ordinal:
		return "ordinal"
	case Nominal:
		return "nominal"
	}
	return "unknown"
}

// Column holds one attribute over all records.
//
// Continuous columns carry Float only. Nominal and ordinal columns carry the
// raw string values until Encode casts them to a finite domain, after which
// Levels enumerates the domain and Codes holds the per-row level index.
type Column struct {
	Name   string
	Kind   Kind
	Float  []float64
	Raw    []string
	Levels []string
	Codes  []int
}

// Encoded reports whether the column already carries a finite domain.
func (c *Column) Encoded() bool { return c.Levels != nil }

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	if c.Kind == Continuous {
		return len(c.Float)
	}
	return len(c.Raw)
}

// Label is the binary attrition outcome attached to a Dataset. After encoding
// the positive class ("Yes") is level 0 so that downstream recall treats
// attrition as the positive outcome.
type Label struct {
	Name   string
	Raw    []string
	Codes  []int // 1 for the positive class, 0 otherwise; nil until encoded
	Levels []string
}

// Encoded reports whether the label has been binarized.
func (l *Label) Encoded() bool { return l.Levels != nil }

// Dataset is an ordered, fixed-schema collection of employee records. It is
// never mutated after creation: Encode and Take return fresh datasets.
type Dataset struct {
	Columns []*Column
	Label   *Label
	rows    int
}

// Len returns the number of records.
func (d *Dataset) Len() int { return d.rows }

// Column returns the named column or nil.
func (d *Dataset) Column(name string) *Column {
	for _, c := range d.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ColumnNames returns attribute names in schema order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Labels returns the encoded label vector (1 = positive class).
func (d *Dataset) Labels() ([]int, error) {
	if !d.Label.Encoded() {
		return nil, fmt.Errorf("dataset: label %q is not encoded yet", d.Label.Name)
	}
	return d.Label.Codes, nil
}

// PositiveShare returns the fraction of records carrying the positive label.
func (d *Dataset) PositiveShare() float64 {
	if d.rows == 0 {
		return 0
	}
	pos := 0
	if d.Label.Encoded() {
		for _, c := range d.Label.Codes {
			if c == 1 {
				pos++
			}
		}
	} else {
		for _, v := range d.Label.Raw {
			if v == positiveLabel {
				pos++
			}
		}
	}
	return float64(pos) / float64(d.rows)
}

// Take returns a new Dataset containing the rows at idx, in idx order.
func (d *Dataset) Take(idx []int) *Dataset {
	out := &Dataset{rows: len(idx)}
	for _, c := range d.Columns {
		nc := &Column{Name: c.Name, Kind: c.Kind, Levels: c.Levels}
		if c.Kind == Continuous {
			nc.Float = make([]float64, len(idx))
			for i, r := range idx {
				nc.Float[i] = c.Float[r]
			}
		} else {
			nc.Raw = make([]string, len(idx))
			for i, r := range idx {
				nc.Raw[i] = c.Raw[r]
			}
			if c.Encoded() {
				nc.Codes = make([]int, len(idx))
				for i, r := range idx {
					nc.Codes[i] = c.Codes[r]
				}
			}
		}
		out.Columns = append(out.Columns, nc)
	}
	l := &Label{Name: d.Label.Name, Levels: d.Label.Levels}
	l.Raw = make([]string, len(idx))
	for i, r := range idx {
		l.Raw[i] = d.Label.Raw[r]
	}
	if d.Label.Encoded() {
		l.Codes = make([]int, len(idx))
		for i, r := range idx {
			l.Codes[i] = d.Label.Codes[r]
		}
	}
	out.Label = l
	return out
}
