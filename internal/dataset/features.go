package dataset

import (
	"fmt"
)

// FeatureKind tells a model how a feature column is to be interpreted.
type FeatureKind int

const (
	// NumericFeature is a real-valued column (continuous, ordinal code or
	// one-hot indicator).
	NumericFeature FeatureKind = iota
	// CategoricalFeature is a level-coded column with a finite domain.
	CategoricalFeature
)

// Features is a numeric design matrix derived from an encoded Dataset,
// together with per-column metadata needed by the trainers.
type Features struct {
	Names       []string
	Kinds       []FeatureKind
	Cardinality []int // level count for categorical features, 0 otherwise
	X           [][]float64
}

// MatrixOptions controls how attributes become matrix columns.
type MatrixOptions struct {
	// OneHot expands every nominal attribute into one indicator column per
	// level. Without it nominal attributes become a single level-coded column.
	OneHot bool
	// Normalize min-max scales every column to [0,1] using statistics over
	// all rows of the dataset, so train and test share the same scale.
	Normalize bool
	// Exclude lists attribute names to leave out of the matrix. Feature-subset
	// selection is a modeling choice made here, not inside any trainer.
	Exclude []string
}

// Matrix builds the design matrix for an encoded dataset. Ordinal attributes
// always enter as their numeric code; continuous attributes as-is.
func Matrix(d *Dataset, opts MatrixOptions) (*Features, error) {
	excluded := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		excluded[name] = true
	}

	f := &Features{}
	var cols [][]float64
	for _, c := range d.Columns {
		if excluded[c.Name] {
			continue
		}
		switch {
		case c.Kind == Continuous:
			f.push(c.Name, NumericFeature, 0)
			cols = append(cols, c.Float)
		case !c.Encoded():
			return nil, fmt.Errorf("dataset: column %s is not encoded", c.Name)
		case c.Kind == Ordinal:
			f.push(c.Name, NumericFeature, 0)
			cols = append(cols, codesToFloat(c.Codes))
		case opts.OneHot:
			for l, level := range c.Levels {
				f.push(c.Name+"="+level, NumericFeature, 0)
				ind := make([]float64, len(c.Codes))
				for i, code := range c.Codes {
					if code == l {
						ind[i] = 1
					}
				}
				cols = append(cols, ind)
			}
		default:
			f.push(c.Name, CategoricalFeature, len(c.Levels))
			cols = append(cols, codesToFloat(c.Codes))
		}
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("dataset: no attributes left after exclusions")
	}

	if opts.Normalize {
		for j, col := range cols {
			cols[j] = minMaxScale(col)
		}
	}

	rows := d.Len()
	f.X = make([][]float64, rows)
	for i := 0; i < rows; i++ {
		row := make([]float64, len(cols))
		for j, col := range cols {
			row[j] = col[i]
		}
		f.X[i] = row
	}
	return f, nil
}

// Rows gathers the matrix rows at idx, preserving idx order.
func (f *Features) Rows(idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, r := range idx {
		out[i] = f.X[r]
	}
	return out
}

func (f *Features) push(name string, kind FeatureKind, card int) {
	f.Names = append(f.Names, name)
	f.Kinds = append(f.Kinds, kind)
	f.Cardinality = append(f.Cardinality, card)
}

func codesToFloat(codes []int) []float64 {
	out := make([]float64, len(codes))
	for i, c := range codes {
		out[i] = float64(c)
	}
	return out
}

// minMaxScale maps a column to [0,1]; constant columns collapse to 0.
func minMaxScale(col []float64) []float64 {
	lo, hi := col[0], col[0]
	for _, v := range col[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	out := make([]float64, len(col))
	if hi == lo {
		return out
	}
	for i, v := range col {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}
