package dataset

import (
	"fmt"
	"sort"
	"strconv"
)

// Encode returns a new Dataset with every nominal and ordinal column cast to a
// finite, enumerable domain and the label binarized with the positive class
// ("Yes") first. Continuous columns are shared untouched. The transform is
// deterministic and idempotent: already-encoded columns are carried over as-is.
func Encode(d *Dataset) (*Dataset, error) {
	out := &Dataset{rows: d.rows, Columns: make([]*Column, 0, len(d.Columns))}
	for _, c := range d.Columns {
		if c.Kind == Continuous || c.Encoded() {
			out.Columns = append(out.Columns, c)
			continue
		}
		enc, err := encodeColumn(c)
		if err != nil {
			return nil, err
		}
		out.Columns = append(out.Columns, enc)
	}

	if d.Label.Encoded() {
		out.Label = d.Label
		return out, nil
	}
	label := &Label{
		Name:   d.Label.Name,
		Raw:    d.Label.Raw,
		Levels: []string{positiveLabel, negativeLabel},
		Codes:  make([]int, len(d.Label.Raw)),
	}
	for i, v := range d.Label.Raw {
		switch v {
		case positiveLabel:
			label.Codes[i] = 1
		case negativeLabel:
			label.Codes[i] = 0
		default:
			return nil, fmt.Errorf("dataset: label row %d has value %q, want %s or %s", i, v, positiveLabel, negativeLabel)
		}
	}
	out.Label = label
	return out, nil
}

func encodeColumn(c *Column) (*Column, error) {
	seen := make(map[string]bool, 8)
	levels := make([]string, 0, 8)
	for _, v := range c.Raw {
		if !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}
	if c.Kind == Ordinal {
		// Ordinal codes sort by their numeric value, not lexically.
		var err error
		sort.Slice(levels, func(i, j int) bool {
			a, errA := strconv.Atoi(levels[i])
			b, errB := strconv.Atoi(levels[j])
			if errA != nil || errB != nil {
				err = fmt.Errorf("dataset: ordinal column %s has non-integer level", c.Name)
				return levels[i] < levels[j]
			}
			return a < b
		})
		if err != nil {
			return nil, err
		}
	} else {
		sort.Strings(levels)
	}

	index := make(map[string]int, len(levels))
	for i, l := range levels {
		index[l] = i
	}
	codes := make([]int, len(c.Raw))
	for i, v := range c.Raw {
		codes[i] = index[v]
	}
	return &Column{Name: c.Name, Kind: c.Kind, Raw: c.Raw, Levels: levels, Codes: codes}, nil
}
