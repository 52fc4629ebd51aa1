package dataset

// CrossTab summarizes attrition per level of one finite-domain attribute.
type CrossTab struct {
	Attribute string
	Rows      []CrossTabRow
}

// CrossTabRow is one attribute level with its record count and attrition share.
type CrossTabRow struct {
	Level    string
	Count    int
	Positive int
	Share    float64
}

// CrossTabs cross-tabulates every nominal and ordinal attribute against the
// label. The dataset must be encoded.
func CrossTabs(d *Dataset) ([]CrossTab, error) {
	y, err := d.Labels()
	if err != nil {
		return nil, err
	}

	var tabs []CrossTab
	for _, c := range d.Columns {
		if c.Kind == Continuous {
			continue
		}
		counts := make([]int, len(c.Levels))
		pos := make([]int, len(c.Levels))
		for i, code := range c.Codes {
			counts[code]++
			pos[code] += y[i]
		}
		tab := CrossTab{Attribute: c.Name}
		for l, level := range c.Levels {
			share := 0.0
			if counts[l] > 0 {
				share = float64(pos[l]) / float64(counts[l])
			}
			tab.Rows = append(tab.Rows, CrossTabRow{
				Level:    level,
				Count:    counts[l],
				Positive: pos[l],
				Share:    share,
			})
		}
		tabs = append(tabs, tab)
	}
	return tabs, nil
}
