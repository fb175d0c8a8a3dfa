package model

// CaseTable is the product of the case table pipeline: every dimension, plus
// the ids of the dimensions that came from case table worksheets.
type CaseTable struct {
	Dimensions         []*Dimension `json:"dimensions"`
	SelectedDimensions []string     `json:"selectedDimensions"`
}

func NewCaseTable(dimensions []*Dimension) *CaseTable {
	if dimensions == nil {
		dimensions = []*Dimension{}
	}

	return &CaseTable{
		Dimensions:         dimensions,
		SelectedDimensions: []string{},
	}
}

// Clone returns a deep copy so a stage can produce a new version of the case
// table without touching its input.
func (ct *CaseTable) Clone() *CaseTable {
	c := &CaseTable{
		Dimensions:         make([]*Dimension, 0, len(ct.Dimensions)),
		SelectedDimensions: append([]string{}, ct.SelectedDimensions...),
	}

	for _, d := range ct.Dimensions {
		c.Dimensions = append(c.Dimensions, d.Clone())
	}

	return c
}

// FindDimension returns the first dimension whose name matches using the given
// key function, or nil.
func (ct *CaseTable) FindDimension(name string, key func(interface{}) string) *Dimension {
	want := key(name)
	for _, d := range ct.Dimensions {
		if key(d.Name) == want {
			return d
		}
	}

	return nil
}
