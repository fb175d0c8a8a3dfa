package model

// Dimension represents a single case table worksheet in excel. Each case table
// worksheet describes one axis of the case table, and the name of the axis is
// the name of the worksheet with its case table prefix removed.
//
// The first two columns of the worksheet are reserved. Column 1 holds the item
// value and column 2 holds the standard distribution weight of that item. Every
// column after that is a distribution column. Its header tells us what the
// column distributes over. A header of VARIANT_<name> (or a header without a
// keyword) points at a variant group, while ATTRIBUTE_<name> points at another
// dimension, or at an item inside another dimension when written as
// ATTRIBUTE_<dimension>WHEREIS<item>. For example given the worksheet
// CaseTable_Region:
//     item    std     variant          attribute
//   |Value |StdDist |VARIANT_Peak |ATTRIBUTE_Channel|
//   |north |2       |5            |1                |
//   |south |0       |             |3                |
//
// After this is parsed the data structure will look as follows:
//     Dimension {
//         Name: "Region"
//         DistributionItems: [{Type: VARIANT, Alias: "Peak", ReferencedID: "Peak"},
//                             {Type: ATTRIBUTE, Alias: "Channel"}]
//         Items: [
//             {Value: "north", StdDistribution: 2, Distributions: [5, 1]},
//             {Value: "south", StdDistribution: 1, Distributions: [nil, 3]},
//         ]
//     }
//
// Distributions and AttributesMetadata of an Item line up with the
// DistributionItems and AttributeMetadataItems of its Dimension by position, so
// the order of those descriptor lists must never change once items exist.
type Dimension struct {
	ID                     string              `json:"id"`
	Name                   string              `json:"name"`
	IsDefault              bool                `json:"isDefault"`
	Items                  []*Item             `json:"items"`
	DistributionItems      []*DistributionItem `json:"distributionItems"`
	AttributeMetadataItems []*MetadataColumn   `json:"attributeMetadataItems"`

	// ReferencedID starts out as the cleaned dimension name and is replaced
	// by the catalog attribute id once reconciled.
	ReferencedID string `json:"referencedId"`
}

func NewDimension(id, name string) *Dimension {
	return &Dimension{
		ID:                     id,
		Name:                   name,
		ReferencedID:           name,
		Items:                  []*Item{},
		DistributionItems:      []*DistributionItem{},
		AttributeMetadataItems: []*MetadataColumn{},
	}
}

func (d *Dimension) AddItem(item *Item) {
	d.Items = append(d.Items, item)
}

func (d *Dimension) AddDistributionItem(di *DistributionItem) {
	d.DistributionItems = append(d.DistributionItems, di)
}

func (d *Dimension) AddMetadataColumn(column *MetadataColumn) {
	d.AttributeMetadataItems = append(d.AttributeMetadataItems, column)
}

// FindItem returns the first item whose value matches using the given key
// function, or nil.
func (d *Dimension) FindItem(value string, key func(interface{}) string) *Item {
	want := key(value)
	for _, item := range d.Items {
		if key(item.Value) == want {
			return item
		}
	}

	return nil
}

// Clone returns a deep copy of the dimension.
func (d *Dimension) Clone() *Dimension {
	c := &Dimension{
		ID:                     d.ID,
		Name:                   d.Name,
		IsDefault:              d.IsDefault,
		ReferencedID:           d.ReferencedID,
		Items:                  make([]*Item, 0, len(d.Items)),
		DistributionItems:      make([]*DistributionItem, 0, len(d.DistributionItems)),
		AttributeMetadataItems: make([]*MetadataColumn, 0, len(d.AttributeMetadataItems)),
	}

	for _, item := range d.Items {
		c.Items = append(c.Items, item.Clone())
	}

	for _, di := range d.DistributionItems {
		c.DistributionItems = append(c.DistributionItems, di.Clone())
	}

	for _, column := range d.AttributeMetadataItems {
		mc := *column
		c.AttributeMetadataItems = append(c.AttributeMetadataItems, &mc)
	}

	return c
}

// Item is a single row in a case table worksheet.
type Item struct {
	ID                 string           `json:"id"`
	Value              string           `json:"value"`
	StdDistribution    *float64         `json:"stdDistribution"`
	Distributions      []*Distribution  `json:"distributions"`
	AttributesMetadata []*MetadataValue `json:"attributesMetadata"`
}

func NewItem(id, value string, stdDistribution *float64) *Item {
	return &Item{
		ID:                 id,
		Value:              value,
		StdDistribution:    stdDistribution,
		Distributions:      []*Distribution{},
		AttributesMetadata: []*MetadataValue{},
	}
}

func (i *Item) AddDistribution(distribution *Distribution) {
	i.Distributions = append(i.Distributions, distribution)
}

func (i *Item) AddMetadataValue(value *MetadataValue) {
	i.AttributesMetadata = append(i.AttributesMetadata, value)
}

func (i *Item) Clone() *Item {
	c := &Item{
		ID:                 i.ID,
		Value:              i.Value,
		StdDistribution:    copyFloat(i.StdDistribution),
		Distributions:      make([]*Distribution, 0, len(i.Distributions)),
		AttributesMetadata: make([]*MetadataValue, 0, len(i.AttributesMetadata)),
	}

	for _, d := range i.Distributions {
		c.Distributions = append(c.Distributions, &Distribution{
			DistributionItemID: d.DistributionItemID,
			Value:              copyFloat(d.Value),
		})
	}

	for _, m := range i.AttributesMetadata {
		c.AttributesMetadata = append(c.AttributesMetadata, &MetadataValue{
			AttributeMetadataItemID: m.AttributeMetadataItemID,
			Value:                   copyString(m.Value),
		})
	}

	return c
}

// DistributionItem describes one distribution column of a dimension.
type DistributionItem struct {
	ID   string           `json:"id"`
	Type DistributionType `json:"type"`

	// ReferencedID is a dimension id (ATTRIBUTE) or a variant group name and
	// later id (VARIANT). ReferencedItemID is only set when the ATTRIBUTE
	// header addressed an item inside the referenced dimension.
	ReferencedID     *string `json:"referencedId"`
	ReferencedItemID *string `json:"referencedItemId"`

	// Alias is the cleaned header with its keyword removed.
	Alias string `json:"alias"`
}

func (di *DistributionItem) Clone() *DistributionItem {
	return &DistributionItem{
		ID:               di.ID,
		Type:             di.Type,
		ReferencedID:     copyString(di.ReferencedID),
		ReferencedItemID: copyString(di.ReferencedItemID),
		Alias:            di.Alias,
	}
}

// MetadataColumn declares one metadata field of a dimension.
type MetadataColumn struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Distribution struct {
	DistributionItemID string   `json:"distributionItemId"`
	Value              *float64 `json:"value"`
}

type MetadataValue struct {
	AttributeMetadataItemID string  `json:"attributeMetadataItemId"`
	Value                   *string `json:"value"`
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

// FloatPtr returns a pointer to a copy of f.
func FloatPtr(f float64) *float64 {
	return &f
}
