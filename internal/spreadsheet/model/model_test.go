package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDimension() *Dimension {
	d := NewDimension("d1", "Region")
	d.AddDistributionItem(&DistributionItem{ID: "di1", Type: DistributionVariant, Alias: "Peak", ReferencedID: StringPtr("Peak")})
	d.AddMetadataColumn(&MetadataColumn{ID: "m1", Name: "Cost"})

	item := NewItem("i1", "north", FloatPtr(2))
	item.AddDistribution(&Distribution{DistributionItemID: "di1", Value: FloatPtr(5)})
	item.AddMetadataValue(&MetadataValue{AttributeMetadataItemID: "m1", Value: StringPtr("10")})
	d.AddItem(item)

	return d
}

func TestCaseTableCloneIsDeep(t *testing.T) {
	ct := NewCaseTable([]*Dimension{testDimension()})
	ct.SelectedDimensions = append(ct.SelectedDimensions, "d1")

	c := ct.Clone()
	c.Dimensions[0].Name = "Changed"
	c.Dimensions[0].ReferencedID = "x"
	*c.Dimensions[0].DistributionItems[0].ReferencedID = "other"
	*c.Dimensions[0].Items[0].StdDistribution = 9
	*c.Dimensions[0].Items[0].Distributions[0].Value = 9
	*c.Dimensions[0].Items[0].AttributesMetadata[0].Value = "changed"
	c.Dimensions[0].AttributeMetadataItems[0].Name = "changed"
	c.SelectedDimensions[0] = "x"

	d := ct.Dimensions[0]
	assert.Equal(t, "Region", d.Name)
	assert.Equal(t, "Region", d.ReferencedID)
	assert.Equal(t, "Peak", *d.DistributionItems[0].ReferencedID)
	assert.Equal(t, 2.0, *d.Items[0].StdDistribution)
	assert.Equal(t, 5.0, *d.Items[0].Distributions[0].Value)
	assert.Equal(t, "10", *d.Items[0].AttributesMetadata[0].Value)
	assert.Equal(t, "Cost", d.AttributeMetadataItems[0].Name)
	assert.Equal(t, []string{"d1"}, ct.SelectedDimensions)
}

func TestFindDimensionAndItem(t *testing.T) {
	ct := NewCaseTable([]*Dimension{testDimension()})
	upper := func(v interface{}) string { return strings.ToUpper(v.(string)) }

	d := ct.FindDimension("region", upper)
	require.NotNil(t, d)
	assert.Equal(t, "d1", d.ID)
	assert.Nil(t, ct.FindDimension("country", upper))

	item := d.FindItem("NORTH", upper)
	require.NotNil(t, item)
	assert.Equal(t, "i1", item.ID)
	assert.Nil(t, d.FindItem("south", upper))
}

func TestDistributionTypeJSON(t *testing.T) {
	b, err := json.Marshal(&DistributionItem{ID: "x", Type: DistributionAttribute})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"type":"ATTRIBUTE"`)
	assert.Contains(t, string(b), `"referencedId":null`)

	var di DistributionItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":"y","type":"VARIANT"}`), &di))
	assert.Equal(t, DistributionVariant, di.Type)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"OTHER"}`), &di))

	_, err = json.Marshal(DistributionType(0))
	assert.Error(t, err)
}

func TestEmptyDimensionMarshalsEmptyLists(t *testing.T) {
	b, err := json.Marshal(NewDimension("d", "Empty"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"d","name":"Empty","isDefault":false,"items":[],"distributionItems":[],"attributeMetadataItems":[],"referencedId":"Empty"}`, string(b))
}
