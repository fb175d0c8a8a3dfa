package processor

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapnilcelonis/ddgautomation/internal/catalog"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

const (
	regionID  = "0b9f9f38-54a6-4a0e-9a61-0d7bb0f7a001"
	channelID = "0b9f9f38-54a6-4a0e-9a61-0d7bb0f7a002"
	peakID    = "6f1c2a9e-3b7d-4c1e-8a2f-5d9e0b7c4a11"
)

// memSource is a SheetSource over in memory rows.
type memSource struct {
	names []string
	rows  map[string][][]interface{}
}

func newMemSource() *memSource {
	return &memSource{rows: make(map[string][][]interface{})}
}

func (m *memSource) add(name string, rows ...[]interface{}) *memSource {
	m.names = append(m.names, name)
	m.rows[name] = rows
	return m
}

func (m *memSource) Sheets() []string { return m.names }

func (m *memSource) Rows(sheet string) ([][]interface{}, error) {
	rows, ok := m.rows[sheet]
	if !ok {
		return nil, errors.Wrap(spreadsheet.ErrSheetNotFound, sheet)
	}
	return rows, nil
}

func regionWorkbook() *memSource {
	return newMemSource().
		add("CaseTable_Region",
			[]interface{}{"Value", "StdDist", "VARIANT_Peak", "ATTRIBUTE_ChannelWHEREISweb", "ATTRIBUTE_Channel"},
			[]interface{}{"north", 2.0, 5.0, 1.0, 2.0},
			[]interface{}{"south", 0.0, nil, 3.0},
		).
		add("CaseTable_Channel",
			[]interface{}{"Value", "StdDist"},
			[]interface{}{"web", 1.0},
			[]interface{}{"shop", 1.0},
		).
		add("Metadata_Region",
			[]interface{}{"Region", "Cost", "Owner"},
			[]interface{}{"north", 12.7, "Ann"},
			[]interface{}{"east", 1.0, "Bob"},
		)
}

func attributeTable() *catalog.Table {
	return catalog.NewTable("attribute", []catalog.Entity{
		{ID: regionID, Name: "Region"},
		{ID: channelID, Name: "Sales Channel"},
	})
}

func variantTable() *catalog.Table {
	return catalog.NewTable("variant", []catalog.Entity{{ID: peakID, Name: "Peak"}})
}

func TestCaseTableBuilder(t *testing.T) {
	b := &CaseTableBuilder{
		Source:     regionWorkbook(),
		Keywords:   spreadsheet.DefaultKeywords,
		Attributes: attributeTable(),
		Variants:   variantTable(),
	}

	ct, reconciler, err := b.Build()
	require.NoError(t, err)

	require.Len(t, ct.Dimensions, 3)
	region, channel, sales := ct.Dimensions[0], ct.Dimensions[1], ct.Dimensions[2]

	assert.Equal(t, []string{region.ID, channel.ID}, ct.SelectedDimensions)

	// catalog reconciliation
	assert.Equal(t, regionID, region.ReferencedID)
	assert.Equal(t, "Channel", channel.ReferencedID)
	assert.Equal(t, []string{"Channel"}, reconciler.UnresolvedAttributes.Values())
	require.NotNil(t, region.DistributionItems[0].ReferencedID)
	assert.Equal(t, peakID, *region.DistributionItems[0].ReferencedID)
	assert.Equal(t, 0, reconciler.UnresolvedVariants.Len())

	// attribute references
	whereIs := region.DistributionItems[1]
	require.NotNil(t, whereIs.ReferencedID)
	assert.Equal(t, channel.ID, *whereIs.ReferencedID)
	require.NotNil(t, whereIs.ReferencedItemID)
	assert.Equal(t, channel.Items[0].ID, *whereIs.ReferencedItemID)

	plain := region.DistributionItems[2]
	require.NotNil(t, plain.ReferencedID)
	assert.Equal(t, channel.ID, *plain.ReferencedID)
	assert.Nil(t, plain.ReferencedItemID)

	// metadata
	require.Len(t, region.AttributeMetadataItems, 2)
	assert.Equal(t, "Cost", region.AttributeMetadataItems[0].Name)
	north, south := region.Items[0], region.Items[1]
	require.Len(t, north.AttributesMetadata, 2)
	assert.Equal(t, "12", *north.AttributesMetadata[0].Value)
	assert.Equal(t, "Ann", *north.AttributesMetadata[1].Value)
	assert.Equal(t, region.AttributeMetadataItems[1].ID, north.AttributesMetadata[1].AttributeMetadataItemID)
	require.Len(t, south.AttributesMetadata, 2)
	assert.Nil(t, south.AttributesMetadata[0].Value)
	assert.Nil(t, south.AttributesMetadata[1].Value)

	// synthesized dimension
	assert.Equal(t, "Sales Channel", sales.Name)
	assert.Equal(t, channelID, sales.ReferencedID)
	assert.Empty(t, sales.Items)

	assertAligned(t, ct)
}

func TestResolverMisses(t *testing.T) {
	src := newMemSource().
		add("CaseTable_Region",
			[]interface{}{"Value", "StdDist", "ATTRIBUTE_Country", "ATTRIBUTE_ChannelWHEREISphone", "ATTRIBUTE_WHEREISweb", "ATTRIBUTE_"},
			[]interface{}{"north", 1.0},
		).
		add("CaseTable_Channel",
			[]interface{}{"Value", "StdDist"},
			[]interface{}{"web", 1.0},
		)

	dims, err := spreadsheet.BuildDimensions(src, spreadsheet.DefaultKeywords)
	require.NoError(t, err)

	ct, err := NewReferenceResolver().Apply(model.NewCaseTable(dims))
	require.NoError(t, err)

	items := ct.Dimensions[0].DistributionItems
	require.Len(t, items, 4)

	assert.Nil(t, items[0].ReferencedID, "unknown dimension")
	assert.Nil(t, items[1].ReferencedID, "known dimension, unknown item")
	assert.Nil(t, items[1].ReferencedItemID)
	assert.Nil(t, items[2].ReferencedID, "empty dimension name")
	assert.Nil(t, items[3].ReferencedID, "empty alias")
}

func TestStagesLeaveInputUntouched(t *testing.T) {
	dims, err := spreadsheet.BuildDimensions(regionWorkbook(), spreadsheet.DefaultKeywords)
	require.NoError(t, err)
	in := model.NewCaseTable(dims)

	stages := []Stage{
		NewReferenceResolver(),
		NewMetadataMerger(regionWorkbook(), spreadsheet.DefaultKeywords),
		NewCatalogReconciler(attributeTable(), variantTable()),
		NewMissingDimensionSynthesizer(attributeTable()),
	}

	for _, stage := range stages {
		before := in.Clone()
		out, err := stage.Apply(in)
		require.NoError(t, err)
		assert.NotSame(t, in, out)
		assert.Equal(t, before, in)
	}
}

func TestMetadataDuplicateColumns(t *testing.T) {
	src := regionWorkbook().
		add("Metadata_Channel",
			[]interface{}{"Channel", "Owner", "owner", "Cost"},
		)
	src.rows["Metadata_Region"][0] = []interface{}{"Region", "Cost", "Co st", "Owner"}

	dims, err := spreadsheet.BuildDimensions(src, spreadsheet.DefaultKeywords)
	require.NoError(t, err)

	_, err = NewMetadataMerger(src, spreadsheet.DefaultKeywords).Apply(model.NewCaseTable(dims))
	require.Error(t, err)

	var dupErr *spreadsheet.DuplicateColumnsError
	require.True(t, errors.As(err, &dupErr))
	require.Len(t, dupErr.Duplicates, 4)
	assert.Equal(t, spreadsheet.DuplicateColumn{Sheet: "Metadata_Region", Column: "B", Header: "Cost"}, dupErr.Duplicates[0])
	assert.Equal(t, spreadsheet.DuplicateColumn{Sheet: "Metadata_Region", Column: "C", Header: "Co st"}, dupErr.Duplicates[1])
	assert.Equal(t, "Metadata_Channel", dupErr.Duplicates[2].Sheet)
	assert.Equal(t, "C", dupErr.Duplicates[3].Column)
}

func TestMetadataMergeEdgeCases(t *testing.T) {
	src := newMemSource().
		add("CaseTable_Region",
			[]interface{}{"Value", "StdDist"},
			[]interface{}{"north", 1.0},
			[]interface{}{"south", 1.0},
		).
		add("Metadata_Region",
			[]interface{}{"Region", "", "Cost"},
			[]interface{}{},
			[]interface{}{nil, nil, 4.0},
			[]interface{}{"NORTH", "ignored", 3.0},
			[]interface{}{"north", "again", 9.0},
		).
		add("Metadata_Region2",
			[]interface{}{"Region", "Owner"},
		).
		add("Metadata_Unknown",
			[]interface{}{"Unknown", "Owner"},
			[]interface{}{"north", "x"},
		).
		add("Metadata_Empty")

	dims, err := spreadsheet.BuildDimensions(src, spreadsheet.DefaultKeywords)
	require.NoError(t, err)

	ct, err := NewMetadataMerger(src, spreadsheet.DefaultKeywords).Apply(model.NewCaseTable(dims))
	require.NoError(t, err)

	region := ct.Dimensions[0]
	require.Len(t, region.AttributeMetadataItems, 1)

	north := region.Items[0]
	require.Len(t, north.AttributesMetadata, 1)
	assert.Equal(t, "3", *north.AttributesMetadata[0].Value, "first matching row wins")
	assert.Nil(t, region.Items[1].AttributesMetadata[0].Value)

	assertAligned(t, ct)
}

func TestMetadataSecondSheetAppends(t *testing.T) {
	src := newMemSource().
		add("CaseTable_Region",
			[]interface{}{"Value", "StdDist"},
			[]interface{}{"north", 1.0},
		).
		add("Metadata_Region",
			[]interface{}{"Region", "Cost"},
			[]interface{}{"north", 1.0},
		).
		add("metadata_region",
			[]interface{}{"Region", "Owner"},
			[]interface{}{"north", "Ann"},
		)

	dims, err := spreadsheet.BuildDimensions(src, spreadsheet.DefaultKeywords)
	require.NoError(t, err)

	ct, err := NewMetadataMerger(src, spreadsheet.DefaultKeywords).Apply(model.NewCaseTable(dims))
	require.NoError(t, err)

	region := ct.Dimensions[0]
	require.Len(t, region.AttributeMetadataItems, 2)
	require.Len(t, region.Items[0].AttributesMetadata, 2)
	assert.Equal(t, "Ann", *region.Items[0].AttributesMetadata[1].Value)
}

func TestReconcilerWithoutVariantTable(t *testing.T) {
	dims, err := spreadsheet.BuildDimensions(regionWorkbook(), spreadsheet.DefaultKeywords)
	require.NoError(t, err)

	r := NewCatalogReconciler(attributeTable(), nil)
	ct, err := r.Apply(model.NewCaseTable(dims))
	require.NoError(t, err)

	assert.Equal(t, "Peak", *ct.Dimensions[0].DistributionItems[0].ReferencedID)
	assert.Equal(t, 0, r.UnresolvedVariants.Len())

	// already reconciled dimensions are left alone
	r = NewCatalogReconciler(catalog.NewTable("attribute", nil), nil)
	ct, err = r.Apply(ct)
	require.NoError(t, err)
	assert.Equal(t, regionID, ct.Dimensions[0].ReferencedID)
	assert.Equal(t, []string{"Channel"}, r.UnresolvedAttributes.Values())
}

func TestReconcilerUnresolvedVariants(t *testing.T) {
	src := newMemSource().add("CaseTable_Region",
		[]interface{}{"Value", "StdDist", "Peek", "VARIANT_Other", "ATTRIBUTE_Region"},
		[]interface{}{"north", 1.0},
	)
	dims, err := spreadsheet.BuildDimensions(src, spreadsheet.DefaultKeywords)
	require.NoError(t, err)
	dims[0].DistributionItems[1].ReferencedID = model.StringPtr(peakID)

	r := NewCatalogReconciler(attributeTable(), variantTable())
	ct, err := r.Apply(model.NewCaseTable(dims))
	require.NoError(t, err)

	items := ct.Dimensions[0].DistributionItems
	assert.Equal(t, "Peek", *items[0].ReferencedID)
	assert.Equal(t, peakID, *items[1].ReferencedID)
	assert.Nil(t, items[2].ReferencedID)
	assert.Equal(t, []string{"Peek"}, r.UnresolvedVariants.Values())
}

func TestDistributionItemsFindsNested(t *testing.T) {
	a := &model.DistributionItem{ID: "a"}
	b := &model.DistributionItem{ID: "b"}
	ct := model.NewCaseTable([]*model.Dimension{
		{ID: "d1", DistributionItems: []*model.DistributionItem{a, nil}},
		nil,
		{ID: "d2", DistributionItems: []*model.DistributionItem{b, a}},
	})

	found := distributionItems(ct)
	assert.Equal(t, []*model.DistributionItem{a, b}, found)
}

func TestSynthesizerIsIdempotent(t *testing.T) {
	dims, err := spreadsheet.BuildDimensions(regionWorkbook(), spreadsheet.DefaultKeywords)
	require.NoError(t, err)

	table := catalog.NewTable("attribute", []catalog.Entity{
		{ID: regionID, Name: "region"},
		{ID: channelID, Name: "Sales Channel"},
		{ID: "dup", Name: "sales-channel"},
		{ID: "blank", Name: " - "},
	})
	s := NewMissingDimensionSynthesizer(table)

	once, err := s.Apply(model.NewCaseTable(dims))
	require.NoError(t, err)
	require.Len(t, once.Dimensions, 3)
	assert.Equal(t, "Sales Channel", once.Dimensions[2].Name)
	assert.Equal(t, channelID, once.Dimensions[2].ReferencedID)

	twice, err := s.Apply(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestDisplayer(t *testing.T) {
	b := &CaseTableBuilder{
		Source:     regionWorkbook(),
		Keywords:   spreadsheet.DefaultKeywords,
		Attributes: attributeTable(),
	}

	var out bytes.Buffer
	b.Extra = []Stage{NewDisplayerTo(&out)}

	_, _, err := b.Build()
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Dimension Region (worksheet, references "+regionID+")")
	assert.Contains(t, text, "Dimension Sales Channel (catalog")
	assert.Contains(t, text, "VARIANT Peak -> Peak")
	assert.Contains(t, text, "      south: 1 - 3 -\n")
}

func TestPipelineStopsOnError(t *testing.T) {
	failing := stageFunc(func(ct *model.CaseTable) (*model.CaseTable, error) {
		return nil, errors.New("boom")
	})
	called := false
	after := stageFunc(func(ct *model.CaseTable) (*model.CaseTable, error) {
		called = true
		return ct, nil
	})

	ct, err := NewPipeline(failing, after).Run(model.NewCaseTable(nil))
	assert.EqualError(t, err, "boom")
	assert.Nil(t, ct)
	assert.False(t, called)
}

type stageFunc func(ct *model.CaseTable) (*model.CaseTable, error)

func (f stageFunc) Apply(ct *model.CaseTable) (*model.CaseTable, error) { return f(ct) }

func assertAligned(t *testing.T, ct *model.CaseTable) {
	t.Helper()
	for _, d := range ct.Dimensions {
		for _, item := range d.Items {
			assert.Len(t, item.Distributions, len(d.DistributionItems), "%s/%s distributions", d.Name, item.Value)
			assert.Len(t, item.AttributesMetadata, len(d.AttributeMetadataItems), "%s/%s metadata", d.Name, item.Value)
			for i, m := range item.AttributesMetadata {
				assert.Equal(t, d.AttributeMetadataItems[i].ID, m.AttributeMetadataItemID)
			}
		}
	}
}
