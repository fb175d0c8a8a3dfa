package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

func TestClassifySheet(t *testing.T) {
	tests := []struct {
		sheet    string
		wantKind SheetKind
		wantRest string
	}{
		{"CaseTable_Region", CaseTableSheet, "Region"},
		{"casetable_Sales Channel", CaseTableSheet, "Sales Channel"},
		{"Metadata_Region", MetadataSheet, "Region"},
		{"METADATA_Region", MetadataSheet, "Region"},
		{"Settings", UnknownSheet, ""},
		{"Region", UnknownSheet, ""},
		{"CaseTable", UnknownSheet, ""},
	}

	for _, tt := range tests {
		t.Run(tt.sheet, func(t *testing.T) {
			kind, rest := DefaultKeywords.ClassifySheet(tt.sheet)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestClassifySheetLongerPrefixWins(t *testing.T) {
	k := Keywords{CaseTablePrefix: "CT_", MetadataPrefix: "CT_Meta_"}
	kind, rest := k.ClassifySheet("CT_Meta_Region")
	assert.Equal(t, MetadataSheet, kind)
	assert.Equal(t, "Region", rest)

	kind, rest = k.ClassifySheet("CT_Region")
	assert.Equal(t, CaseTableSheet, kind)
	assert.Equal(t, "Region", rest)
}

func TestKeywordsValidate(t *testing.T) {
	assert.NoError(t, DefaultKeywords.Validate())
	assert.Error(t, Keywords{CaseTablePrefix: "", MetadataPrefix: "M_"}.Validate())
	assert.Error(t, Keywords{CaseTablePrefix: "C_", MetadataPrefix: " "}.Validate())
	assert.Error(t, Keywords{CaseTablePrefix: "X_", MetadataPrefix: "x_"}.Validate())
}

func TestParseColumnHeader(t *testing.T) {
	tests := []struct {
		header     interface{}
		wantOK     bool
		wantType   model.DistributionType
		wantAlias  string
		wantTarget *string
	}{
		{header: "VARIANT_Peak", wantOK: true, wantType: model.DistributionVariant, wantAlias: "Peak", wantTarget: s("Peak")},
		{header: "variant_ Peak Season", wantOK: true, wantType: model.DistributionVariant, wantAlias: "PeakSeason", wantTarget: s("PeakSeason")},
		{header: "ATTRIBUTE_Channel", wantOK: true, wantType: model.DistributionAttribute, wantAlias: "Channel"},
		{header: "Attribute_Region WHEREIS north", wantOK: true, wantType: model.DistributionAttribute, wantAlias: "RegionWHEREISnorth"},
		{header: "Express Delivery", wantOK: true, wantType: model.DistributionVariant, wantAlias: "ExpressDelivery", wantTarget: s("ExpressDelivery")},
		{header: "ATTRIBUTE_", wantOK: true, wantType: model.DistributionAttribute, wantAlias: ""},
		{header: " - ", wantOK: false},
		{header: nil, wantOK: false},
	}

	for _, tt := range tests {
		desc, ok := ParseColumnHeader(tt.header)
		require.Equal(t, tt.wantOK, ok, "%v", tt.header)
		if !ok {
			continue
		}
		assert.Equal(t, tt.wantType, desc.Type, "%v", tt.header)
		assert.Equal(t, tt.wantAlias, desc.Alias, "%v", tt.header)
		assert.Equal(t, tt.wantTarget, desc.Target, "%v", tt.header)
	}
}

func TestSplitWhereIs(t *testing.T) {
	dim, item, found := SplitWhereIs("RegionWHEREISnorth")
	assert.True(t, found)
	assert.Equal(t, "Region", dim)
	assert.Equal(t, "north", item)

	dim, item, found = SplitWhereIs("RegionwhereIsnorth")
	assert.True(t, found)
	assert.Equal(t, "Region", dim)
	assert.Equal(t, "north", item)

	dim, item, found = SplitWhereIs("Channel")
	assert.False(t, found)
	assert.Equal(t, "Channel", dim)
	assert.Equal(t, "", item)
}
