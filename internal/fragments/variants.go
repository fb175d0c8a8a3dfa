package fragments

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/swapnilcelonis/ddgautomation/internal/catalog"
	"github.com/swapnilcelonis/ddgautomation/internal/ident"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

var hundred = decimal.NewFromInt(100)

// BuildVariants reads every worksheet whose name starts with prefix, ignoring
// case, as one variant. The rest of the worksheet name is the variant name.
// After the header row each row holds:
//     |event |automation fraction |duration in minutes|
// The variant id comes from the variant catalog, a variant that isn't in
// the catalog (or when there is no catalog) gets a new id.
func BuildVariants(source spreadsheet.SheetSource, prefix string, tables *catalog.Tables, variants *catalog.Table, report *Report) (*model.VariantsFragment, error) {
	fragment := &model.VariantsFragment{Variants: []*model.Variant{}}

	for _, sheet := range source.Sheets() {
		if len(sheet) < len(prefix) || !strings.EqualFold(sheet[:len(prefix)], prefix) {
			continue
		}

		name := strings.TrimSpace(sheet[len(prefix):])
		if ident.Clean(name) == "" {
			logrus.WithField("sheet", sheet).Warn("Variant sheet has no variant name, skipping")
			continue
		}

		rows, err := source.Rows(sheet)
		if err != nil {
			return nil, err
		}

		fragment.Variants = append(fragment.Variants, buildVariant(name, rows, tables, variants, report))
	}

	return fragment, nil
}

func buildVariant(name string, rows [][]interface{}, tables *catalog.Tables, variants *catalog.Table, report *Report) *model.Variant {
	variant := &model.Variant{Name: name, Events: []*model.VariantEvent{}}

	if e, ok := variants.Lookup(name); ok {
		variant.ID, variant.Name = e.ID, e.Name
	} else {
		if variants != nil {
			report.Variants.Add(name)
		}
		variant.ID = ident.NewID()
	}

	if len(rows) == 0 {
		return variant
	}

	for _, row := range rows[1:] {
		event, ok := lookup(tables.Events, report.Events, spreadsheet.Cell(row, 1))
		if !ok {
			continue
		}

		variant.Events = append(variant.Events, &model.VariantEvent{
			EventID:    event.ID,
			Automation: automationPercent(spreadsheet.Cell(row, 2)),
			Duration:   nonNegative(spreadsheet.Cell(row, 3)),
		})
	}

	return variant
}

// automationPercent turns an automation fraction into a percentage rounded to
// two places. Missing and negative fractions count as 0.
func automationPercent(raw interface{}) float64 {
	v := nonNegative(raw)
	pct, _ := decimal.NewFromFloat(v).Mul(hundred).Round(2).Float64()
	return pct
}

// nonNegative floors a number at zero, missing values are 0.
func nonNegative(raw interface{}) float64 {
	v, ok := spreadsheet.ToNumber(raw)
	if !ok || v < 0 {
		return 0
	}
	return v
}
