package processor

import (
	"github.com/sirupsen/logrus"

	"github.com/swapnilcelonis/ddgautomation/internal/ident"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

// ReferenceResolver points every ATTRIBUTE distribution item at the dimension
// its alias names. An alias of the form <dimension>WHEREIS<item> also points
// it at an item inside that dimension, both references stay nil unless the
// dimension and the item exist. Names are matched on their cleaned,
// upper cased form, there is no partial or fuzzy matching. A name that doesn't
// match leaves the reference nil, this is not an error.
type ReferenceResolver struct{}

func NewReferenceResolver() *ReferenceResolver {
	return &ReferenceResolver{}
}

func (r *ReferenceResolver) Apply(in *model.CaseTable) (*model.CaseTable, error) {
	ct := in.Clone()

	for _, d := range ct.Dimensions {
		for _, di := range d.DistributionItems {
			if di.Type != model.DistributionAttribute {
				continue
			}
			r.resolve(ct, d, di)
		}
	}

	return ct, nil
}

func (r *ReferenceResolver) resolve(ct *model.CaseTable, owner *model.Dimension, di *model.DistributionItem) {
	di.ReferencedID = nil
	di.ReferencedItemID = nil

	if di.Alias == "" {
		return
	}

	dimensionName, itemValue, hasItem := spreadsheet.SplitWhereIs(di.Alias)
	if ident.Key(dimensionName) == "" {
		return
	}

	target := ct.FindDimension(dimensionName, ident.Key)
	if target == nil {
		logrus.WithFields(logrus.Fields{
			"dimension": owner.Name,
			"alias":     di.Alias,
		}).Debug("ATTRIBUTE column doesn't name a known dimension")
		return
	}

	if !hasItem {
		di.ReferencedID = model.StringPtr(target.ID)
		return
	}

	// A WHEREIS reference is only set when both the dimension and the item
	// exist.
	item := target.FindItem(itemValue, ident.Key)
	if item == nil {
		logrus.WithFields(logrus.Fields{
			"dimension": owner.Name,
			"alias":     di.Alias,
			"item":      itemValue,
		}).Debug("ATTRIBUTE column doesn't name a known item")
		return
	}

	di.ReferencedID = model.StringPtr(target.ID)
	di.ReferencedItemID = model.StringPtr(item.ID)
}
