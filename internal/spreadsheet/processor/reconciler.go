package processor

import (
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/swapnilcelonis/ddgautomation/internal/catalog"
	"github.com/swapnilcelonis/ddgautomation/internal/ident"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

// CatalogReconciler replaces names with catalog ids. It makes two passes:
//   1. every dimension whose ReferencedID isn't an id yet is looked up by its
//      cleaned name in the attribute table.
//   2. every VARIANT distribution item whose ReferencedID isn't an id yet is
//      looked up in the variant table. This pass is skipped when there is no
//      variant table.
// Names that aren't found are left as they are and collected in
// UnresolvedAttributes and UnresolvedVariants.
type CatalogReconciler struct {
	attributes *catalog.Table
	variants   *catalog.Table

	UnresolvedAttributes *catalog.Unresolved
	UnresolvedVariants   *catalog.Unresolved
}

func NewCatalogReconciler(attributes, variants *catalog.Table) *CatalogReconciler {
	return &CatalogReconciler{
		attributes:           attributes,
		variants:             variants,
		UnresolvedAttributes: catalog.NewUnresolved("attribute"),
		UnresolvedVariants:   catalog.NewUnresolved("variant"),
	}
}

func (r *CatalogReconciler) Apply(in *model.CaseTable) (*model.CaseTable, error) {
	ct := in.Clone()

	for _, d := range ct.Dimensions {
		if ident.IsIdentifier(d.ReferencedID) {
			continue
		}

		if e, ok := r.attributes.Lookup(d.ReferencedID); ok {
			logReconciled(r.attributes, d.ReferencedID, e.ID)
			d.ReferencedID = e.ID
		} else {
			r.UnresolvedAttributes.Add(d.ReferencedID)
		}
	}

	if r.variants == nil {
		return ct, nil
	}

	for _, di := range distributionItems(ct) {
		if di.Type != model.DistributionVariant || di.ReferencedID == nil {
			continue
		}

		name := *di.ReferencedID
		if name == "" || ident.IsIdentifier(name) {
			continue
		}

		if e, ok := r.variants.Lookup(name); ok {
			logReconciled(r.variants, name, e.ID)
			di.ReferencedID = model.StringPtr(e.ID)
		} else {
			r.UnresolvedVariants.Add(name)
		}
	}

	return ct, nil
}

func logReconciled(table *catalog.Table, name, id string) {
	logrus.WithFields(logrus.Fields{"kind": table.Kind(), "name": name, "id": id}).Debug("Name reconciled")
}

// Report logs what couldn't be reconciled.
func (r *CatalogReconciler) Report(sample int) {
	r.UnresolvedAttributes.Report(sample, r.attributes)
	r.UnresolvedVariants.Report(sample, r.variants)
}

var distributionItemType = reflect.TypeOf(&model.DistributionItem{})

// distributionItems finds every distribution item reachable from ct, however
// deep it sits in the model.
func distributionItems(ct *model.CaseTable) []*model.DistributionItem {
	var found []*model.DistributionItem
	collectDistributionItems(reflect.ValueOf(ct), &found, make(map[uintptr]bool))
	return found
}

func collectDistributionItems(v reflect.Value, found *[]*model.DistributionItem, seen map[uintptr]bool) {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() || seen[v.Pointer()] {
			return
		}
		seen[v.Pointer()] = true

		if v.Type() == distributionItemType {
			*found = append(*found, v.Interface().(*model.DistributionItem))
			return
		}
		collectDistributionItems(v.Elem(), found, seen)

	case reflect.Interface:
		if !v.IsNil() {
			collectDistributionItems(v.Elem(), found, seen)
		}

	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if t.Field(i).PkgPath != "" {
				continue
			}
			collectDistributionItems(v.Field(i), found, seen)
		}

	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			collectDistributionItems(v.Index(i), found, seen)
		}

	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			collectDistributionItems(iter.Value(), found, seen)
		}
	}
}
