// Package dataset assembles the combined dataset document from the entity
// catalog, the general settings and the fragments written by the other
// commands.
//
// The document starts out as the catalog entities with empty variants and
// an empty case table:
//     {"id", "name",
//      "configuration":   {"startDate", "endDate", "numberOfCases"},
//      "definedEntities": {"events", "objects", "attributes", "relations"},
//      "variants":        [],
//      "caseTable":       {"dimensions", "selectedDimensions"}}
// The settings are merged in (RFC 7386) and every fragment then replaces the
// member it describes (RFC 6902 add), in the order attributes, events,
// relations, variants and case table.
package dataset

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/pkg/errors"
	"github.com/wI2L/jsondiff"

	"github.com/swapnilcelonis/ddgautomation/internal/catalog"
	"github.com/swapnilcelonis/ddgautomation/internal/ident"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

// Inputs are the parts of the dataset. Only the case table is required.
type Inputs struct {
	Settings   *model.Settings
	Catalog    *catalog.Catalog
	CaseTable  *model.CaseTable
	Attributes *model.AttributesFragment
	Events     *model.EventsFragment
	Relations  *model.RelationsFragment
	Variants   *model.VariantsFragment
}

type document struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Configuration   configuration   `json:"configuration"`
	DefinedEntities definedEntities `json:"definedEntities"`
	Variants        []interface{}   `json:"variants"`
	CaseTable       model.CaseTable `json:"caseTable"`
}

type configuration struct {
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	NumberOfCases int    `json:"numberOfCases"`
}

type definedEntities struct {
	Events     []catalog.Entity `json:"events"`
	Objects    []catalog.Entity `json:"objects"`
	Attributes []catalog.Entity `json:"attributes"`
	Relations  []interface{}    `json:"relations"`
}

func newDocument(c *catalog.Catalog) *document {
	doc := &document{
		ID: ident.NewID(),
		DefinedEntities: definedEntities{
			Events:     []catalog.Entity{},
			Objects:    []catalog.Entity{},
			Attributes: []catalog.Entity{},
			Relations:  []interface{}{},
		},
		Variants:  []interface{}{},
		CaseTable: *model.NewCaseTable(nil),
	}

	if c != nil {
		doc.DefinedEntities.Events = append(doc.DefinedEntities.Events, c.Events...)
		doc.DefinedEntities.Objects = append(doc.DefinedEntities.Objects, c.Objects...)
		doc.DefinedEntities.Attributes = append(doc.DefinedEntities.Attributes, c.Attributes...)
	}

	return doc
}

// Assemble builds the sanitized dataset document. The result is a decoded
// JSON value ready to be written.
func Assemble(in *Inputs) (interface{}, error) {
	if in.CaseTable == nil {
		return nil, errors.New("dataset needs a case table")
	}

	doc, err := json.Marshal(newDocument(in.Catalog))
	if err != nil {
		return nil, err
	}

	if in.Settings != nil {
		if doc, err = mergeSettings(doc, in.Settings); err != nil {
			return nil, err
		}
	}

	if doc, err = applyFragments(doc, in); err != nil {
		return nil, err
	}

	var out interface{}
	if err := json.Unmarshal(doc, &out); err != nil {
		return nil, errors.Wrap(err, "unable to decode assembled dataset")
	}

	return Sanitize(out), nil
}

func mergeSettings(doc []byte, s *model.Settings) ([]byte, error) {
	patch, err := json.Marshal(map[string]interface{}{
		"name": s.Name,
		"configuration": configuration{
			StartDate:     s.StartDate,
			EndDate:       s.EndDate,
			NumberOfCases: s.NumberOfCases,
		},
	})
	if err != nil {
		return nil, err
	}

	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, errors.Wrap(err, "unable to merge settings")
	}

	return merged, nil
}

// applyFragments replaces whole members rather than merging them, merge
// patches drop null values and the case table depends on them.
func applyFragments(doc []byte, in *Inputs) ([]byte, error) {
	var ops jsondiff.Patch

	add := func(path string, value interface{}) {
		ops = append(ops, jsondiff.Operation{Type: jsondiff.OperationAdd, Path: path, Value: value})
	}

	if in.Attributes != nil {
		add("/definedEntities/attributes", in.Attributes.Attributes)
	}
	if in.Events != nil {
		add("/definedEntities/events", in.Events.Events)
	}
	if in.Relations != nil {
		add("/definedEntities/relations", in.Relations.Relations)
	}
	if in.Variants != nil {
		add("/variants", in.Variants.Variants)
	}
	add("/caseTable", in.CaseTable)

	raw, err := json.Marshal(ops)
	if err != nil {
		return nil, err
	}

	patch, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode dataset patch")
	}

	patched, err := patch.Apply(doc)
	if err != nil {
		return nil, errors.Wrap(err, "unable to apply dataset patch")
	}

	return patched, nil
}
