// Pipeline runs the case table stages in order. Every stage takes the case
// table produced by the previous stage and returns a new version of it, the
// input is never modified. A stage that fails stops the pipeline, there are
// no partial results.
//
// The stages run in this order:
//   1. ReferenceResolver         ATTRIBUTE columns point at dimensions/items
//   2. MetadataMerger            metadata worksheets attach values to items
//   3. CatalogReconciler         names are replaced with catalog ids
//   4. MissingDimensionSynthesizer  every catalog attribute has a dimension

package processor

import (
	"github.com/swapnilcelonis/ddgautomation/internal/catalog"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

// Stage is a single step of the case table pipeline.
type Stage interface {
	Apply(ct *model.CaseTable) (*model.CaseTable, error)
}

type Pipeline struct {
	stages []Stage
}

func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run applies each stage in turn to the output of the previous one.
func (p *Pipeline) Run(ct *model.CaseTable) (*model.CaseTable, error) {
	var err error
	for _, stage := range p.stages {
		if ct, err = stage.Apply(ct); err != nil {
			return nil, err
		}
	}

	return ct, nil
}

// CaseTableBuilder wires the stages that turn a workbook into a case table.
type CaseTableBuilder struct {
	Source   spreadsheet.SheetSource
	Keywords spreadsheet.Keywords

	// Attributes is the attribute table of the entity catalog.
	Attributes *catalog.Table

	// Variants is the variant group table, nil when there is no usable
	// variant catalog.
	Variants *catalog.Table

	// Extra stages run after the standard ones.
	Extra []Stage
}

// Build creates the dimensions from the case table worksheets and runs the
// pipeline over them. The reconciler is returned so the caller can report
// what couldn't be resolved.
func (b *CaseTableBuilder) Build() (*model.CaseTable, *CatalogReconciler, error) {
	dimensions, err := spreadsheet.BuildDimensions(b.Source, b.Keywords)
	if err != nil {
		return nil, nil, err
	}

	return b.Process(model.NewCaseTable(dimensions))
}

// Process runs the pipeline over a case table that holds only the dimensions
// built from the worksheets. Those dimensions become the selected dimensions.
func (b *CaseTableBuilder) Process(in *model.CaseTable) (*model.CaseTable, *CatalogReconciler, error) {
	ct := in.Clone()
	ct.SelectedDimensions = ct.SelectedDimensions[:0]
	for _, d := range ct.Dimensions {
		ct.SelectedDimensions = append(ct.SelectedDimensions, d.ID)
	}

	reconciler := NewCatalogReconciler(b.Attributes, b.Variants)
	stages := []Stage{
		NewReferenceResolver(),
		NewMetadataMerger(b.Source, b.Keywords),
		reconciler,
		NewMissingDimensionSynthesizer(b.Attributes),
	}
	stages = append(stages, b.Extra...)

	ct, err := NewPipeline(stages...).Run(ct)
	if err != nil {
		return nil, nil, err
	}

	return ct, reconciler, nil
}
