package processor

import (
	"github.com/sirupsen/logrus"

	"github.com/swapnilcelonis/ddgautomation/internal/catalog"
	"github.com/swapnilcelonis/ddgautomation/internal/ident"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

// MissingDimensionSynthesizer adds an empty dimension for every catalog
// attribute that no dimension matches by cleaned name. The new dimension
// keeps the catalog spelling of the name and references the attribute id.
// Running it again adds nothing.
type MissingDimensionSynthesizer struct {
	attributes *catalog.Table
}

func NewMissingDimensionSynthesizer(attributes *catalog.Table) *MissingDimensionSynthesizer {
	return &MissingDimensionSynthesizer{attributes: attributes}
}

func (s *MissingDimensionSynthesizer) Apply(in *model.CaseTable) (*model.CaseTable, error) {
	ct := in.Clone()

	for _, attr := range s.attributes.Entities() {
		if ident.Key(attr.Name) == "" {
			continue
		}

		if ct.FindDimension(attr.Name, ident.Key) != nil {
			continue
		}

		d := model.NewDimension(ident.NewID(), attr.Name)
		d.ReferencedID = attr.ID
		ct.Dimensions = append(ct.Dimensions, d)

		logrus.WithFields(logrus.Fields{"attribute": attr.Name, "id": attr.ID}).Debug("Added dimension for catalog attribute")
	}

	return ct, nil
}
