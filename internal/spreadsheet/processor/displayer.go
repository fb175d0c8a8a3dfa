package processor

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

// Displayer prints a readable summary of the case table. It is a pipeline
// stage that passes the case table through unchanged.
type Displayer struct {
	out io.Writer
}

func NewDisplayer() *Displayer {
	return &Displayer{out: os.Stdout}
}

func NewDisplayerTo(out io.Writer) *Displayer {
	return &Displayer{out: out}
}

func (d *Displayer) Apply(ct *model.CaseTable) (*model.CaseTable, error) {
	selected := make(map[string]bool)
	for _, id := range ct.SelectedDimensions {
		selected[id] = true
	}

	for _, dim := range ct.Dimensions {
		origin := "catalog"
		if selected[dim.ID] {
			origin = "worksheet"
		}
		fmt.Fprintf(d.out, "Dimension %s (%s, references %s)\n", dim.Name, origin, dim.ReferencedID)

		if len(dim.DistributionItems) != 0 {
			fmt.Fprintf(d.out, "%sDistributions:\n", spaces(4))
			for _, di := range dim.DistributionItems {
				d.showDistributionItem(6, di)
			}
		}

		if len(dim.AttributeMetadataItems) != 0 {
			fmt.Fprintf(d.out, "%sMetadata:\n", spaces(4))
			for _, column := range dim.AttributeMetadataItems {
				fmt.Fprintf(d.out, "%s%s\n", spaces(6), column.Name)
			}
		}

		fmt.Fprintf(d.out, "%sItems:\n", spaces(4))
		for _, item := range dim.Items {
			d.showItem(6, item)
		}
	}

	return ct, nil
}

func (d *Displayer) showDistributionItem(numberOfSpaces int, di *model.DistributionItem) {
	ref := "(unresolved)"
	if di.ReferencedID != nil {
		ref = *di.ReferencedID
	}
	if di.ReferencedItemID != nil {
		ref = fmt.Sprintf("%s/%s", ref, *di.ReferencedItemID)
	}
	fmt.Fprintf(d.out, "%s%s %s -> %s\n", spaces(numberOfSpaces), di.Type, di.Alias, ref)
}

func (d *Displayer) showItem(numberOfSpaces int, item *model.Item) {
	std := "No value given"
	if item.StdDistribution != nil {
		std = fmt.Sprintf("%v", *item.StdDistribution)
	}
	fmt.Fprintf(d.out, "%s%s: %s", spaces(numberOfSpaces), item.Value, std)

	for _, dist := range item.Distributions {
		if dist.Value == nil {
			fmt.Fprint(d.out, " -")
		} else {
			fmt.Fprintf(d.out, " %v", *dist.Value)
		}
	}
	fmt.Fprintln(d.out)
}

func spaces(count int) string {
	return strings.Repeat(" ", count)
}
