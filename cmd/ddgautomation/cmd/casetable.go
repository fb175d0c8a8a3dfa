package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swapnilcelonis/ddgautomation/internal/dataset"
	"github.com/swapnilcelonis/ddgautomation/internal/jsonio"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/processor"
)

// casetableCmd represents the casetable command
var casetableCmd = &cobra.Command{
	Use:   "casetable [workbook] [catalog] [out]",
	Short: "Builds the case table JSON from the case table and metadata worksheets.",
	Long: `The casetable command reads every case table and metadata worksheet of the workbook,
resolves dimension and variant names against the catalogs and writes the case table.
Names that can't be resolved are reported and left as they are.`,
	Args: cobra.MaximumNArgs(3),
	RunE: cliCmdCaseTable,
}

func init() {
	rootCmd.AddCommand(casetableCmd)
}

func cliCmdCaseTable(cmd *cobra.Command, args []string) error {
	out := outputPath(args, "casetable.json")

	ct, err := buildCaseTable(argOr(args, 0, "workbook"), argOr(args, 1, "catalog"))
	if err != nil {
		return err
	}

	doc, err := dataset.Sanitized(ct)
	if err != nil {
		return err
	}

	if err := jsonio.Write(appFs, out, doc); err != nil {
		return err
	}

	fmt.Printf("Wrote case table with %d dimensions to %s\n", len(ct.Dimensions), out)
	return nil
}

// buildCaseTable loads the workbook and runs the case table pipeline over it.
// Any extra stages run after the standard ones.
func buildCaseTable(workbook, catalogLocation string, extra ...processor.Stage) (*model.CaseTable, error) {
	_, tables, err := loadCatalogTables(catalogLocation)
	if err != nil {
		return nil, err
	}

	kw := keywords()
	ct, wb, err := spreadsheet.Load(workbook, kw)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	builder := &processor.CaseTableBuilder{
		Source:     wb,
		Keywords:   kw,
		Attributes: tables.Attributes,
		Variants:   loadVariantTable(),
		Extra:      extra,
	}

	ct, reconciler, err := builder.Process(ct)
	if err != nil {
		return nil, err
	}

	reconciler.Report(unresolvedSample())
	return ct, nil
}
