package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swapnilcelonis/ddgautomation/internal/fragments"
)

// relationsCmd represents the relations command
var relationsCmd = &cobra.Command{
	Use:   "relations [workbook] [catalog] [out]",
	Short: "Writes the relations between objects.",
	Long: `The relations command reads the object to object worksheet. Rows are the source
objects and columns the target objects, the text of a marked cell qualifies the relation.`,
	Args: cobra.MaximumNArgs(3),
	RunE: cliCmdRelations,
}

func init() {
	rootCmd.AddCommand(relationsCmd)
	relationsCmd.Flags().String("sheet", "ObjectsToObjects", "Name of the object to object worksheet")
	mustBind("sheets.relations", relationsCmd.Flags().Lookup("sheet"))
}

func cliCmdRelations(cmd *cobra.Command, args []string) error {
	wb, tables, err := openFragmentInputs(args)
	if err != nil {
		return err
	}
	defer wb.Close()

	report := fragments.NewReport()
	fragment, err := fragments.BuildObjectRelations(wb, viper.GetString("sheets.relations"), tables, report)
	if err != nil {
		return err
	}
	report.Log(unresolvedSample(), tables, nil)

	out, err := writeFragment(args, "relations.json", fragment)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d relations to %s\n", len(fragment.Relations), out)
	return nil
}
