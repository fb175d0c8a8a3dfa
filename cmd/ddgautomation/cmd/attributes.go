package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swapnilcelonis/ddgautomation/internal/fragments"
)

// attributesCmd represents the attributes command
var attributesCmd = &cobra.Command{
	Use:   "attributes [workbook] [catalog] [out]",
	Short: "Writes which objects carry each attribute.",
	Long: `The attributes command reads the attribute to object worksheet. Each row names an
attribute, each column an object, and a marked cell links the two.`,
	Args: cobra.MaximumNArgs(3),
	RunE: cliCmdAttributes,
}

func init() {
	rootCmd.AddCommand(attributesCmd)
	attributesCmd.Flags().String("sheet", "AttributesToObjects", "Name of the attribute to object worksheet")
	mustBind("sheets.attributes", attributesCmd.Flags().Lookup("sheet"))
}

func cliCmdAttributes(cmd *cobra.Command, args []string) error {
	wb, tables, err := openFragmentInputs(args)
	if err != nil {
		return err
	}
	defer wb.Close()

	report := fragments.NewReport()
	fragment, err := fragments.BuildAttributeObjects(wb, viper.GetString("sheets.attributes"), tables, report)
	if err != nil {
		return err
	}
	report.Log(unresolvedSample(), tables, nil)

	out, err := writeFragment(args, "attributes.json", fragment)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d attributes to %s\n", len(fragment.Attributes), out)
	return nil
}
