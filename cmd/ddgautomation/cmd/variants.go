package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swapnilcelonis/ddgautomation/internal/fragments"
)

// variantsCmd represents the variants command
var variantsCmd = &cobra.Command{
	Use:   "variants [workbook] [catalog] [out]",
	Short: "Writes the events of every variant with their automation rate and duration.",
	Long: `The variants command reads every worksheet whose name starts with the variant prefix.
Each row holds an event, its automation fraction and its duration. Fractions are written
as percentages.`,
	Args: cobra.MaximumNArgs(3),
	RunE: cliCmdVariants,
}

func init() {
	rootCmd.AddCommand(variantsCmd)
	variantsCmd.Flags().String("prefix", "Variant_", "Name prefix of variant worksheets")
	mustBind("sheets.variant-prefix", variantsCmd.Flags().Lookup("prefix"))
}

func cliCmdVariants(cmd *cobra.Command, args []string) error {
	wb, tables, err := openFragmentInputs(args)
	if err != nil {
		return err
	}
	defer wb.Close()

	variants := loadVariantTable()
	report := fragments.NewReport()
	fragment, err := fragments.BuildVariants(wb, viper.GetString("sheets.variant-prefix"), tables, variants, report)
	if err != nil {
		return err
	}
	report.Log(unresolvedSample(), tables, variants)

	out, err := writeFragment(args, "variants.json", fragment)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d variants to %s\n", len(fragment.Variants), out)
	return nil
}
