package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/processor"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [workbook] [catalog]",
	Short: "Checks the workbook for errors and shows the case table. Nothing is written.",
	Long: `The check command runs the same steps as the casetable command, prints the resulting
case table and reports any errors and unresolved names. It doesn't write any files.`,
	Args: cobra.MaximumNArgs(2),
	RunE: cliCmdCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func cliCmdCheck(cmd *cobra.Command, args []string) error {
	ct, err := buildCaseTable(argOr(args, 0, "workbook"), argOr(args, 1, "catalog"), processor.NewDisplayer())
	if err != nil {
		fmt.Println("Checking workbook failed")
		return err
	}

	fmt.Printf("Workbook is valid, %d dimensions\n", len(ct.Dimensions))
	return nil
}
