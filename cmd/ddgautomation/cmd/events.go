package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swapnilcelonis/ddgautomation/internal/fragments"
)

// eventsCmd represents the events command
var eventsCmd = &cobra.Command{
	Use:   "events [workbook] [catalog] [out]",
	Short: "Writes which objects each event touches.",
	Long: `The events command reads the event to object worksheet. Each row names an event,
each column an object. The text of a cell qualifies the link, a bare x, 1 or true
links without a qualifier.`,
	Args: cobra.MaximumNArgs(3),
	RunE: cliCmdEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().String("sheet", "EventsToObjects", "Name of the event to object worksheet")
	mustBind("sheets.events", eventsCmd.Flags().Lookup("sheet"))
}

func cliCmdEvents(cmd *cobra.Command, args []string) error {
	wb, tables, err := openFragmentInputs(args)
	if err != nil {
		return err
	}
	defer wb.Close()

	report := fragments.NewReport()
	fragment, err := fragments.BuildEventObjects(wb, viper.GetString("sheets.events"), tables, report)
	if err != nil {
		return err
	}
	report.Log(unresolvedSample(), tables, nil)

	out, err := writeFragment(args, "events.json", fragment)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d events to %s\n", len(fragment.Events), out)
	return nil
}
