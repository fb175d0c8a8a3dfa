package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swapnilcelonis/ddgautomation/internal/catalog"
	"github.com/swapnilcelonis/ddgautomation/internal/dataset"
	"github.com/swapnilcelonis/ddgautomation/internal/fragments"
	"github.com/swapnilcelonis/ddgautomation/internal/jsonio"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet/model"
)

// assembleCmd represents the assemble command
var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Combines the catalog, the settings and the written fragments into one dataset.",
	Long: `The assemble command reads the case table and every fragment written by the other
commands and combines them with the entity catalog into one dataset document. Only the
case table is required, missing fragments are skipped. When --workbook is given the
dataset name, dates and number of cases are read from its settings worksheet.`,
	Args: cobra.NoArgs,
	RunE: cliCmdAssemble,
}

func init() {
	rootCmd.AddCommand(assembleCmd)
	flags := assembleCmd.Flags()
	flags.StringP("workbook", "w", "", "Workbook to read the general settings from")
	flags.StringP("catalog", "c", "entities.json", "Path or URL of the entity catalog")
	flags.String("casetable", "casetable.json", "Case table written by the casetable command")
	flags.String("attributes", "attributes.json", "Fragment written by the attributes command")
	flags.String("events", "events.json", "Fragment written by the events command")
	flags.String("relations", "relations.json", "Fragment written by the relations command")
	flags.String("variants", "variants.json", "Fragment written by the variants command")
	flags.StringP("out", "o", "dataset.json", "Path of the dataset document")
}

func cliCmdAssemble(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	in := &dataset.Inputs{}

	casetablePath, _ := flags.GetString("casetable")
	in.CaseTable = &model.CaseTable{}
	if err := jsonio.Read(appFs, casetablePath, in.CaseTable); err != nil {
		return err
	}

	if workbook, _ := flags.GetString("workbook"); workbook != "" {
		settings, err := readSettings(workbook)
		if err != nil {
			return err
		}
		in.Settings = settings
	}

	catalogLocation, _ := flags.GetString("catalog")
	if catalog.IsURL(catalogLocation) || jsonio.Exists(appFs, catalogLocation) {
		c, err := catalog.Load(appFs, catalogLocation)
		if err != nil {
			return err
		}
		in.Catalog = c
	}

	attributes := &model.AttributesFragment{}
	if ok, err := readFragment(cmd, "attributes", attributes); err != nil {
		return err
	} else if ok {
		in.Attributes = attributes
	}

	events := &model.EventsFragment{}
	if ok, err := readFragment(cmd, "events", events); err != nil {
		return err
	} else if ok {
		in.Events = events
	}

	relations := &model.RelationsFragment{}
	if ok, err := readFragment(cmd, "relations", relations); err != nil {
		return err
	} else if ok {
		in.Relations = relations
	}

	variants := &model.VariantsFragment{}
	if ok, err := readFragment(cmd, "variants", variants); err != nil {
		return err
	} else if ok {
		in.Variants = variants
	}

	doc, err := dataset.Assemble(in)
	if err != nil {
		return err
	}

	out, _ := flags.GetString("out")
	if err := jsonio.Write(appFs, out, doc); err != nil {
		return err
	}

	fmt.Printf("Wrote dataset with %d dimensions to %s\n", len(in.CaseTable.Dimensions), out)
	return nil
}

// readFragment reads the fragment named by flag. It returns false when the
// fragment file doesn't exist.
func readFragment(cmd *cobra.Command, flag string, out interface{}) (bool, error) {
	path, _ := cmd.Flags().GetString(flag)
	if !jsonio.Exists(appFs, path) {
		logrus.WithField("file", path).Debugf("No %s fragment, skipping", flag)
		return false, nil
	}

	if err := jsonio.Read(appFs, path, out); err != nil {
		return false, err
	}

	return true, nil
}

func readSettings(workbook string) (*model.Settings, error) {
	wb, err := spreadsheet.OpenWorkbook(workbook)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return fragments.ReadSettings(wb, viper.GetString("sheets.settings"))
}
