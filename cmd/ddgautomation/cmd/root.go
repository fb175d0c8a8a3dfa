package cmd

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ddgautomation",
	Short: "Builds data generation datasets from an excel workbook and an entity catalog.",
	Long: `ddgautomation reads the case table, metadata and relationship worksheets of an
excel workbook, resolves the names in them against an entity catalog and writes
the JSON documents that make up a data generation dataset.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("verbose") {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func printError(err error) {
	var dupErr *spreadsheet.DuplicateColumnsError
	if errors.As(err, &dupErr) {
		err = dupErr.Errors()
		fmt.Fprintln(os.Stderr, "Error: duplicate metadata column names")
	} else {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}

	if merr, ok := err.(*multierror.Error); ok {
		for _, e := range merr.Errors {
			fmt.Fprintln(os.Stderr, " ", e)
		}
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	logrus.SetOutput(os.Stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ddgautomation.yaml)")
	flags.BoolP("verbose", "v", false, "Log debug output")
	flags.String("variant-catalog", "variantgroups.json", "Path or URL of the variant catalog")
	flags.String("casetable-prefix", spreadsheet.DefaultKeywords.CaseTablePrefix, "Name prefix of case table worksheets")
	flags.String("metadata-prefix", spreadsheet.DefaultKeywords.MetadataPrefix, "Name prefix of metadata worksheets")
	flags.Int("unresolved-sample", 10, "Number of unresolved names to list")

	mustBind("verbose", flags.Lookup("verbose"))
	mustBind("variant-catalog", flags.Lookup("variant-catalog"))
	mustBind("casetable.prefix", flags.Lookup("casetable-prefix"))
	mustBind("metadata.prefix", flags.Lookup("metadata-prefix"))
	mustBind("unresolved.sample", flags.Lookup("unresolved-sample"))

	viper.SetDefault("workbook", "input.xlsx")
	viper.SetDefault("catalog", "entities.json")
	viper.SetDefault("sheets.attributes", "AttributesToObjects")
	viper.SetDefault("sheets.events", "EventsToObjects")
	viper.SetDefault("sheets.relations", "ObjectsToObjects")
	viper.SetDefault("sheets.variant-prefix", "Variant_")
	viper.SetDefault("sheets.settings", "Settings")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".ddgautomation" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".ddgautomation")
	}

	viper.SetEnvPrefix("DDG")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logrus.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}
