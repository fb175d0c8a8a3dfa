package cmd

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/swapnilcelonis/ddgautomation/internal/catalog"
	"github.com/swapnilcelonis/ddgautomation/internal/dataset"
	"github.com/swapnilcelonis/ddgautomation/internal/jsonio"
	"github.com/swapnilcelonis/ddgautomation/internal/spreadsheet"
)

// DDG_CASETABLE_PREFIX sets casetable.prefix and so on.
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// appFs is the filesystem all JSON documents are read from and written to.
var appFs = afero.NewOsFs()

func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// argOr returns the positional argument at i, or the configured value of key
// when there are fewer arguments.
func argOr(args []string, i int, key string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return viper.GetString(key)
}

// outputPath returns the third positional argument, or def.
func outputPath(args []string, def string) string {
	if len(args) > 2 && args[2] != "" {
		return args[2]
	}
	return def
}

func keywords() spreadsheet.Keywords {
	return spreadsheet.Keywords{
		CaseTablePrefix: viper.GetString("casetable.prefix"),
		MetadataPrefix:  viper.GetString("metadata.prefix"),
	}
}

func unresolvedSample() int {
	return viper.GetInt("unresolved.sample")
}

func loadCatalogTables(location string) (*catalog.Catalog, *catalog.Tables, error) {
	c, err := catalog.Load(appFs, location)
	if err != nil {
		return nil, nil, err
	}

	return c, c.Tables(), nil
}

// loadVariantTable reads the variant catalog when there is one. A missing or
// unreadable variant catalog only disables variant reconciliation.
func loadVariantTable() *catalog.Table {
	location := viper.GetString("variant-catalog")
	if location == "" {
		return nil
	}

	if !catalog.IsURL(location) && !jsonio.Exists(appFs, location) {
		logrus.WithField("location", location).Info("No variant catalog, variant names are left as is")
		return nil
	}

	vc, err := catalog.LoadVariants(appFs, location)
	if err != nil {
		logrus.WithError(err).Warn("Unable to read variant catalog, variant names are left as is")
		return nil
	}

	return vc.Table()
}

// openFragmentInputs opens the workbook and reads the catalog named by the
// first two positional arguments.
func openFragmentInputs(args []string) (*spreadsheet.Workbook, *catalog.Tables, error) {
	_, tables, err := loadCatalogTables(argOr(args, 1, "catalog"))
	if err != nil {
		return nil, nil, err
	}

	wb, err := spreadsheet.OpenWorkbook(argOr(args, 0, "workbook"))
	if err != nil {
		return nil, nil, err
	}

	return wb, tables, nil
}

// writeFragment sanitizes and writes a fragment to the path in the third
// positional argument, or to def.
func writeFragment(args []string, def string, fragment interface{}) (string, error) {
	out := outputPath(args, def)

	doc, err := dataset.Sanitized(fragment)
	if err != nil {
		return "", err
	}

	return out, jsonio.Write(appFs, out, doc)
}
