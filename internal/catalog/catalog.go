// Package catalog reads the entity catalog and the variant catalog and turns
// them into lookup tables keyed by cleaned names.
//
// The catalogs are read once when a command starts. The tables built from them
// are never modified afterwards, so they can be handed to every stage that
// needs to resolve a name.
package catalog

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/swapnilcelonis/ddgautomation/internal/jsonio"
)

// ErrMalformedCatalog is returned when a catalog document doesn't have the
// expected shape.
var ErrMalformedCatalog = errors.New("malformed catalog")

// definedEntitiesKey is the wrapper the entity lists may be nested under.
const definedEntitiesKey = "definedEntities"

// Entity is a named record with a catalog issued id.
type Entity struct {
	ID   string `json:"id" mapstructure:"id"`
	Name string `json:"name" mapstructure:"name"`
}

// Catalog is the entity catalog.
type Catalog struct {
	Attributes []Entity `json:"attributes" mapstructure:"attributes"`
	Events     []Entity `json:"events" mapstructure:"events"`
	Objects    []Entity `json:"objects" mapstructure:"objects"`
}

// VariantCatalog is the variant catalog flattened into its groups.
type VariantCatalog struct {
	Groups []Entity
}

type variantGroupNode struct {
	ID     string             `mapstructure:"id"`
	Name   string             `mapstructure:"name"`
	Groups []variantGroupNode `mapstructure:"groups"`
}

// Load reads the entity catalog at location, a file path or an http(s) URL.
func Load(fs afero.Fs, location string) (*Catalog, error) {
	doc, err := readDocument(fs, location)
	if err != nil {
		return nil, err
	}

	c, err := Decode(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "entity catalog %s", location)
	}

	return c, nil
}

// Decode builds a Catalog from a decoded JSON document. The entity lists are
// either nested under "definedEntities" or found at the top level. At least
// one of them has to be present.
func Decode(doc interface{}) (*Catalog, error) {
	root, ok := doc.(map[string]interface{})
	if !ok {
		return nil, errors.Wrap(ErrMalformedCatalog, "document is not an object")
	}

	if wrapped, ok := root[definedEntitiesKey]; ok {
		if root, ok = wrapped.(map[string]interface{}); !ok {
			return nil, errors.Wrapf(ErrMalformedCatalog, "%s is not an object", definedEntitiesKey)
		}
	}

	present := false
	for _, key := range []string{"attributes", "events", "objects"} {
		if _, ok := root[key]; ok {
			present = true
		}
	}
	if !present {
		return nil, errors.Wrap(ErrMalformedCatalog, "no attributes, events or objects lists")
	}

	c := &Catalog{}
	if err := decode(root, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadVariants reads the variant catalog at location.
func LoadVariants(fs afero.Fs, location string) (*VariantCatalog, error) {
	doc, err := readDocument(fs, location)
	if err != nil {
		return nil, err
	}

	vc, err := DecodeVariants(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "variant catalog %s", location)
	}

	return vc, nil
}

// DecodeVariants builds a VariantCatalog from a document of the shape
// {"groups": [...]}. Groups may hold groups of their own, every group at every
// depth is collected, parents before their children.
func DecodeVariants(doc interface{}) (*VariantCatalog, error) {
	root, ok := doc.(map[string]interface{})
	if !ok {
		return nil, errors.Wrap(ErrMalformedCatalog, "document is not an object")
	}

	if _, ok := root["groups"].([]interface{}); !ok {
		return nil, errors.Wrap(ErrMalformedCatalog, "missing groups list")
	}

	var parsed struct {
		Groups []variantGroupNode `mapstructure:"groups"`
	}
	if err := decode(root, &parsed); err != nil {
		return nil, err
	}

	vc := &VariantCatalog{}
	var walk func(nodes []variantGroupNode)
	walk = func(nodes []variantGroupNode) {
		for _, n := range nodes {
			vc.Groups = append(vc.Groups, Entity{ID: n.ID, Name: n.Name})
			walk(n.Groups)
		}
	}
	walk(parsed.Groups)

	return vc, nil
}

func decode(input, result interface{}) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}

	if err := d.Decode(input); err != nil {
		return errors.Wrap(ErrMalformedCatalog, err.Error())
	}

	return nil
}

func readDocument(fs afero.Fs, location string) (interface{}, error) {
	if !IsURL(location) {
		return jsonio.ReadDocument(fs, location)
	}

	b, err := Fetch(location)
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := jsonio.Decode(b, location, &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// IsURL reports whether location is fetched over http rather than read from
// the filesystem. The scheme is matched ignoring case.
func IsURL(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}
