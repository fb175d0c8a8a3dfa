package catalog

import (
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/swapnilcelonis/ddgautomation/internal/ident"
)

// Table looks up catalog entities by cleaned, upper cased name.
//
// When two entities clean to the same name the first one wins. The catalogs
// are not checked for such collisions.
type Table struct {
	kind     string
	entities []Entity
	byKey    map[string]Entity
}

// NewTable builds the lookup table for entities. kind names the entity type in
// messages ("attribute", "event", ...).
func NewTable(kind string, entities []Entity) *Table {
	t := &Table{
		kind:     kind,
		entities: append([]Entity{}, entities...),
		byKey:    make(map[string]Entity, len(entities)),
	}

	for _, e := range entities {
		key := ident.Key(e.Name)
		if key == "" {
			continue
		}
		if _, ok := t.byKey[key]; !ok {
			t.byKey[key] = e
		}
	}

	return t
}

// Kind names the entity type of the table, empty for a nil table.
func (t *Table) Kind() string {
	if t == nil {
		return ""
	}
	return t.kind
}

// Lookup finds the entity whose name cleans to the same identifier as name.
func (t *Table) Lookup(name string) (Entity, bool) {
	if t == nil {
		return Entity{}, false
	}

	e, ok := t.byKey[ident.Key(name)]
	return e, ok
}

// Entities returns the entities in catalog order.
func (t *Table) Entities() []Entity {
	if t == nil {
		return nil
	}
	return append([]Entity{}, t.entities...)
}

// Suggest returns the catalog name closest to name, or "" when nothing is
// reasonably close. It is only used to make unresolved reports easier to act
// on, never to resolve a reference.
func (t *Table) Suggest(name string) string {
	if t == nil {
		return ""
	}

	key := ident.Key(name)
	if key == "" {
		return ""
	}

	best, bestDistance := "", -1
	for _, e := range t.entities {
		d := fuzzy.LevenshteinDistance(key, ident.Key(e.Name))
		if bestDistance == -1 || d < bestDistance {
			best, bestDistance = e.Name, d
		}
	}

	if bestDistance == -1 || bestDistance > maxSuggestDistance(key) {
		return ""
	}

	return best
}

func maxSuggestDistance(key string) int {
	if d := len(key) / 3; d > 2 {
		return d
	}
	return 2
}

// Tables holds the lookup tables of the entity catalog.
type Tables struct {
	Attributes *Table
	Events     *Table
	Objects    *Table
}

// Tables builds the lookup tables of the catalog.
func (c *Catalog) Tables() *Tables {
	return &Tables{
		Attributes: NewTable("attribute", c.Attributes),
		Events:     NewTable("event", c.Events),
		Objects:    NewTable("object", c.Objects),
	}
}

// Table builds the lookup table of the variant groups. A nil catalog has a
// nil table.
func (vc *VariantCatalog) Table() *Table {
	if vc == nil {
		return nil
	}
	return NewTable("variant group", vc.Groups)
}
