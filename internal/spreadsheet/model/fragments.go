package model

// The types below are the JSON fragments written by the collaborator commands
// and merged into the combined dataset document.

type AttributeObjects struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	ObjectIDs []string `json:"objectIds"`
}

type AttributesFragment struct {
	Attributes []*AttributeObjects `json:"attributes"`
}

type EventObject struct {
	ObjectID  string `json:"objectId"`
	Qualifier string `json:"qualifier"`
}

type EventObjects struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Objects []*EventObject `json:"objects"`
}

type EventsFragment struct {
	Events []*EventObjects `json:"events"`
}

type ObjectRelation struct {
	SourceObjectID string `json:"sourceObjectId"`
	TargetObjectID string `json:"targetObjectId"`
	Qualifier      string `json:"qualifier"`
}

type RelationsFragment struct {
	Relations []*ObjectRelation `json:"relations"`
}

type VariantEvent struct {
	EventID    string  `json:"eventId"`
	Automation float64 `json:"automation"`
	Duration   float64 `json:"duration"`
}

type Variant struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Events []*VariantEvent `json:"events"`
}

type VariantsFragment struct {
	Variants []*Variant `json:"variants"`
}

// Settings holds the values of the general settings worksheet.
type Settings struct {
	Name          string `json:"name"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	NumberOfCases int    `json:"numberOfCases"`
}
