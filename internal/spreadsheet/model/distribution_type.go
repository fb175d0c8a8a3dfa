package model

import (
	"encoding/json"
	"fmt"
)

// DistributionType is the kind of column a DistributionItem was parsed from.
type DistributionType int

const (
	DistributionVariant DistributionType = iota + 1
	DistributionAttribute
)

func (t DistributionType) String() string {
	switch t {
	case DistributionVariant:
		return "VARIANT"
	case DistributionAttribute:
		return "ATTRIBUTE"
	default:
		return "UNKNOWN"
	}
}

func (t DistributionType) MarshalJSON() ([]byte, error) {
	switch t {
	case DistributionVariant, DistributionAttribute:
		return json.Marshal(t.String())
	default:
		return nil, fmt.Errorf("unknown distribution type %d", int(t))
	}
}

func (t *DistributionType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	switch s {
	case "VARIANT":
		*t = DistributionVariant
	case "ATTRIBUTE":
		*t = DistributionAttribute
	default:
		return fmt.Errorf("unknown distribution type '%s'", s)
	}

	return nil
}
