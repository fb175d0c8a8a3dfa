package catalog

import (
	"github.com/sirupsen/logrus"
)

// DefaultSampleSize is how many unresolved values a report lists.
const DefaultSampleSize = 10

// Unresolved collects names that couldn't be found in a catalog. Values are
// kept once, in the order they were first seen.
type Unresolved struct {
	kind   string
	values []string
	seen   map[string]bool
}

func NewUnresolved(kind string) *Unresolved {
	return &Unresolved{
		kind: kind,
		seen: make(map[string]bool),
	}
}

func (u *Unresolved) Add(value string) {
	if u.seen[value] {
		return
	}
	u.seen[value] = true
	u.values = append(u.values, value)
}

func (u *Unresolved) Len() int {
	return len(u.values)
}

func (u *Unresolved) Values() []string {
	return append([]string{}, u.values...)
}

// Report logs a warning with the number of unresolved values and up to sample
// of them, each with the closest name in table when there is one.
func (u *Unresolved) Report(sample int, table *Table) {
	if u.Len() == 0 {
		return
	}

	if sample <= 0 {
		sample = DefaultSampleSize
	}

	logrus.WithFields(logrus.Fields{
		"kind":  u.kind,
		"count": u.Len(),
	}).Warnf("%d unresolved %s reference(s) left as is", u.Len(), u.kind)

	for i, value := range u.values {
		if i == sample {
			logrus.Warnf("  ... and %d more", u.Len()-sample)
			break
		}

		fields := logrus.Fields{"value": value}
		if s := table.Suggest(value); s != "" {
			fields["closest"] = s
		}
		logrus.WithFields(fields).Warnf("  unresolved %s", u.kind)
	}
}
