package ledger

import (
	"fmt"
	"strings"
)

// Category is one of the four tracked hour kinds.
type Category int

const (
	IndividualSupervision Category = iota
	GroupSupervision
	Direct
	Indirect
)

// Categories lists every category in display order.
var Categories = []Category{IndividualSupervision, GroupSupervision, Direct, Indirect}

type categoryInfo struct {
	key   string
	label string
	short string
}

var categoryTable = map[Category]categoryInfo{
	IndividualSupervision: {"individual_supervision", "Individual Supervision", "Ind Sv"},
	GroupSupervision:      {"group_supervision", "Group Supervision", "Grp Sv"},
	Direct:                {"direct", "Direct (client contact)", "Direct"},
	Indirect:              {"indirect", "Indirect", "Indirect"},
}

// Key is the stable serialization key.
func (c Category) Key() string { return categoryTable[c].key }

// Label is the human-readable name.
func (c Category) Label() string { return categoryTable[c].label }

// Short is the column header used in tables.
func (c Category) Short() string { return categoryTable[c].short }

// Flag is the command-line flag name, e.g. "individual-supervision".
func (c Category) Flag() string { return strings.ReplaceAll(c.Key(), "_", "-") }

func (c Category) String() string { return c.Key() }

// ParseCategory resolves a serialization key.
func ParseCategory(key string) (Category, error) {
	for _, c := range Categories {
		if c.Key() == key {
			return c, nil
		}
	}
	keys := make([]string, len(Categories))
	for i, c := range Categories {
		keys[i] = c.Key()
	}
	return 0, fmt.Errorf("invalid category '%s'. Valid categories: %s", key, strings.Join(keys, ", "))
}
