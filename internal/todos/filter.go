package todos

import (
	"fmt"
	"strings"
)

// Filter selects which items are displayed.
type Filter int

const (
	FilterAll Filter = iota
	FilterActive
	FilterCompleted
)

var filterNames = map[Filter]string{
	FilterAll:       "all",
	FilterActive:    "active",
	FilterCompleted: "completed",
}

// Filters returns every filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

func (f Filter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("filter(%d)", int(f))
}

// Label returns the title-cased name used by the footer.
func (f Filter) Label() string {
	name := f.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// Next cycles all → active → completed → all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Match reports whether item belongs to the filtered subset.
func (f Filter) Match(item Item) bool {
	switch f {
	case FilterActive:
		return !item.Completed
	case FilterCompleted:
		return item.Completed
	default:
		return true
	}
}

// ParseFilter converts a case-insensitive name into a Filter. An empty string
// selects FilterAll.
func ParseFilter(value string) (Filter, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return FilterAll, nil
	}
	for f, name := range filterNames {
		if name == v {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("unknown filter %q (want all, active or completed)", value)
}

// Apply returns the items matching f in their original order. The result
// never aliases the input slice.
func Apply(items []Item, f Filter) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	return out
}
