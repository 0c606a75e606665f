package models

import "fmt"

// Filter selects which tasks a view shows.
type Filter int

const (
	FilterAll Filter = iota
	FilterCompleted
	FilterNotCompleted
)

var filterNames = map[Filter]string{
	FilterAll:          "all",
	FilterCompleted:    "completed",
	FilterNotCompleted: "not_completed",
}

// Filters lists every recognised filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterCompleted, FilterNotCompleted}
}

// ParseFilter converts a wire name into a Filter.
func ParseFilter(s string) (Filter, error) {
	for f, name := range filterNames {
		if name == s {
			return f, nil
		}
	}
	return FilterAll, fmt.Errorf("unknown filter %q: must be 'all', 'completed', or 'not_completed'", s)
}

func (f Filter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// Match reports whether the task belongs in a view using this filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterCompleted:
		return t.Completed
	case FilterNotCompleted:
		return !t.Completed
	default:
		return true
	}
}

// Apply returns the tasks matching the filter, preserving order.
// FilterAll returns a copy of the input.
func (f Filter) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
