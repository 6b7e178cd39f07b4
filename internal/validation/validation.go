package validation

import (
	"strings"
	"time"
)

// Violations maps a field name to a short machine-readable reason.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Required flags empty string fields.
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// OneOf flags values outside an allowed set.
func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_value"
}

// DateOrder flags an end date that falls before the start date. A nil end
// date is always valid (open-ended).
func DateOrder(field string, start time.Time, end *time.Time, v Violations) {
	if end != nil && end.Before(start) {
		v[field] = "end_before_start"
	}
}
