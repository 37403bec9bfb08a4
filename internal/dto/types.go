package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/utils"
)

// Date accepts either a calendar date ("2025-01-31") or an RFC 3339
// timestamp. Calendar dates are taken as midnight UTC.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	s = strings.TrimSpace(s)

	if t, err := time.Parse(constants.DeadlineLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
	}
	d.Time = t.UTC()
	return nil
}

// StringList accepts a JSON array whose items are strings or picker
// objects ({"value": ..., "label": ...}), as sent by tag and assignee
// widgets. Items are trimmed and de-duplicated.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected an array of strings or {value,label} objects: %w", err)
	}
	if items == nil {
		*l = nil
		return nil
	}
	*l = utils.NormalizeTags(items)
	return nil
}

// Strings returns the list as a non-nil slice.
func (l StringList) Strings() []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}
