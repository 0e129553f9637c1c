package domain

import (
	"fmt"
	"time"
)

// Card is a unit of work within a list.
// Position is a dense zero-based integer unique within the list.
type Card struct {
	Entity
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        []string   `json:"tags"`
	Position    int        `json:"position"`
	ListID      string     `json:"list_id"`
}

// CardWithAssignees is a card with its assigned users' public profiles.
type CardWithAssignees struct {
	Card
	Assignees []UserSummary `json:"assignees"`
}

// dueDateLayouts are the accepted wire formats for card due dates, tried in order.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// ParseDueDate parses an ISO date-only or date-time string.
// An empty string means no due date and yields nil.
func ParseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid due date %q: expected YYYY-MM-DD or RFC 3339", s)
}
