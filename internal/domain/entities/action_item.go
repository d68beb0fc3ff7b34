package entities

import "strings"

// Priority is the urgency label attached to an action item
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// DefaultPriority is used whenever the model omits or garbles a priority
const DefaultPriority = PriorityMedium

// ParsePriority matches s case-insensitively against the known priorities
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh, true
	case "medium":
		return PriorityMedium, true
	case "low":
		return PriorityLow, true
	}
	return DefaultPriority, false
}

// ActionItem is a task extracted from a meeting.
// DueDate, when set, is always a canonical YYYY-MM-DD date.
type ActionItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Assignee    *string  `json:"assignee"`
	Priority    Priority `json:"priority"`
	DueDate     *string  `json:"due_date"`
}

// AssigneeOr returns the assignee name or fallback when unassigned
func (a ActionItem) AssigneeOr(fallback string) string {
	if a.Assignee == nil || *a.Assignee == "" {
		return fallback
	}
	return *a.Assignee
}
