package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/dateparse"
)

// UntitledTask is used for action items the model returned without a title
const UntitledTask = "Untitled Task"

// ParseResult is a validated analysis plus the field-level warnings raised
// while coercing the model output.
type ParseResult struct {
	Analysis entities.MeetingAnalysis `json:"analysis"`
	Warnings []entities.Warning       `json:"warnings"`
}

// Parser validates raw model replies into MeetingAnalysis values
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a new Parser instance
func NewParser(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse decodes raw into a MeetingAnalysis. Only a reply that cannot be read
// as a JSON object fails; every field-level problem is repaired and reported
// as a warning instead. Relative due dates are resolved against ref.
func (p *Parser) Parse(raw string, ref time.Time) (*ParseResult, error) {
	fields, err := decodeObject(extractJSON(raw))
	if err != nil {
		// Models sometimes wrap the object in prose; retry on the outermost braces.
		start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}")
		if start >= 0 && end > start {
			fields, err = decodeObject(raw[start : end+1])
		}
	}
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("❌ Model reply is not a JSON object",
				zap.Int("reply_length", len(raw)),
				zap.Error(err),
			)
		}
		return nil, &entities.ExtractionError{
			Reason: "model reply is not a JSON object",
			Raw:    truncate(raw, 500),
			Err:    err,
		}
	}

	v := &fieldValidator{ref: ref}
	analysis := entities.MeetingAnalysis{
		KeyDecisions:     v.stringList(fields, "key_decisions"),
		ActionItems:      v.actionItems(fields),
		RisksAndBlockers: v.stringList(fields, "risks_and_blockers"),
		MeetingSummary:   v.summary(fields),
	}
	analysis.Normalize()

	if p.logger != nil && len(v.warnings) > 0 {
		p.logger.Info("⚠️ Model output repaired during validation",
			zap.Int("warnings", len(v.warnings)),
			zap.Int("action_items", len(analysis.ActionItems)),
		)
	}

	warnings := v.warnings
	if warnings == nil {
		warnings = make([]entities.Warning, 0)
	}
	return &ParseResult{Analysis: analysis, Warnings: warnings}, nil
}

func decodeObject(s string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("top-level value is null")
	}
	return fields, nil
}

type fieldValidator struct {
	ref      time.Time
	warnings []entities.Warning
}

func (v *fieldValidator) warn(field, format string, args ...interface{}) {
	v.warnings = append(v.warnings, entities.Warning{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// stringList accepts an array of strings or a single string. Non-string
// and blank entries are dropped.
func (v *fieldValidator) stringList(fields map[string]json.RawMessage, name string) []string {
	out := make([]string, 0)
	raw, ok := fields[name]
	if !ok {
		v.warn(name, "missing, defaulted to empty list")
		return out
	}
	if isNull(raw) {
		return out
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if s := strings.TrimSpace(single); s != "" {
			out = append(out, s)
		}
		return out
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		v.warn(name, "expected a list of strings, defaulted to empty list")
		return out
	}
	for i, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			v.warn(fmt.Sprintf("%s[%d]", name, i), "dropped non-string entry")
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (v *fieldValidator) summary(fields map[string]json.RawMessage) string {
	raw, ok := fields["meeting_summary"]
	if !ok {
		v.warn("meeting_summary", "missing, defaulted to empty")
		return ""
	}
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		v.warn("meeting_summary", "expected a string, defaulted to empty")
		return ""
	}
	return strings.TrimSpace(s)
}

func (v *fieldValidator) actionItems(fields map[string]json.RawMessage) []entities.ActionItem {
	out := make([]entities.ActionItem, 0)
	raw, ok := fields["action_items"]
	if !ok {
		v.warn("action_items", "missing, defaulted to empty list")
		return out
	}
	if isNull(raw) {
		return out
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		v.warn("action_items", "expected a list of objects, defaulted to empty list")
		return out
	}

	for i, item := range items {
		prefix := fmt.Sprintf("action_items[%d]", i)
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			v.warn(prefix, "dropped entry that is not an object")
			continue
		}
		ai, keep := v.actionItem(prefix, obj)
		if !keep {
			continue
		}
		out = append(out, ai)
	}
	return out
}

func (v *fieldValidator) actionItem(prefix string, obj map[string]json.RawMessage) (entities.ActionItem, bool) {
	title := v.optionalString(prefix+".title", obj["title"])
	description := v.optionalString(prefix+".description", obj["description"])
	assignee := v.optionalString(prefix+".assignee", obj["assignee"])
	priority := v.optionalString(prefix+".priority", obj["priority"])
	due := v.optionalString(prefix+".due_date", obj["due_date"])

	if title == "" && description == "" && assignee == "" && due == "" {
		v.warn(prefix, "dropped empty action item")
		return entities.ActionItem{}, false
	}

	item := entities.ActionItem{
		Title:       title,
		Description: description,
		Priority:    entities.DefaultPriority,
	}
	if item.Title == "" {
		item.Title = UntitledTask
		v.warn(prefix+".title", "missing, defaulted to %q", UntitledTask)
	}

	if !isUnset(assignee) {
		item.Assignee = &assignee
	}

	if priority != "" {
		pr, ok := entities.ParsePriority(priority)
		if !ok {
			v.warn(prefix+".priority", "unknown priority %q, defaulted to %s", priority, entities.DefaultPriority)
		}
		item.Priority = pr
	}

	if !isUnset(due) {
		d, err := dateparse.Normalize(due, v.ref)
		if err != nil {
			v.warn(prefix+".due_date", "could not normalize %q, left unset", due)
		} else {
			item.DueDate = &d
		}
	}

	return item, true
}

// optionalString reads a string value; null and absent are empty, other
// JSON types are dropped with a warning.
func (v *fieldValidator) optionalString(field string, raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		v.warn(field, "expected a string, ignored")
		return ""
	}
	return strings.TrimSpace(s)
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// isUnset reports placeholder values models use for "nobody" or "no date"
func isUnset(s string) bool {
	switch strings.ToLower(s) {
	case "", "null", "none", "n/a", "unassigned":
		return true
	}
	return false
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	} else {
		return content
	}
	if idx := strings.LastIndex(content, "```"); idx != -1 {
		content = content[:idx]
	}
	return strings.TrimSpace(content)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
