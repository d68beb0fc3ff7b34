package ai

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

// Wednesday
var refDate = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

const wellFormedReply = `{
  "key_decisions": ["Ship v2 on Friday"],
  "action_items": [
    {"title": "Write release notes", "description": "Cover API changes", "assignee": "Priya", "priority": "high", "due_date": "tomorrow"},
    {"title": "Update dashboards", "description": "", "assignee": null, "priority": "Low", "due_date": null}
  ],
  "risks_and_blockers": ["Staging is flaky"],
  "meeting_summary": "Release planning for v2."
}`

func TestParser_Parse_WellFormed(t *testing.T) {
	res, err := NewParser(nil).Parse(wellFormedReply, refDate)
	require.NoError(t, err)

	a := res.Analysis
	assert.Equal(t, []string{"Ship v2 on Friday"}, a.KeyDecisions)
	assert.Equal(t, []string{"Staging is flaky"}, a.RisksAndBlockers)
	assert.Equal(t, "Release planning for v2.", a.MeetingSummary)
	require.Len(t, a.ActionItems, 2)

	first := a.ActionItems[0]
	assert.Equal(t, "Write release notes", first.Title)
	assert.Equal(t, entities.PriorityHigh, first.Priority)
	require.NotNil(t, first.Assignee)
	assert.Equal(t, "Priya", *first.Assignee)
	require.NotNil(t, first.DueDate)
	assert.Equal(t, "2025-10-02", *first.DueDate)

	second := a.ActionItems[1]
	assert.Nil(t, second.Assignee)
	assert.Nil(t, second.DueDate)
	assert.Equal(t, entities.PriorityLow, second.Priority)

	assert.Empty(t, res.Warnings)
}

func TestParser_Parse_FencedEqualsUnfenced(t *testing.T) {
	p := NewParser(nil)

	plain, err := p.Parse(wellFormedReply, refDate)
	require.NoError(t, err)

	for _, fenced := range []string{
		"```json\n" + wellFormedReply + "\n```",
		"```\n" + wellFormedReply + "\n```",
		"  ```json" + wellFormedReply + "```  ",
	} {
		got, err := p.Parse(fenced, refDate)
		require.NoError(t, err)
		assert.Equal(t, plain.Analysis, got.Analysis)
	}
}

func TestParser_Parse_RecoversObjectFromProse(t *testing.T) {
	reply := "Sure! Here is the analysis:\n" + wellFormedReply + "\nLet me know if you need more."

	res, err := NewParser(nil).Parse(reply, refDate)
	require.NoError(t, err)
	assert.Len(t, res.Analysis.ActionItems, 2)
}

func TestParser_Parse_NotAnObject(t *testing.T) {
	for _, reply := range []string{
		"",
		"I could not find any action items.",
		`["a", "b"]`,
		"null",
		"```json\n{\"key_decisions\": [\n```",
	} {
		res, err := NewParser(nil).Parse(reply, refDate)
		require.Error(t, err, "reply %q", reply)
		assert.Nil(t, res)

		var ee *entities.ExtractionError
		assert.True(t, errors.As(err, &ee))
	}
}

func TestParser_Parse_BadDueDateBecomesNilWithWarning(t *testing.T) {
	reply := `{"key_decisions": [], "risks_and_blockers": [], "meeting_summary": "s",
		"action_items": [{"title": "Plan offsite", "due_date": "sometime soon"}]}`

	res, err := NewParser(nil).Parse(reply, refDate)
	require.NoError(t, err)
	require.Len(t, res.Analysis.ActionItems, 1)
	assert.Nil(t, res.Analysis.ActionItems[0].DueDate)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "action_items[0].due_date", res.Warnings[0].Field)
}

func TestParser_Parse_MissingFieldsDefaultToEmpty(t *testing.T) {
	res, err := NewParser(nil).Parse(`{"meeting_summary": "short sync"}`, refDate)
	require.NoError(t, err)

	a := res.Analysis
	assert.NotNil(t, a.KeyDecisions)
	assert.NotNil(t, a.ActionItems)
	assert.NotNil(t, a.RisksAndBlockers)
	assert.Empty(t, a.ActionItems)
	assert.Equal(t, "short sync", a.MeetingSummary)
	assert.Len(t, res.Warnings, 3)
}

func TestParser_Parse_RepairsItems(t *testing.T) {
	reply := `{
	  "key_decisions": "Adopt trunk-based development",
	  "action_items": [
	    {"description": "Migrate CI", "priority": "urgent"},
	    "not an object",
	    {},
	    {"title": "Book room", "assignee": "null", "priority": "MEDIUM", "due_date": "next Friday"},
	    {"title": 42, "description": "Numbers are not titles"}
	  ],
	  "risks_and_blockers": ["", 7, "Budget freeze"],
	  "meeting_summary": "Process changes."
	}`

	res, err := NewParser(nil).Parse(reply, refDate)
	require.NoError(t, err)
	a := res.Analysis

	assert.Equal(t, []string{"Adopt trunk-based development"}, a.KeyDecisions)
	assert.Equal(t, []string{"Budget freeze"}, a.RisksAndBlockers)

	require.Len(t, a.ActionItems, 3)
	assert.Equal(t, UntitledTask, a.ActionItems[0].Title)
	assert.Equal(t, entities.PriorityMedium, a.ActionItems[0].Priority)

	assert.Equal(t, "Book room", a.ActionItems[1].Title)
	assert.Nil(t, a.ActionItems[1].Assignee)
	assert.Equal(t, entities.PriorityMedium, a.ActionItems[1].Priority)
	require.NotNil(t, a.ActionItems[1].DueDate)
	assert.Equal(t, "2025-10-10", *a.ActionItems[1].DueDate)

	assert.Equal(t, UntitledTask, a.ActionItems[2].Title)
	assert.Equal(t, "Numbers are not titles", a.ActionItems[2].Description)

	fields := make([]string, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		fields = append(fields, w.Field)
	}
	assert.Contains(t, fields, "action_items[0].title")
	assert.Contains(t, fields, "action_items[0].priority")
	assert.Contains(t, fields, "action_items[1]")
	assert.Contains(t, fields, "action_items[2]")
	assert.Contains(t, fields, "action_items[4].title")
	assert.Contains(t, fields, "risks_and_blockers[1]")
}

func TestParser_Parse_NullCollections(t *testing.T) {
	res, err := NewParser(nil).Parse(`{"key_decisions": null, "action_items": null, "risks_and_blockers": null, "meeting_summary": null}`, refDate)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.NotNil(t, res.Analysis.ActionItems)
	assert.Equal(t, "", res.Analysis.MeetingSummary)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("  {\"a\":1}  "))
}
