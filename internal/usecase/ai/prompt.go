package ai

import (
	"fmt"
	"time"

	"github.com/ShashankMk031/ZenAI-AI-Backend/pkg/dateparse"
)

const analysisPromptTemplate = `You are an AI project manager. Read the meeting transcript below and extract:

1. Key decisions that were made
2. Action items, with the assignee if one is named, a priority and a due date if one is mentioned
3. Risks and blockers that came up
4. A short summary of the meeting

Today is %s (%s). Copy due dates exactly as they were said (for example "next Friday" or "in 3 days"); do not convert them.

Meeting transcript:
%s

Reply with a single JSON object using exactly this structure:
{
  "key_decisions": ["decision 1", "decision 2"],
  "action_items": [
    {
      "title": "task title",
      "description": "detailed description",
      "assignee": "person name or null",
      "priority": "High | Medium | Low",
      "due_date": "date as mentioned, or null"
    }
  ],
  "risks_and_blockers": ["risk 1", "risk 2"],
  "meeting_summary": "brief summary of the meeting"
}

Return only the JSON object, with no additional text.`

// BuildAnalysisPrompt renders the extraction prompt for meetingText
func BuildAnalysisPrompt(meetingText string, ref time.Time) string {
	return fmt.Sprintf(analysisPromptTemplate, dateparse.Format(ref), ref.Weekday(), meetingText)
}
