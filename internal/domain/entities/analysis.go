package entities

// MeetingAnalysis is the structured result of analyzing one meeting
type MeetingAnalysis struct {
	KeyDecisions     []string     `json:"key_decisions"`
	ActionItems      []ActionItem `json:"action_items"`
	RisksAndBlockers []string     `json:"risks_and_blockers"`
	MeetingSummary   string       `json:"meeting_summary"`
	Transcript       *string      `json:"transcript,omitempty"`
}

// Normalize makes sure every collection is non-nil so the analysis
// always serializes with empty arrays instead of null.
func (m *MeetingAnalysis) Normalize() {
	if m.KeyDecisions == nil {
		m.KeyDecisions = make([]string, 0)
	}
	if m.ActionItems == nil {
		m.ActionItems = make([]ActionItem, 0)
	}
	if m.RisksAndBlockers == nil {
		m.RisksAndBlockers = make([]string, 0)
	}
}

// Warning describes a field that was coerced or dropped while validating
// model output. Warnings never make an analysis fail.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
