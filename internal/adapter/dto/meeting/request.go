package meeting

// AnalyzeRequest represents the request to analyze meeting text. Blank
// text is rejected by the analyzer with a dedicated error code.
type AnalyzeRequest struct {
	MeetingText   string `json:"meeting_text"`
	ReferenceDate string `json:"reference_date,omitempty" validate:"omitempty,canonical_date"`
}

// AnalyzeAndSyncRequest represents the request to analyze meeting text and
// create a task per action item
type AnalyzeAndSyncRequest struct {
	MeetingText   string `json:"meeting_text"`
	ReferenceDate string `json:"reference_date,omitempty" validate:"omitempty,canonical_date"`
	DatabaseID    string `json:"database_id,omitempty" validate:"omitempty,max=64"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}
