package meeting

import (
	"encoding/json"
	"time"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

// RecordResponse is a stored meeting analysis
type RecordResponse struct {
	ID            string          `json:"id"`
	Source        string          `json:"source"`
	ModelUsed     string          `json:"model_used"`
	ReferenceDate string          `json:"reference_date"`
	AudioObject   *string         `json:"audio_object,omitempty"`
	Analysis      json.RawMessage `json:"analysis"`
	Warnings      json.RawMessage `json:"warnings,omitempty"`
	SyncResult    json.RawMessage `json:"notion_sync,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewRecordResponse converts a meeting record for the API
func NewRecordResponse(r *entities.MeetingRecord) RecordResponse {
	return RecordResponse{
		ID:            r.ID.String(),
		Source:        string(r.Source),
		ModelUsed:     r.ModelUsed,
		ReferenceDate: r.ReferenceDate,
		AudioObject:   r.AudioObject,
		Analysis:      json.RawMessage(r.Analysis),
		Warnings:      raw(r.Warnings),
		SyncResult:    raw(r.SyncResult),
		CreatedAt:     r.CreatedAt,
	}
}

// NewRecordListResponse converts a page of meeting records
func NewRecordListResponse(records []*entities.MeetingRecord) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, NewRecordResponse(r))
	}
	return out
}

func raw(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}
