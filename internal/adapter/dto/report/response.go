package report

import (
	"encoding/json"
	"time"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

// Response is a stored daily report
type Response struct {
	ID           string          `json:"id"`
	ReportDate   string          `json:"report_date"`
	Markdown     string          `json:"markdown"`
	Summary      json.RawMessage `json:"summary"`
	OverdueCount int             `json:"overdue_count"`
	AtRiskCount  int             `json:"at_risk_count"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewResponse converts a report for the API
func NewResponse(r *entities.Report) Response {
	summary := json.RawMessage(r.Summary)
	if len(summary) == 0 {
		summary = json.RawMessage("{}")
	}
	return Response{
		ID:           r.ID.String(),
		ReportDate:   r.ReportDate,
		Markdown:     r.Markdown,
		Summary:      summary,
		OverdueCount: r.OverdueCount,
		AtRiskCount:  r.AtRiskCount,
		CreatedAt:    r.CreatedAt,
	}
}

// NewListResponse converts a page of reports
func NewListResponse(reports []*entities.Report) []Response {
	out := make([]Response, 0, len(reports))
	for _, r := range reports {
		out = append(out, NewResponse(r))
	}
	return out
}

// DigestResponse is the outcome of sending the daily digest
type DigestResponse struct {
	Report   Response                `json:"report"`
	Delivery entities.DispatchResult `json:"delivery"`
}
