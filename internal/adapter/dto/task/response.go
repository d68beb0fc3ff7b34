package task

import "github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"

// ListResponse is a set of classified tasks at a reference date
type ListResponse struct {
	ReferenceDate string                  `json:"reference_date"`
	Count         int                     `json:"count"`
	Tasks         []entities.TaskSnapshot `json:"tasks"`
}

// NewListResponse wraps tasks, never returning a null list
func NewListResponse(referenceDate string, tasks []entities.TaskSnapshot) ListResponse {
	if tasks == nil {
		tasks = make([]entities.TaskSnapshot, 0)
	}
	return ListResponse{ReferenceDate: referenceDate, Count: len(tasks), Tasks: tasks}
}

// DashboardResponse summarizes open work at a reference date
type DashboardResponse struct {
	ReferenceDate string                  `json:"reference_date"`
	TotalOpen     int                     `json:"total_open"`
	OverdueCount  int                     `json:"overdue_count"`
	AtRiskCount   int                     `json:"at_risk_count"`
	OnTrackCount  int                     `json:"on_track_count"`
	Overdue       []entities.TaskSnapshot `json:"overdue"`
	AtRisk        []entities.TaskSnapshot `json:"at_risk"`
}

// NewDashboardResponse builds the dashboard view of a monitor report
func NewDashboardResponse(r *entities.MonitorReport) DashboardResponse {
	overdue := NewListResponse(r.ReferenceDate, r.Overdue).Tasks
	atRisk := NewListResponse(r.ReferenceDate, r.AtRisk).Tasks
	return DashboardResponse{
		ReferenceDate: r.ReferenceDate,
		TotalOpen:     len(r.Open),
		OverdueCount:  len(overdue),
		AtRiskCount:   len(atRisk),
		OnTrackCount:  len(r.Open) - len(overdue) - len(atRisk),
		Overdue:       overdue,
		AtRisk:        atRisk,
	}
}
