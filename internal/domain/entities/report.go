package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ReportSummary holds the headline counts of a daily report
type ReportSummary struct {
	ReferenceDate string          `json:"reference_date"`
	TotalOpen     int             `json:"total_open"`
	ToDo          int             `json:"todo"`
	InProgress    int             `json:"in_progress"`
	Overdue       int             `json:"overdue"`
	AtRisk        int             `json:"at_risk"`
	OnTrack       int             `json:"on_track"`
	Workload      []WorkloadEntry `json:"workload"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// WorkloadEntry is the number of active tasks held by one assignee
type WorkloadEntry struct {
	Assignee    string `json:"assignee"`
	ActiveTasks int    `json:"active_tasks"`
}

// Report is a persisted daily project report
type Report struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ReportDate   string         `json:"report_date" gorm:"type:varchar(10);not null;index"`
	Markdown     string         `json:"markdown" gorm:"type:text;not null"`
	Summary      datatypes.JSON `json:"summary" gorm:"type:jsonb;default:'{}'"`
	OverdueCount int            `json:"overdue_count" gorm:"type:integer;default:0"`
	AtRiskCount  int            `json:"at_risk_count" gorm:"type:integer;default:0"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for Report
func (Report) TableName() string {
	return "reports"
}
