package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

// ReportRepository defines the interface for daily report persistence
type ReportRepository interface {
	// Create stores a newly generated report
	Create(ctx context.Context, report *entities.Report) error

	// FindByID retrieves a report by its ID. Returns entities.ErrReportNotFound when missing.
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Report, error)

	// FindLatest retrieves the most recently created report
	FindLatest(ctx context.Context) (*entities.Report, error)

	// List retrieves reports newest first with pagination
	List(ctx context.Context, limit, offset int) ([]*entities.Report, int64, error)
}
