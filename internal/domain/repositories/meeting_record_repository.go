package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
)

// MeetingRecordRepository defines the interface for analyzed meeting persistence
type MeetingRecordRepository interface {
	// Create stores a new meeting record
	Create(ctx context.Context, record *entities.MeetingRecord) error

	// FindByID retrieves a meeting record. Returns entities.ErrMeetingNotFound when missing.
	FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingRecord, error)

	// UpdateSyncResult attaches the task sync outcome to a record
	UpdateSyncResult(ctx context.Context, id uuid.UUID, result datatypes.JSON) error

	// ListRecent retrieves the newest records
	ListRecent(ctx context.Context, limit int) ([]*entities.MeetingRecord, error)
}
