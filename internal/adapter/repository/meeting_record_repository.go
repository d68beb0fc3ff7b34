package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/repositories"
)

// meetingRecordRepository implements the MeetingRecordRepository interface
type meetingRecordRepository struct {
	db *gorm.DB
}

// NewMeetingRecordRepository creates a new meeting record repository
func NewMeetingRecordRepository(db *gorm.DB) repositories.MeetingRecordRepository {
	return &meetingRecordRepository{db: db}
}

// Create stores a new meeting record
func (r *meetingRecordRepository) Create(ctx context.Context, record *entities.MeetingRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID retrieves a meeting record by its ID
func (r *meetingRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.MeetingRecord, error) {
	var record entities.MeetingRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, err
	}
	return &record, nil
}

// UpdateSyncResult attaches the task sync outcome to a record
func (r *meetingRecordRepository) UpdateSyncResult(ctx context.Context, id uuid.UUID, result datatypes.JSON) error {
	res := r.db.WithContext(ctx).
		Model(&entities.MeetingRecord{}).
		Where("id = ?", id).
		Update("sync_result", result)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entities.ErrMeetingNotFound
	}
	return nil
}

// ListRecent retrieves the newest records
func (r *meetingRecordRepository) ListRecent(ctx context.Context, limit int) ([]*entities.MeetingRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []*entities.MeetingRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, err
	}
	return records, nil
}
