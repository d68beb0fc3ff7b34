package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/entities"
	"github.com/ShashankMk031/ZenAI-AI-Backend/internal/domain/repositories"
)

// reportRepository implements the ReportRepository interface
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) repositories.ReportRepository {
	return &reportRepository{db: db}
}

// Create stores a newly generated report
func (r *reportRepository) Create(ctx context.Context, report *entities.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(report).Error
}

// FindByID retrieves a report by its ID
func (r *reportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Report, error) {
	var report entities.Report
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&report).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

// FindLatest retrieves the most recently created report
func (r *reportRepository) FindLatest(ctx context.Context) (*entities.Report, error) {
	var report entities.Report
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		First(&report).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

// List retrieves reports newest first with pagination
func (r *reportRepository) List(ctx context.Context, limit, offset int) ([]*entities.Report, int64, error) {
	var reports []*entities.Report
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Report{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 20
	}
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error

	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}
