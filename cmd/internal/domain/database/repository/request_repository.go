package repository

import (
	"context"
	"errors"
	"fmt"

	"providerrisk/cmd/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequestFilter narrows a request listing, zero values disable a filter.
type RequestFilter struct {
	// CompanyName is a case-insensitive substring of the company name
	CompanyName string
	Status      entity.RequestStatus
	// RiskMin and RiskMax are inclusive bounds on the score
	RiskMin *int
	RiskMax *int
}

type DefaultRequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *DefaultRequestRepository {
	return &DefaultRequestRepository{db: db}
}

func (r *DefaultRequestRepository) FindByID(ctx context.Context, id string) (*entity.Request, error) {
	var request entity.Request
	err := r.db.WithContext(ctx).
		Preload("Company", withDeleted).
		Where("id = ?", id).
		First(&request).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &request, nil
}

// List returns the matching requests, most recent first, with their company loaded.
// The total ignores offset and limit.
func (r *DefaultRequestRepository) List(ctx context.Context, offset, limit int, filter RequestFilter) ([]*entity.Request, int64, error) {
	var items []*entity.Request
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Request{})
	if filter.CompanyName != "" {
		query = query.
			Joins("JOIN companies ON companies.id = requests.company_id").
			Where("companies.name_search LIKE ? ESCAPE '\\'", containsPattern(filter.CompanyName))
	}

	if filter.Status != "" {
		query = query.Where("requests.status = ?", filter.Status)
	}

	if filter.RiskMin != nil {
		query = query.Where("requests.risk_score >= ?", *filter.RiskMin)
	}

	if filter.RiskMax != nil {
		query = query.Where("requests.risk_score <= ?", *filter.RiskMax)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Company", withDeleted).
		Order("requests.created_at DESC").
		Order("requests.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Create assigns the id and creation time, the score is derived from the
// inputs before the row is written.
func (r *DefaultRequestRepository) Create(ctx context.Context, request *entity.Request) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}

	if request.Status == "" {
		request.Status = entity.StatusPending
	}

	request.SetRiskInputs(request.RiskInputs)
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(request).Error
}

// Update applies the patch. New risk inputs always come with a new score,
// both columns are written in the same statement.
func (r *DefaultRequestRepository) Update(ctx context.Context, request *entity.Request, patch entity.RequestPatch) (*entity.Request, error) {
	request.Apply(patch)

	result := r.db.WithContext(ctx).
		Model(request).
		Omit(clause.Associations).
		Select("Status", "RiskInputs", "RiskScore").
		Updates(request)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("update request %s: %w", request.ID, ErrNotFound)
	}

	updated, err := r.FindByID(ctx, request.ID)
	if err != nil {
		return nil, err
	}

	if updated == nil {
		return nil, fmt.Errorf("reload request %s: %w", request.ID, ErrNotFound)
	}
	return updated, nil
}

// Delete removes the row for good, requests have no soft delete.
func (r *DefaultRequestRepository) Delete(ctx context.Context, request *entity.Request) error {
	return r.db.WithContext(ctx).Delete(request).Error
}

// withDeleted lets a request keep showing its company after the company is soft deleted.
func withDeleted(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
