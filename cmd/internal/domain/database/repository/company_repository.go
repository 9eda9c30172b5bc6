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

// DefaultCompanyRepository only ever sees active companies: every query goes
// through gorm's soft delete scope (deleted_at IS NULL).
type DefaultCompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *DefaultCompanyRepository {
	return &DefaultCompanyRepository{db: db}
}

// FindByName is an exact, case-sensitive match.
func (r *DefaultCompanyRepository) FindByName(ctx context.Context, name string) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&company).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *DefaultCompanyRepository) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&company).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &company, nil
}

// List pages through the companies in insertion order (created_at, then id).
// The total ignores offset and limit. An empty search matches everything.
func (r *DefaultCompanyRepository) List(ctx context.Context, offset, limit int, search string) ([]*entity.Company, int64, error) {
	var items []*entity.Company
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Company{})
	if search != "" {
		query = query.Where("name_search LIKE ? ESCAPE '\\'", containsPattern(search))
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at ASC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Create assigns the id and creation time. The name check is best-effort,
// the partial unique index on active names is what actually enforces it.
func (r *DefaultCompanyRepository) Create(ctx context.Context, company *entity.Company) error {
	existing, err := r.FindByName(ctx, company.Name)
	if err != nil {
		return err
	}

	if existing != nil {
		return ErrDuplicateName
	}

	if company.ID == "" {
		company.ID = uuid.NewString()
	}

	if company.Country == "" {
		company.Country = entity.DefaultCountry
	}

	err = r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(company).Error
	if isDuplicateKey(err) {
		return ErrDuplicateName
	}
	return err
}

// Update applies the present fields of the patch and persists them.
func (r *DefaultCompanyRepository) Update(ctx context.Context, company *entity.Company, patch entity.CompanyPatch) (*entity.Company, error) {
	if name := patch.Name.Get(); name != nil && *name != company.Name {
		holder, err := r.FindByName(ctx, *name)
		if err != nil {
			return nil, err
		}

		if holder != nil && holder.ID != company.ID {
			return nil, ErrDuplicateName
		}
	}

	company.Apply(patch)
	result := r.db.WithContext(ctx).
		Model(company).
		Select("Name", "NameSearch", "TaxID", "Country").
		Updates(company)

	if isDuplicateKey(result.Error) {
		return nil, ErrDuplicateName
	}

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("update company %s: %w", company.ID, ErrNotFound)
	}
	return company, nil
}

// SoftDelete stamps deleted_at. Repeating it on a deleted company is a
// no-op that keeps the first timestamp.
func (r *DefaultCompanyRepository) SoftDelete(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Delete(company).Error
}
