package entity

import (
	"strings"

	"providerrisk/cmd/internal/utils/optional"

	"gorm.io/gorm"
)

const DefaultCountry = "CL"

// Company is a third-party provider that risk requests are raised against.
//
// Companies are never removed from storage, deleting one only sets DeletedAt.
// Names are unique among the companies that are not deleted.
type Company struct {
	ID      string  `gorm:"primaryKey;size:36"`
	Name    string  `gorm:"size:100;not null;uniqueIndex:idx_companies_active_name,where:deleted_at IS NULL"`
	TaxID   *string `gorm:"size:50"`
	Country string  `gorm:"size:2;not null;default:'CL'"`

	// NameSearch is the lowercased name that searches match against.
	NameSearch string `gorm:"size:100;index"`

	CreatedAt int64          `gorm:"not null;autoCreateTime:milli"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Requests []*Request `gorm:"foreignKey:CompanyID;references:ID"`
}

// CompanyPatch carries a partial update, absent fields are left untouched.
type CompanyPatch struct {
	Name    optional.Value[string]
	TaxID   optional.Value[string]
	Country optional.Value[string]
}

// Apply writes the present fields of the patch into the company.
//
// A null TaxID clears it. Name and Country cannot be null, a null
// there is ignored (callers are expected to reject it beforehand).
func (c *Company) Apply(p CompanyPatch) {
	if name := p.Name.Get(); name != nil {
		c.Name = *name
		c.NameSearch = strings.ToLower(c.Name)
	}
	if p.TaxID.IsSet() {
		c.TaxID = p.TaxID.Get()
	}
	if country := p.Country.Get(); country != nil {
		c.Country = *country
	}
}

func (c *Company) IsDeleted() bool {
	return c.DeletedAt.Valid
}

// BeforeSave keeps NameSearch in sync with Name. SQLite's LOWER only folds
// ASCII, so the search column is lowercased here instead.
func (c *Company) BeforeSave(*gorm.DB) error {
	c.NameSearch = strings.ToLower(c.Name)
	return nil
}
