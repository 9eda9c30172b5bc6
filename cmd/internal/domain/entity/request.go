package entity

import (
	"providerrisk/cmd/internal/utils/optional"

	"gorm.io/gorm"
)

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusInReview RequestStatus = "in_review"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Request is a risk evaluation raised against a company.
//
// RiskScore is always derived from RiskInputs: it is recomputed whenever the
// inputs change and right before every write. Requests are hard deleted.
type Request struct {
	ID         string        `gorm:"primaryKey;size:36"`
	CompanyID  string        `gorm:"size:36;not null;index"`
	Status     RequestStatus `gorm:"size:20;not null;default:'pending';index"`
	RiskInputs *RiskInputs   `gorm:"type:json"`
	RiskScore  *int          `gorm:"index"`
	CreatedAt  int64         `gorm:"not null;index;autoCreateTime:milli"`

	// Relationships
	Company *Company `gorm:"foreignKey:CompanyID;references:ID"`
}

// RequestPatch carries a partial update, absent fields are left untouched.
type RequestPatch struct {
	Status     optional.Value[RequestStatus]
	RiskInputs optional.Value[RiskInputs]
}

// SetRiskInputs replaces the inputs and the score together.
// Passing nil clears both.
func (r *Request) SetRiskInputs(in *RiskInputs) {
	if in == nil {
		r.RiskInputs = nil
	} else {
		inputs := *in
		r.RiskInputs = &inputs
	}
	r.rescore()
}

func (r *Request) Apply(p RequestPatch) {
	if status := p.Status.Get(); status != nil {
		r.Status = *status
	}
	if p.RiskInputs.IsSet() {
		r.SetRiskInputs(p.RiskInputs.Get())
	}
}

// BeforeSave runs for both creates and updates.
func (r *Request) BeforeSave(*gorm.DB) error {
	r.rescore()
	return nil
}

func (r *Request) rescore() {
	if r.RiskInputs == nil {
		r.RiskScore = nil
		return
	}

	score := r.RiskInputs.Score()
	r.RiskScore = &score
}
