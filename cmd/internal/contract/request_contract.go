package contract

import "providerrisk/cmd/internal/utils/optional"

type RiskInputs struct {
	PEPFlag      bool `json:"pep_flag"`
	SanctionList bool `json:"sanction_list"`
	LatePayments int  `json:"late_payments" validate:"min=0"`
}

type CreateRequestRequest struct {
	CompanyID  string      `json:"company_id" validate:"required,uuid"`
	RiskInputs *RiskInputs `json:"risk_inputs" validate:"required"`
}

// UpdateRequestRequest is a partial update. Sending risk_inputs, even as
// null, always recomputes risk_score.
type UpdateRequestRequest struct {
	Status     optional.Value[string]     `json:"status"`
	RiskInputs optional.Value[RiskInputs] `json:"risk_inputs"`
}

// RequestFilter holds the already parsed listing filters.
type RequestFilter struct {
	Query   string
	Status  string `json:"status" validate:"omitempty,oneof=pending in_review approved rejected"`
	RiskMin *int   `json:"risk_min" validate:"omitempty,min=0"`
	RiskMax *int   `json:"risk_max" validate:"omitempty,min=0"`
}

type RequestResponse struct {
	ID         string           `json:"id"`
	CompanyID  string           `json:"company_id"`
	Status     string           `json:"status"`
	RiskInputs *RiskInputs      `json:"risk_inputs"`
	RiskScore  *int             `json:"risk_score"`
	CreatedAt  string           `json:"created_at"`
	Company    *CompanyResponse `json:"company"`
}
