package contract

import "providerrisk/cmd/internal/utils/optional"

type CreateCompanyRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	TaxID   *string `json:"tax_id" validate:"omitempty,max=50"`
	Country string  `json:"country" validate:"omitempty,countrycode"`
}

// UpdateCompanyRequest is a partial update: only the keys present in the
// body are applied, an explicit null tax_id clears it.
type UpdateCompanyRequest struct {
	Name    optional.Value[string] `json:"name"`
	TaxID   optional.Value[string] `json:"tax_id"`
	Country optional.Value[string] `json:"country"`
}

type CompanyResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	TaxID     *string `json:"tax_id"`
	Country   string  `json:"country"`
	CreatedAt string  `json:"created_at"`
	DeletedAt *string `json:"deleted_at,omitempty"`
}
