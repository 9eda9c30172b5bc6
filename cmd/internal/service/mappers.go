package service

import (
	"providerrisk/cmd/internal/contract"
	"providerrisk/cmd/internal/domain/entity"
	"providerrisk/cmd/internal/utils"
)

func toCompanyResponse(company *entity.Company) *contract.CompanyResponse {
	if company == nil {
		return nil
	}

	resp := &contract.CompanyResponse{
		ID:        company.ID,
		Name:      company.Name,
		TaxID:     company.TaxID,
		Country:   company.Country,
		CreatedAt: utils.FormatEpoch(company.CreatedAt),
	}

	if company.IsDeleted() {
		resp.DeletedAt = utils.FormatTime(&company.DeletedAt.Time)
	}
	return resp
}

func toRequestResponse(request *entity.Request) *contract.RequestResponse {
	resp := &contract.RequestResponse{
		ID:        request.ID,
		CompanyID: request.CompanyID,
		Status:    string(request.Status),
		RiskScore: request.RiskScore,
		CreatedAt: utils.FormatEpoch(request.CreatedAt),
		Company:   toCompanyResponse(request.Company),
	}

	if in := request.RiskInputs; in != nil {
		resp.RiskInputs = &contract.RiskInputs{
			PEPFlag:      in.PEPFlag,
			SanctionList: in.SanctionList,
			LatePayments: in.LatePayments,
		}
	}
	return resp
}

func toRiskInputs(in contract.RiskInputs) entity.RiskInputs {
	return entity.RiskInputs{
		PEPFlag:      in.PEPFlag,
		SanctionList: in.SanctionList,
		LatePayments: in.LatePayments,
	}
}

func toUserResponse(user *entity.User) *contract.UserResponse {
	return &contract.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: utils.FormatEpoch(user.CreatedAt),
	}
}

func toPage[E, R any](items []E, total int64, page contract.PageParams, convert func(E) R) *contract.PageResponse[R] {
	out := make([]R, len(items))
	for i, item := range items {
		out[i] = convert(item)
	}

	return &contract.PageResponse[R]{
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
		Items:    out,
	}
}
