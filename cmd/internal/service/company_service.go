package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"providerrisk/cmd/internal/contract"
	"providerrisk/cmd/internal/domain/database/repository"
	"providerrisk/cmd/internal/domain/entity"
	"providerrisk/cmd/internal/utils"
	"providerrisk/cmd/internal/utils/apierror"
	"providerrisk/cmd/internal/utils/optional"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type CompanyRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context, offset, limit int, search string) ([]*entity.Company, int64, error)
	Create(ctx context.Context, company *entity.Company) error
	Update(ctx context.Context, company *entity.Company, patch entity.CompanyPatch) (*entity.Company, error)
	SoftDelete(ctx context.Context, company *entity.Company) error
}

type DefaultCompanyService struct {
	CompanyRepo CompanyRepository
	Validate    *validator.Validate
}

func NewCompanyService(companyRepo CompanyRepository, validate *validator.Validate) *DefaultCompanyService {
	return &DefaultCompanyService{
		CompanyRepo: companyRepo,
		Validate:    validate,
	}
}

// companyPatchFields is the validation view of a patch, nil fields are skipped.
type companyPatchFields struct {
	Name    *string `json:"name" validate:"omitnil,required,max=100"`
	TaxID   *string `json:"tax_id" validate:"omitnil,max=50"`
	Country *string `json:"country" validate:"omitnil,countrycode"`
}

func (s *DefaultCompanyService) CreateCompany(ctx context.Context, req *contract.CreateCompanyRequest) (*contract.CompanyResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := validateStruct(s.Validate, req); valerr != nil {
		return nil, valerr
	}

	company := &entity.Company{
		Name:    req.Name,
		TaxID:   normalizeTaxID(req.TaxID),
		Country: normalizeCountry(req.Country),
	}

	err := s.CompanyRepo.Create(ctx, company)
	if errors.Is(err, repository.ErrDuplicateName) {
		return nil, apierror.DuplicateCompanyNameError
	}

	if err != nil {
		log.Errorf("failed to create company %q: %v", req.Name, err)
		return nil, apierror.InternalServerError
	}
	return toCompanyResponse(company), nil
}

func (s *DefaultCompanyService) ListCompanies(ctx context.Context, page contract.PageParams, query string) (*contract.PageResponse[*contract.CompanyResponse], apierror.ErrorResponse) {
	if valerr := validateStruct(s.Validate, &page); valerr != nil {
		return nil, valerr
	}

	companies, total, err := s.CompanyRepo.List(ctx, page.Offset(), page.PageSize, strings.TrimSpace(query))
	if err != nil {
		log.Errorf("failed to list companies: %v", err)
		return nil, apierror.InternalServerError
	}
	return toPage(companies, total, page, toCompanyResponse), nil
}

func (s *DefaultCompanyService) GetCompany(ctx context.Context, id string) (*contract.CompanyResponse, apierror.ErrorResponse) {
	company, apierr := s.findCompany(ctx, id)
	if apierr != nil {
		return nil, apierr
	}
	return toCompanyResponse(company), nil
}

func (s *DefaultCompanyService) UpdateCompany(ctx context.Context, id string, req *contract.UpdateCompanyRequest) (*contract.CompanyResponse, apierror.ErrorResponse) {
	patch, valerr := s.companyPatch(req)
	if valerr != nil {
		return nil, valerr
	}

	company, apierr := s.findCompany(ctx, id)
	if apierr != nil {
		return nil, apierr
	}

	updated, err := s.CompanyRepo.Update(ctx, company, patch)
	if errors.Is(err, repository.ErrDuplicateName) {
		return nil, apierror.DuplicateCompanyNameError
	}

	// Deleted between the lookup and the write.
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierror.CompanyNotFoundError
	}

	if err != nil {
		log.Errorf("failed to update company %s: %v", id, err)
		return nil, apierror.InternalServerError
	}
	return toCompanyResponse(updated), nil
}

// DeleteCompany soft deletes the company, its requests are kept.
func (s *DefaultCompanyService) DeleteCompany(ctx context.Context, id string) apierror.ErrorResponse {
	company, apierr := s.findCompany(ctx, id)
	if apierr != nil {
		return apierr
	}

	if err := s.CompanyRepo.SoftDelete(ctx, company); err != nil {
		log.Errorf("failed to delete company %s: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

func (s *DefaultCompanyService) findCompany(ctx context.Context, id string) (*entity.Company, apierror.ErrorResponse) {
	if !isValidID(id) {
		return nil, apierror.InvalidIDError
	}

	company, err := s.CompanyRepo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch company %s: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if company == nil {
		return nil, apierror.CompanyNotFoundError
	}
	return company, nil
}

// companyPatch trims and validates the present fields and turns them into a patch.
func (s *DefaultCompanyService) companyPatch(req *contract.UpdateCompanyRequest) (entity.CompanyPatch, *apierror.StructuredError) {
	trim := func(v string) string { return strings.TrimSpace(v) }
	name := optional.Map(req.Name, trim)
	taxID := optional.Map(req.TaxID, trim)
	country := optional.Map(req.Country, trim)

	problems := apierror.NewStructured(http.StatusBadRequest)
	if name.IsNull() {
		problems.Add("name", nullNotAllowed)
	}

	if country.IsNull() {
		problems.Add("country", nullNotAllowed)
	}

	fields := companyPatchFields{
		Name:    name.Get(),
		TaxID:   taxID.Get(),
		Country: country.Get(),
	}
	problems = merge(problems, validateStruct(s.Validate, &fields))
	if !problems.Empty() {
		return entity.CompanyPatch{}, problems
	}

	patch := entity.CompanyPatch{
		Name:    name,
		Country: optional.Map(country, strings.ToUpper),
		TaxID:   taxID,
	}

	// An empty tax id means "no tax id".
	if v := taxID.Get(); v != nil && *v == "" {
		patch.TaxID = optional.Null[string]()
	}
	return patch, nil
}

func normalizeTaxID(taxID *string) *string {
	if taxID == nil || *taxID == "" {
		return nil
	}
	return taxID
}

func normalizeCountry(country string) string {
	if country == "" {
		return entity.DefaultCountry
	}
	return strings.ToUpper(country)
}
