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

type RequestRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Request, error)
	List(ctx context.Context, offset, limit int, filter repository.RequestFilter) ([]*entity.Request, int64, error)
	Create(ctx context.Context, request *entity.Request) error
	Update(ctx context.Context, request *entity.Request, patch entity.RequestPatch) (*entity.Request, error)
	Delete(ctx context.Context, request *entity.Request) error
}

// ScoreObserver is told about every score assigned to a request.
type ScoreObserver interface {
	ObserveRiskScore(score int)
}

// DefaultRequestService coordinates companies, scoring and request storage.
type DefaultRequestService struct {
	RequestRepo RequestRepository
	CompanyRepo CompanyRepository
	Scores      ScoreObserver
	Validate    *validator.Validate
}

func NewRequestService(
	requestRepo RequestRepository,
	companyRepo CompanyRepository,
	scores ScoreObserver,
	validate *validator.Validate,
) *DefaultRequestService {
	return &DefaultRequestService{
		RequestRepo: requestRepo,
		CompanyRepo: companyRepo,
		Scores:      scores,
		Validate:    validate,
	}
}

type requestPatchFields struct {
	Status     *string             `json:"status" validate:"omitnil,oneof=pending in_review approved rejected"`
	RiskInputs *contract.RiskInputs `json:"risk_inputs" validate:"omitnil"`
}

// CreateRequest scores the inputs and stores a pending request for an active company.
// The response embeds the company.
func (s *DefaultRequestService) CreateRequest(ctx context.Context, req *contract.CreateRequestRequest) (*contract.RequestResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := validateStruct(s.Validate, req); valerr != nil {
		return nil, valerr
	}

	company, err := s.CompanyRepo.FindByID(ctx, req.CompanyID)
	if err != nil {
		log.Errorf("failed to fetch company %s for a new request: %v", req.CompanyID, err)
		return nil, apierror.InternalServerError
	}

	if company == nil {
		return nil, apierror.CompanyNotFoundError
	}

	inputs := toRiskInputs(*req.RiskInputs)
	request := &entity.Request{
		CompanyID: company.ID,
		Status:    entity.StatusPending,
	}
	request.SetRiskInputs(&inputs)

	if err := s.RequestRepo.Create(ctx, request); err != nil {
		log.Errorf("failed to create request for company %s: %v", company.ID, err)
		return nil, apierror.InternalServerError
	}

	request.Company = company
	s.observe(request)
	return toRequestResponse(request), nil
}

func (s *DefaultRequestService) ListRequests(ctx context.Context, page contract.PageParams, filter contract.RequestFilter) (*contract.PageResponse[*contract.RequestResponse], apierror.ErrorResponse) {
	problems := merge(nil, validateStruct(s.Validate, &page))
	problems = merge(problems, validateStruct(s.Validate, &filter))
	if problems != nil {
		return nil, problems
	}

	requests, total, err := s.RequestRepo.List(ctx, page.Offset(), page.PageSize, repository.RequestFilter{
		CompanyName: strings.TrimSpace(filter.Query),
		Status:      entity.RequestStatus(filter.Status),
		RiskMin:     filter.RiskMin,
		RiskMax:     filter.RiskMax,
	})
	if err != nil {
		log.Errorf("failed to list requests: %v", err)
		return nil, apierror.InternalServerError
	}
	return toPage(requests, total, page, toRequestResponse), nil
}

func (s *DefaultRequestService) GetRequest(ctx context.Context, id string) (*contract.RequestResponse, apierror.ErrorResponse) {
	request, apierr := s.findRequest(ctx, id)
	if apierr != nil {
		return nil, apierr
	}
	return toRequestResponse(request), nil
}

// UpdateRequest applies a partial update. Whenever risk_inputs is part of
// the body the score is recomputed, a null risk_inputs clears both.
func (s *DefaultRequestService) UpdateRequest(ctx context.Context, id string, req *contract.UpdateRequestRequest) (*contract.RequestResponse, apierror.ErrorResponse) {
	patch, valerr := s.requestPatch(req)
	if valerr != nil {
		return nil, valerr
	}

	request, apierr := s.findRequest(ctx, id)
	if apierr != nil {
		return nil, apierr
	}

	updated, err := s.RequestRepo.Update(ctx, request, patch)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierror.RequestNotFoundError
	}

	if err != nil {
		log.Errorf("failed to update request %s: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if patch.RiskInputs.IsSet() {
		s.observe(updated)
	}
	return toRequestResponse(updated), nil
}

func (s *DefaultRequestService) DeleteRequest(ctx context.Context, id string) apierror.ErrorResponse {
	request, apierr := s.findRequest(ctx, id)
	if apierr != nil {
		return apierr
	}

	if err := s.RequestRepo.Delete(ctx, request); err != nil {
		log.Errorf("failed to delete request %s: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

func (s *DefaultRequestService) findRequest(ctx context.Context, id string) (*entity.Request, apierror.ErrorResponse) {
	if !isValidID(id) {
		return nil, apierror.InvalidIDError
	}

	request, err := s.RequestRepo.FindByID(ctx, id)
	if err != nil {
		log.Errorf("failed to fetch request %s: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if request == nil {
		return nil, apierror.RequestNotFoundError
	}
	return request, nil
}

func (s *DefaultRequestService) requestPatch(req *contract.UpdateRequestRequest) (entity.RequestPatch, *apierror.StructuredError) {
	status := optional.Map(req.Status, strings.TrimSpace)

	problems := apierror.NewStructured(http.StatusBadRequest)
	if status.IsNull() {
		problems.Add("status", nullNotAllowed)
	}

	fields := requestPatchFields{
		Status:     status.Get(),
		RiskInputs: req.RiskInputs.Get(),
	}
	problems = merge(problems, validateStruct(s.Validate, &fields))
	if !problems.Empty() {
		return entity.RequestPatch{}, problems
	}

	return entity.RequestPatch{
		Status:     optional.Map(status, func(v string) entity.RequestStatus { return entity.RequestStatus(v) }),
		RiskInputs: optional.Map(req.RiskInputs, toRiskInputs),
	}, nil
}

func (s *DefaultRequestService) observe(request *entity.Request) {
	if s.Scores != nil && request.RiskScore != nil {
		s.Scores.ObserveRiskScore(*request.RiskScore)
	}
}
