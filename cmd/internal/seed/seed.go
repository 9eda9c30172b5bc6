// Package seed fills an empty database with a demo admin, companies and requests.
package seed

import (
	"context"
	"fmt"

	"providerrisk/cmd/internal/domain/database/repository"
	"providerrisk/cmd/internal/domain/entity"

	"github.com/labstack/gommon/log"
)

const (
	AdminEmail    = "administrador@ejemplo.com"
	AdminPassword = "admin123"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
}

type CompanyRepository interface {
	FindByName(ctx context.Context, name string) (*entity.Company, error)
	Create(ctx context.Context, company *entity.Company) error
}

type RequestRepository interface {
	List(ctx context.Context, offset, limit int, filter repository.RequestFilter) ([]*entity.Request, int64, error)
	Create(ctx context.Context, request *entity.Request) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Seeder struct {
	Users     UserRepository
	Companies CompanyRepository
	Requests  RequestRepository
	Hasher    PasswordHasher
}

// Result tells what a run actually created.
type Result struct {
	AdminCreated     bool
	CompaniesCreated int
	RequestsCreated  int
}

type sampleRequest struct {
	company string
	inputs  entity.RiskInputs
}

func strPtr(s string) *string { return &s }

var (
	sampleCompanies = []entity.Company{
		{Name: "Fruna", TaxID: strPtr("76.123.456-7"), Country: "CL"},
		{Name: "Dr. Simi", TaxID: strPtr("88.888.888-8"), Country: "CL"},
		{Name: "Empresa Chilena", TaxID: strPtr("99.248.412-K"), Country: "CL"},
		{Name: "Empresa Extranjera", Country: "US"},
	}

	sampleRequests = []sampleRequest{
		{company: "Fruna", inputs: entity.RiskInputs{PEPFlag: true}},
		{company: "Dr. Simi", inputs: entity.RiskInputs{SanctionList: true, LatePayments: 1}},
		{company: "Empresa Chilena", inputs: entity.RiskInputs{LatePayments: 3}},
		{company: "Empresa Extranjera", inputs: entity.RiskInputs{PEPFlag: true, SanctionList: true, LatePayments: 3}},
	}
)

// Run is idempotent: the admin and the companies are only created when
// missing, the sample requests only when there is no request at all.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	created, err := s.seedAdmin(ctx)
	if err != nil {
		return nil, err
	}
	result.AdminCreated = created

	companies := make(map[string]*entity.Company, len(sampleCompanies))
	for _, sample := range sampleCompanies {
		company, err := s.Companies.FindByName(ctx, sample.Name)
		if err != nil {
			return nil, fmt.Errorf("seed: failed to look up company %q: %w", sample.Name, err)
		}

		if company == nil {
			company = &entity.Company{Name: sample.Name, TaxID: sample.TaxID, Country: sample.Country}
			if err := s.Companies.Create(ctx, company); err != nil {
				return nil, fmt.Errorf("seed: failed to create company %q: %w", sample.Name, err)
			}
			result.CompaniesCreated++
			log.Infof("company '%s' created", company.Name)
		} else {
			log.Infof("company '%s' already exists", company.Name)
		}
		companies[company.Name] = company
	}

	_, total, err := s.Requests.List(ctx, 0, 1, repository.RequestFilter{})
	if err != nil {
		return nil, fmt.Errorf("seed: failed to count requests: %w", err)
	}

	if total > 0 {
		log.Infof("sample requests already exist")
		return result, nil
	}

	for _, sample := range sampleRequests {
		request := &entity.Request{
			CompanyID: companies[sample.company].ID,
			Status:    entity.StatusPending,
		}
		request.SetRiskInputs(&sample.inputs)

		if err := s.Requests.Create(ctx, request); err != nil {
			return nil, fmt.Errorf("seed: failed to create request for %q: %w", sample.company, err)
		}
		result.RequestsCreated++
	}

	log.Infof("%d sample requests created", result.RequestsCreated)
	return result, nil
}

func (s *Seeder) seedAdmin(ctx context.Context) (bool, error) {
	admin, err := s.Users.FindByEmail(ctx, AdminEmail)
	if err != nil {
		return false, fmt.Errorf("seed: failed to look up admin: %w", err)
	}

	if admin != nil {
		log.Infof("admin user already exists")
		return false, nil
	}

	hash, err := s.Hasher.Hash(AdminPassword)
	if err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}

	admin = &entity.User{Email: AdminEmail, PasswordHash: hash, Role: entity.RoleAdmin}
	if err := s.Users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("seed: failed to create admin: %w", err)
	}

	log.Infof("admin user created")
	return true, nil
}
