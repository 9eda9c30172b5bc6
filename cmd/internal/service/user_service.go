package service

import (
	"context"
	"errors"

	"providerrisk/cmd/internal/contract"
	"providerrisk/cmd/internal/domain/database/repository"
	"providerrisk/cmd/internal/domain/entity"
	"providerrisk/cmd/internal/infrastructure/credentials"
	"providerrisk/cmd/internal/utils"
	"providerrisk/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *entity.User) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}

type TokenIssuer interface {
	Issue(email, role string) (string, error)
	Validate(token string) (*credentials.Claims, error)
}

type DefaultUserService struct {
	UserRepo UserRepository
	Hasher   PasswordHasher
	Tokens   TokenIssuer
	Validate *validator.Validate
}

func NewUserService(userRepo UserRepository, hasher PasswordHasher, tokens TokenIssuer, validate *validator.Validate) *DefaultUserService {
	return &DefaultUserService{
		UserRepo: userRepo,
		Hasher:   hasher,
		Tokens:   tokens,
		Validate: validate,
	}
}

// Register creates an analyst account.
func (u *DefaultUserService) Register(ctx context.Context, req *contract.RegisterRequest) (*contract.UserResponse, apierror.ErrorResponse) {
	password := req.Password
	utils.Sanitize(req)
	req.Password = password

	if valerr := validateStruct(u.Validate, req); valerr != nil {
		return nil, valerr
	}

	exists, err := u.UserRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		log.Errorf("failed to check email availability: %v", err)
		return nil, apierror.InternalServerError
	}

	if exists {
		return nil, apierror.EmailRegisteredError
	}

	hash, err := u.Hasher.Hash(req.Password)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	user := &entity.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         entity.RoleAnalyst,
	}

	err = u.UserRepo.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, apierror.EmailRegisteredError
	}

	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.InternalServerError
	}
	return toUserResponse(user), nil
}

// Login exchanges an email and password for a bearer token.
// Unknown emails and wrong passwords are indistinguishable.
func (u *DefaultUserService) Login(ctx context.Context, req *contract.LoginRequest) (*contract.TokenResponse, apierror.ErrorResponse) {
	// Passwords are kept as sent.
	password := req.Password
	utils.Sanitize(req)
	req.Password = password

	if valerr := validateStruct(u.Validate, req); valerr != nil {
		return nil, valerr
	}

	user, err := u.UserRepo.FindByEmail(ctx, req.Username)
	if err != nil {
		log.Errorf("failed to fetch user for login: %v", err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.CredentialsMismatchError
	}

	err = u.Hasher.Verify(user.PasswordHash, req.Password)
	if errors.Is(err, credentials.ErrPasswordMismatch) {
		return nil, apierror.CredentialsMismatchError
	}

	if err != nil {
		log.Errorf("failed to verify password of user %s: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	token, err := u.Tokens.Issue(user.Email, string(user.Role))
	if err != nil {
		log.Errorf("failed to issue token for user %s: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	return &contract.TokenResponse{
		AccessToken: token,
		TokenType:   credentials.TokenType,
	}, nil
}

// Authenticate resolves a bearer token to its user.
func (u *DefaultUserService) Authenticate(ctx context.Context, token string) (*entity.User, apierror.ErrorResponse) {
	claims, err := u.Tokens.Validate(token)
	if err != nil {
		log.Debugf("rejected token: %v", err)
		return nil, apierror.UnauthorizedError
	}

	user, err := u.UserRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		log.Errorf("failed to fetch user %s: %v", claims.Subject, err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.UnauthorizedError
	}
	return user, nil
}

// Profile renders the authenticated caller.
func (u *DefaultUserService) Profile(user *entity.User) *contract.UserResponse {
	return toUserResponse(user)
}
