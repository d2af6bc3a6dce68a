package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	pkgAuth "github.com/tijaralink/tijaralink-backend/pkg/auth"
	"github.com/tijaralink/tijaralink-backend/pkg/config"
	"github.com/tijaralink/tijaralink-backend/pkg/db"
	"github.com/tijaralink/tijaralink-backend/pkg/db/models"
	"github.com/tijaralink/tijaralink-backend/pkg/enums"
	pkgerrors "github.com/tijaralink/tijaralink-backend/pkg/errors"
	"github.com/tijaralink/tijaralink-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// unknownCountryCode is the ISO 3166 user-assigned placeholder used when a
// registering company does not state its country.
const unknownCountryCode = "XX"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the behavior needed by the auth controller.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
}

type service struct {
	repo        Repository
	tx          txRunner
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Repo           Repository
	Tx             txRunner
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("auth repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:        params.Repo,
		tx:          params.Tx,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full_name is required")
	}
	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company_name is required")
	}
	role, err := mapRegistrationRole(req.Role)
	if err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var user *models.User
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.FindUserByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		company, err := repo.CreateCompany(ctx, &models.Company{
			LegalName:   companyName,
			CountryCode: normalizeCountryCode(req.CompanyCountryCode),
			VatNumber:   req.VatNumber,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create company")
		}

		user, err = repo.CreateUser(ctx, &models.User{
			CompanyID:    company.ID,
			Email:        email,
			PasswordHash: passwordHash,
			FullName:     fullName,
			Role:         role,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.issueToken(user)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	input := strings.TrimSpace(email)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.repo.FindUserByEmail(ctx, strings.ToLower(input))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) issueToken(user *models.User) (*AuthResponse, error) {
	now := time.Now().UTC()
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	return &AuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtCfg.Expiration() / time.Second),
		User:        FromModel(user),
	}, nil
}

// mapRegistrationRole accepts the roles a company can self-register with.
// "seller" is kept as an accepted spelling of supplier.
func mapRegistrationRole(raw string) (enums.UserRole, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "buyer":
		return enums.UserRoleBuyer, nil
	case "supplier", "seller":
		return enums.UserRoleSupplier, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "role must be buyer or supplier")
	}
}

func normalizeCountryCode(code *string) string {
	if code == nil {
		return unknownCountryCode
	}
	value := strings.ToUpper(strings.TrimSpace(*code))
	if len(value) != 2 {
		return unknownCountryCode
	}
	return value
}
