package auth

import (
	"context"
	"errors"
	"strings"

	location "github.com/bfb-software/foodconnect-backend/internal/locations"
	user "github.com/bfb-software/foodconnect-backend/internal/users"
	"github.com/bfb-software/foodconnect-backend/pkg/config"
	"github.com/bfb-software/foodconnect-backend/pkg/db"
	"github.com/bfb-software/foodconnect-backend/pkg/db/models"
	pkgerrors "github.com/bfb-software/foodconnect-backend/pkg/errors"
	"github.com/bfb-software/foodconnect-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegisterRequest contains the signup payload. Roles are not granted here;
// the first login under a role grants it.
type RegisterRequest struct {
	FullName        string `json:"full_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	City            string `json:"city"`
	Occupation      string `json:"occupation"`
	ContactNumber   string `json:"contact_number"`
}

// RegisterService handles the signup transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) error
}

// RegisterServiceParams packages the dependencies for the signup flow.
type RegisterServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if req.Password != req.ConfirmPassword {
		return pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := user.NewRepository(tx)
		locationRepo := location.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeDuplicateEmail, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		loc, err := locationRepo.FindOrCreateByCity(ctx, req.City)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve location")
		}

		account := &models.User{
			ID:            uuid.New(),
			FullName:      strings.TrimSpace(req.FullName),
			Occupation:    strings.TrimSpace(req.Occupation),
			LocationID:    loc.ID,
			ContactNumber: strings.TrimSpace(req.ContactNumber),
			Email:         email,
			PasswordHash:  passwordHash,
		}
		if _, err := userRepo.Create(ctx, account); err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeDuplicateEmail, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		return nil
	})
}
