package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront-api/apierror"
	"storefront-api/auth"
	"storefront-api/models"
	"storefront-api/validators"
)

// AccountService owns user identity records: registration, credential checks
// and session issuance. It is the only component that touches password hashes.
type AccountService struct {
	db         *gorm.DB
	tokens     *auth.TokenService
	bcryptCost int
}

func NewAccountService(db *gorm.DB, tokens *auth.TokenService, bcryptCost int) *AccountService {
	return &AccountService{db: db, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates a user and issues a session credential. The email is
// normalized before the uniqueness check so duplicates are case-insensitive.
func (s *AccountService) Register(ctx context.Context, req validators.RegisterRequest) (*models.User, string, error) {
	email := models.NormalizeEmail(req.Email)

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, "", apierror.Wrap(apierror.Unknown, "Failed to check existing user", err)
	}
	if count > 0 {
		return nil, "", apierror.New(apierror.Duplicate, "User already exists")
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, "", apierror.Wrap(apierror.Unknown, "Failed to hash password", err)
	}

	user := models.NewUser(req.Name, email, hash, req.Phone, req.Address)
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apierror.New(apierror.Duplicate, "User already exists")
		}
		return nil, "", apierror.Wrap(apierror.Unknown, "Failed to create user", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apierror.Wrap(apierror.Unknown, "Token generation failed", err)
	}
	return user, token, nil
}

// Login verifies credentials and issues a fresh session credential. Unknown
// email and wrong password return the exact same failure so responses cannot
// be used as an email-enumeration oracle.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apierror.New(apierror.AuthFailure, "Invalid credentials")
		}
		return nil, "", apierror.Wrap(apierror.Unknown, "Failed to look up user", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", apierror.New(apierror.AuthFailure, "Invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", apierror.Wrap(apierror.Unknown, "Token generation failed", err)
	}
	return &user, token, nil
}

// UserByID resolves a verified token subject to a live user record.
func (s *AccountService) UserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.New(apierror.AuthFailure, "User not found")
		}
		return nil, apierror.Wrap(apierror.Unknown, "Failed to look up user", err)
	}
	return &user, nil
}
