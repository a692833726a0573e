package services

import (
	"context"
	"errors"
	"strings"

	"resortbook/dto"
	apperrors "resortbook/errors"
	"resortbook/models"
	"resortbook/services/logger"
	"resortbook/types"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "The provided credentials are incorrect."

// AuthService handles registration, login and bearer token verification.
type AuthService struct {
	db       *gorm.DB
	logger   logger.Logger
	tokens   *TokenService
	hashCost int
}

type AuthServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
	Tokens *TokenService
	// HashCost defaults to bcrypt.DefaultCost.
	HashCost int
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	log := opts.Logger
	if log == nil {
		log = logger.Nop{}
	}
	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{db: opts.DB, logger: log, tokens: opts.Tokens, hashCost: cost}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register creates a customer account and signs them in.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, string, error) {
	email := normalizeEmail(req.Email)
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, "", err
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, "", apperrors.Internal("Could not create account", err)
	}

	user := &models.User{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         email,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		Role:          models.RoleCustomer,
		Password:      hash,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, "", dbError(err, "")
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, "", apperrors.Internal("Could not issue token", err)
	}
	s.logger.Info("User %d registered", user.ID)
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*models.User, string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(req.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperrors.Validation(invalidCredentialsMessage, nil)
	}
	if err != nil {
		return nil, "", dbError(err, "")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, "", apperrors.Validation(invalidCredentialsMessage, nil)
	}

	token, err := s.tokens.GenerateToken(&user)
	if err != nil {
		return nil, "", apperrors.Internal("Could not issue token", err)
	}
	return &user, token, nil
}

// Logout revokes the token the request was authenticated with.
func (s *AuthService) Logout(ctx context.Context, claims *Claims) error {
	if err := s.tokens.RevokeToken(ctx, claims); err != nil {
		return apperrors.Internal("Could not log out", err)
	}
	return nil
}

// Authenticate resolves a bearer token into the principal of a user that
// still exists. The role always comes from the database row.
func (s *AuthService) Authenticate(ctx context.Context, bearer string) (types.Principal, *Claims, error) {
	claims, err := s.tokens.ParseToken(ctx, bearer)
	if err != nil {
		return types.Principal{}, nil, err
	}

	var user models.User
	err = s.db.WithContext(ctx).Select("id", "role").First(&user, claims.UserInfo.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.Principal{}, nil, apperrors.Unauthenticated("Unauthenticated.")
	}
	if err != nil {
		return types.Principal{}, nil, dbError(err, "")
	}
	return types.NewPrincipal(&user), claims, nil
}

// SeedAdmin creates the configured administrator when no account uses that
// email yet. Empty credentials skip seeding.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}
	admin := &models.User{
		FirstName: "Resort",
		LastName:  "Admin",
		Email:     email,
		Role:      models.RoleAdmin,
		Password:  hash,
	}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return err
	}
	s.logger.Info("Seeded admin account %s", email)
	return nil
}

// ensureEmailFree fails when another user (not exceptID) holds email.
func (s *AuthService) ensureEmailFree(ctx context.Context, email string, exceptID uint) error {
	return emailFree(ctx, s.db, email, exceptID)
}

func emailFree(ctx context.Context, db *gorm.DB, email string, exceptID uint) error {
	var count int64
	q := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return dbError(err, "")
	}
	if count > 0 {
		return apperrors.Validation("The email has already been taken.", nil)
	}
	return nil
}
