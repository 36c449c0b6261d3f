package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"musicweb-api/logging"
	"musicweb-api/metrics"
	"musicweb-api/models"
	"musicweb-api/repositories"

	"gorm.io/gorm"
)

var errInvalidCredentials = models.ErrorValidation{Message: "Invalid credentials"}

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error)
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error)
	ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error
	// Authenticate verifies a bearer token and resolves it against the stored account.
	// Unknown, deleted or inactive accounts yield ErrInvalidToken.
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
	// EnsureAdmin creates the bootstrap administrator unless the email is already registered.
	EnsureAdmin(ctx context.Context, email, username, password string) error
}

type AuthOptions struct {
	LoginTTL    time.Duration
	RegisterTTL time.Duration
	BcryptCost  int
}

type authService struct {
	userRepo repositories.UserRepository
	perms    PermissionService
	tokens   TokenService
	opts     AuthOptions
}

func NewAuthService(userRepo repositories.UserRepository, perms PermissionService, tokens TokenService, opts AuthOptions) AuthService {
	return &authService{userRepo: userRepo, perms: perms, tokens: tokens, opts: opts}
}

// ensureUnique rejects an email or username already held by a user other than excludeID.
func ensureUnique(ctx context.Context, repo repositories.UserRepository, email, username, excludeID string) error {
	if email != "" {
		taken, err := repo.EmailTaken(ctx, email, excludeID)
		if err != nil {
			return models.NewInternalError("check email", err)
		}
		if taken {
			return models.ErrorConflict{Message: "Email already in use"}
		}
	}
	if username != "" {
		taken, err := repo.UsernameTaken(ctx, username, excludeID)
		if err != nil {
			return models.NewInternalError("check username", err)
		}
		if taken {
			return models.ErrorConflict{Message: "Username already in use"}
		}
	}
	return nil
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	email := models.NormalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	if err := ensureUnique(ctx, s.userRepo, email, username, ""); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password, s.opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.RoleUser,
		IsActive:     true,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "Email or username already in use"}
		}
		return nil, models.NewInternalError("create user", err)
	}

	token, err := s.issue(ctx, user, s.opts.RegisterTTL)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Str("user_id", user.ID).Msg("user registered")
	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordLogin(false)
			return nil, errInvalidCredentials
		}
		return nil, models.NewInternalError("get user", err)
	}

	if !user.IsActive || !checkPassword(user.PasswordHash, req.Password) {
		metrics.RecordLogin(false)
		return nil, errInvalidCredentials
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID, time.Now()); err != nil {
		return nil, models.NewInternalError("update last login", err)
	}

	token, err := s.issue(ctx, user, s.opts.LoginTTL)
	if err != nil {
		return nil, err
	}

	metrics.RecordLogin(true)
	return &models.TokenResponse{Token: token}, nil
}

func (s *authService) issue(ctx context.Context, user *models.User, ttl time.Duration) (string, error) {
	perms, err := s.perms.Effective(ctx, user.Role, user.ID)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(user, perms, ttl)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	if !validID(claims.UserID) {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, models.NewInternalError("load token user", err)
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}

	return &models.Identity{
		ID:          user.ID,
		Role:        user.Role,
		Username:    user.Username,
		Permissions: claims.Permissions,
	}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if !validID(userID) {
		return nil, models.ErrorNotFound{Resource: "user"}
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError("get user", "user", err)
	}
	perms, err := s.perms.Effective(ctx, user.Role, user.ID)
	if err != nil {
		return nil, err
	}
	return models.NewProfile(user, perms), nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error) {
	if patch.Empty() {
		return nil, models.NewValidationError("No fields to update")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	columns := patch.Columns()
	email, _ := columns["email"].(string)
	username, _ := columns["username"].(string)
	if err := ensureUnique(ctx, s.userRepo, email, username, userID); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, userID, columns); err != nil {
		return nil, storeError("update profile", "user", err)
	}
	return s.GetProfile(ctx, userID)
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	if !validID(userID) {
		return models.ErrorNotFound{Resource: "user"}
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return storeError("get user", "user", err)
	}
	if !checkPassword(user.PasswordHash, req.OldPassword) {
		return models.NewFieldError("oldPassword", "Current password is incorrect")
	}

	hash, err := hashPassword(req.NewPassword, s.opts.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{"password_hash": hash}); err != nil {
		return models.NewInternalError("update password", err)
	}
	return nil
}

func (s *authService) EnsureAdmin(ctx context.Context, email, username, password string) error {
	email = models.NormalizeEmail(email)
	taken, err := s.userRepo.EmailTaken(ctx, email, "")
	if err != nil {
		return models.NewInternalError("check admin", err)
	}
	if taken {
		return nil
	}

	hash, err := hashPassword(password, s.opts.BcryptCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Email:        email,
		Username:     strings.TrimSpace(username),
		Role:         models.RoleAdmin,
		IsActive:     true,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return storeError("create admin", "user", err)
	}
	logging.Ctx(ctx).Info().Str("user_id", admin.ID).Msg("bootstrap admin created")
	return nil
}
