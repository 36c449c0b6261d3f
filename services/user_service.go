package services

import (
	"context"
	"errors"
	"strings"

	"musicweb-api/models"
	"musicweb-api/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	List(ctx context.Context, params models.UserListParams) ([]models.User, int64, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	// Delete refuses to remove the acting account.
	Delete(ctx context.Context, actorID, id string) error
}

type userService struct {
	userRepo   repositories.UserRepository
	bcryptCost int
}

func NewUserService(userRepo repositories.UserRepository, bcryptCost int) UserService {
	return &userService{userRepo: userRepo, bcryptCost: bcryptCost}
}

func (s *userService) List(ctx context.Context, params models.UserListParams) ([]models.User, int64, error) {
	users, total, err := s.userRepo.GetList(ctx, params)
	if err != nil {
		return nil, 0, models.NewInternalError("list users", err)
	}
	return users, total, nil
}

func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	if !validID(id) {
		return nil, models.ErrorNotFound{Resource: "user"}
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get user", "user", err)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	role := models.RoleUser
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, models.NewFieldError("role", "role must be one of ADMIN, EDITOR, USER")
		}
		role = *req.Role
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	email := models.NormalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)
	if err := ensureUnique(ctx, s.userRepo, email, username, ""); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         role,
		IsActive:     active,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "Email or username already in use"}
		}
		return nil, models.NewInternalError("create user", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, models.NewValidationError("No fields to update")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	columns := patch.Columns()
	email, _ := columns["email"].(string)
	username, _ := columns["username"].(string)
	if err := ensureUnique(ctx, s.userRepo, email, username, id); err != nil {
		return nil, err
	}

	if patch.Password.Set {
		hash, err := hashPassword(patch.Password.Value, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		columns["password_hash"] = hash
	}

	if err := s.userRepo.Update(ctx, id, columns); err != nil {
		return nil, storeError("update user", "user", err)
	}
	return s.Get(ctx, id)
}

func (s *userService) Delete(ctx context.Context, actorID, id string) error {
	target, err := uuid.Parse(id)
	if err != nil {
		return models.ErrorNotFound{Resource: "user"}
	}
	// case and formatting variants of the caller's id count as self
	if actor, err := uuid.Parse(actorID); err == nil && actor == target {
		return models.NewValidationError("You cannot delete your own account")
	}
	id = target.String()
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return models.NewInternalError("delete user", err)
	}
	return nil
}
