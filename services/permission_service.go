package services

import (
	"context"

	"musicweb-api/models"
	"musicweb-api/repositories"
)

type PermissionService interface {
	// HasPermission checks required against the stored role and direct grants, so revocations
	// apply to tokens already issued. ADMIN always passes without touching the store.
	HasPermission(ctx context.Context, identity *models.Identity, required string) (bool, error)
	Effective(ctx context.Context, role models.UserRole, userID string) ([]string, error)
	Describe(ctx context.Context, userID string) (*models.PermissionSummary, error)
	ReplaceDirect(ctx context.Context, userID string, permissions []string) (*models.PermissionSummary, error)
}

type permissionService struct {
	permRepo repositories.PermissionRepository
	userRepo repositories.UserRepository
}

func NewPermissionService(permRepo repositories.PermissionRepository, userRepo repositories.UserRepository) PermissionService {
	return &permissionService{permRepo: permRepo, userRepo: userRepo}
}

func (s *permissionService) grants(ctx context.Context, role models.UserRole, userID string) (roleImplied, direct []string, err error) {
	roleImplied, err = s.permRepo.RolePermissions(ctx, role)
	if err != nil {
		return nil, nil, models.NewInternalError("load role permissions", err)
	}
	direct, err = s.permRepo.UserPermissions(ctx, userID)
	if err != nil {
		return nil, nil, models.NewInternalError("load user permissions", err)
	}
	return roleImplied, direct, nil
}

func (s *permissionService) HasPermission(ctx context.Context, identity *models.Identity, required string) (bool, error) {
	if identity == nil {
		return false, nil
	}
	if identity.Role == models.RoleAdmin {
		return true, nil
	}
	roleImplied, direct, err := s.grants(ctx, identity.Role, identity.ID)
	if err != nil {
		return false, err
	}
	return models.Allows(identity.Role, required, direct, roleImplied), nil
}

func (s *permissionService) Effective(ctx context.Context, role models.UserRole, userID string) ([]string, error) {
	roleImplied, direct, err := s.grants(ctx, role, userID)
	if err != nil {
		return nil, err
	}
	return models.EffectivePermissions(role, direct, roleImplied).Sorted(), nil
}

func (s *permissionService) Describe(ctx context.Context, userID string) (*models.PermissionSummary, error) {
	if !validID(userID) {
		return nil, models.ErrorNotFound{Resource: "user"}
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError("get user", "user", err)
	}
	roleImplied, direct, err := s.grants(ctx, user.Role, user.ID)
	if err != nil {
		return nil, err
	}
	return &models.PermissionSummary{
		Role:        user.Role,
		Direct:      direct,
		RoleImplied: roleImplied,
		Effective:   models.EffectivePermissions(user.Role, direct, roleImplied).Sorted(),
	}, nil
}

func (s *permissionService) ReplaceDirect(ctx context.Context, userID string, permissions []string) (*models.PermissionSummary, error) {
	for _, p := range permissions {
		if !models.KnownPermission(p) {
			return nil, models.NewFieldError("permissions", "unknown permission "+p)
		}
	}
	if !validID(userID) {
		return nil, models.ErrorNotFound{Resource: "user"}
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, storeError("get user", "user", err)
	}

	unique := models.NewPermissionSet(permissions).Sorted()
	if err := s.permRepo.ReplaceUserPermissions(ctx, userID, unique); err != nil {
		return nil, models.NewInternalError("replace user permissions", err)
	}
	return s.Describe(ctx, userID)
}
