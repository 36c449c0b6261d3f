package models

import "sort"

const (
	PermMusicCreate     = "music:create"
	PermMusicUpdate     = "music:update"
	PermMusicDelete     = "music:delete"
	PermReviewsRead     = "reviews:read"
	PermReviewsCreate   = "reviews:create"
	PermReviewsUpdate   = "reviews:update"
	PermReviewsDelete   = "reviews:delete"
	PermReviewsModerate = "reviews:moderate"
	PermUsersRead       = "users:read"
	PermUsersCreate     = "users:create"
	PermUsersUpdate     = "users:update"
	PermUsersDelete     = "users:delete"
)

// AllPermissions is the catalogue of grantable permission names.
var AllPermissions = []string{
	PermMusicCreate,
	PermMusicUpdate,
	PermMusicDelete,
	PermReviewsRead,
	PermReviewsCreate,
	PermReviewsUpdate,
	PermReviewsDelete,
	PermReviewsModerate,
	PermUsersRead,
	PermUsersCreate,
	PermUsersUpdate,
	PermUsersDelete,
}

// DefaultRolePermissions is seeded into role_permissions at boot. ADMIN has no rows.
var DefaultRolePermissions = map[UserRole][]string{
	RoleEditor: {
		PermMusicCreate,
		PermMusicUpdate,
		PermMusicDelete,
		PermReviewsRead,
		PermReviewsCreate,
		PermReviewsUpdate,
		PermReviewsDelete,
		PermReviewsModerate,
		PermUsersRead,
	},
	RoleUser: {
		PermReviewsRead,
		PermReviewsCreate,
		PermReviewsUpdate,
		PermReviewsDelete,
	},
}

func KnownPermission(name string) bool {
	for _, p := range AllPermissions {
		if p == name {
			return true
		}
	}
	return false
}

type RolePermission struct {
	Role           UserRole `json:"role" gorm:"type:varchar(16);primaryKey"`
	PermissionName string   `json:"permission_name" gorm:"primaryKey"`
}

type UserPermission struct {
	UserID         string `json:"user_id" gorm:"type:uuid;primaryKey"`
	User           *User  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	PermissionName string `json:"permission_name" gorm:"primaryKey"`
}

// PermissionSet is an unordered set of permission names.
type PermissionSet map[string]struct{}

func NewPermissionSet(names ...[]string) PermissionSet {
	set := PermissionSet{}
	for _, group := range names {
		for _, n := range group {
			set[n] = struct{}{}
		}
	}
	return set
}

func (s PermissionSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the members in lexical order.
func (s PermissionSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// EffectivePermissions is the union of the stored direct and role-implied grants.
// ADMIN resolves to every known permission.
func EffectivePermissions(role UserRole, direct, roleImplied []string) PermissionSet {
	if role == RoleAdmin {
		return NewPermissionSet(AllPermissions, direct, roleImplied)
	}
	return NewPermissionSet(direct, roleImplied)
}

// Allows reports whether a role with the given stored grants may perform required.
// Permissions carried in a token are informational and never consulted here.
func Allows(role UserRole, required string, direct, roleImplied []string) bool {
	if role == RoleAdmin {
		return true
	}
	return EffectivePermissions(role, direct, roleImplied).Has(required)
}

// PermissionSummary is the breakdown returned for a user's grants.
type PermissionSummary struct {
	Role        UserRole `json:"role"`
	Direct      []string `json:"direct"`
	RoleImplied []string `json:"roleImplied"`
	Effective   []string `json:"effective"`
}
