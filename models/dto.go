package models

import (
	"strings"
	"time"

	"gopkg.in/go-playground/validator.v9"
)

var fieldValidator = validator.New()

type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6,max=72"`
	Username  string  `json:"username" validate:"required,min=3,max=50"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

type CreateMusicRequest struct {
	Title  string  `json:"title" validate:"required,max=255"`
	Artist string  `json:"artist" validate:"required,max=255"`
	Album  *string `json:"album" validate:"omitempty,max=255"`
	Year   *int    `json:"year"`
	Genre  *string `json:"genre" validate:"omitempty,max=100"`
}

type CreateReviewRequest struct {
	MusicID string   `json:"musicId" validate:"required"`
	Rating  *float64 `json:"rating" validate:"required"`
	Title   *string  `json:"title" validate:"omitempty,max=255"`
	Comment *string  `json:"comment"`
}

type CreateUserRequest struct {
	Email     string    `json:"email" validate:"required,email"`
	Username  string    `json:"username" validate:"required,min=3,max=50"`
	Password  string    `json:"password" validate:"required,min=6,max=72"`
	FirstName *string   `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string   `json:"last_name" validate:"omitempty,max=100"`
	Phone     *string   `json:"phone" validate:"omitempty,max=32"`
	Role      *UserRole `json:"role"`
	IsActive  *bool     `json:"is_active"`
}

type ReplacePermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// MaxPasswordBytes is the longest password bcrypt can hash.
const MaxPasswordBytes = 72

// NormalizeEmail is applied to every stored and looked-up address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func requiredText(field string, o Optional[string], max int) error {
	if o.Null || strings.TrimSpace(o.Value) == "" {
		return NewFieldError(field, field+" cannot be empty")
	}
	if len(o.Value) > max {
		return NewFieldError(field, field+" is too long")
	}
	return nil
}

func validEmail(o Optional[string]) error {
	if o.Null || fieldValidator.Var(o.Value, "required,email") != nil {
		return NewFieldError("email", "email must be a valid email address")
	}
	return nil
}

func validUsername(o Optional[string]) error {
	if o.Null || fieldValidator.Var(strings.TrimSpace(o.Value), "required,min=3,max=50") != nil {
		return NewFieldError("username", "username must be between 3 and 50 characters")
	}
	return nil
}

// MusicPatch is a partial update of a music entry. Genre is resolved by the caller.
type MusicPatch struct {
	Title  Optional[string] `json:"title"`
	Artist Optional[string] `json:"artist"`
	Album  Optional[string] `json:"album"`
	Year   Optional[int]    `json:"year"`
	Genre  Optional[string] `json:"genre"`
}

func (p MusicPatch) Empty() bool {
	return !p.Title.Set && !p.Artist.Set && !p.Album.Set && !p.Year.Set && !p.Genre.Set
}

func (p MusicPatch) Validate(now time.Time) error {
	if p.Title.Set {
		if err := requiredText("title", p.Title, 255); err != nil {
			return err
		}
	}
	if p.Artist.Set {
		if err := requiredText("artist", p.Artist, 255); err != nil {
			return err
		}
	}
	if p.Year.Present() && !ValidYear(p.Year.Value, now) {
		return NewFieldError("year", "year is out of range")
	}
	return nil
}

func (p MusicPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Title.Set {
		cols["title"] = strings.TrimSpace(p.Title.Value)
	}
	if p.Artist.Set {
		cols["artist"] = strings.TrimSpace(p.Artist.Value)
	}
	if p.Album.Set {
		cols["album"] = nullable(p.Album)
	}
	if p.Year.Set {
		cols["year"] = nullable(p.Year)
	}
	return cols
}

type ReviewPatch struct {
	Rating  Optional[float64] `json:"rating"`
	Title   Optional[string]  `json:"title"`
	Comment Optional[string]  `json:"comment"`
}

func (p ReviewPatch) Empty() bool {
	return !p.Rating.Set && !p.Title.Set && !p.Comment.Set
}

func (p ReviewPatch) Validate() error {
	if p.Rating.Set {
		if p.Rating.Null {
			return NewFieldError("rating", "rating must be an integer between 1 and 5")
		}
		if _, ok := ParseRating(p.Rating.Value); !ok {
			return NewFieldError("rating", "rating must be an integer between 1 and 5")
		}
	}
	if p.Title.Present() && len(p.Title.Value) > 255 {
		return NewFieldError("title", "title is too long")
	}
	return nil
}

func (p ReviewPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Rating.Set {
		rating, _ := ParseRating(p.Rating.Value)
		cols["rating"] = rating
	}
	if p.Title.Set {
		cols["title"] = nullable(p.Title)
	}
	if p.Comment.Set {
		cols["comment"] = nullable(p.Comment)
	}
	return cols
}

// ProfilePatch covers the fields a user may change on their own account.
type ProfilePatch struct {
	Email     Optional[string] `json:"email"`
	Username  Optional[string] `json:"username"`
	FirstName Optional[string] `json:"first_name"`
	LastName  Optional[string] `json:"last_name"`
	Phone     Optional[string] `json:"phone"`
}

func (p ProfilePatch) Empty() bool {
	return !p.Email.Set && !p.Username.Set && !p.FirstName.Set && !p.LastName.Set && !p.Phone.Set
}

func (p ProfilePatch) Validate() error {
	if p.Email.Set {
		if err := validEmail(p.Email); err != nil {
			return err
		}
	}
	if p.Username.Set {
		if err := validUsername(p.Username); err != nil {
			return err
		}
	}
	return nil
}

func (p ProfilePatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Email.Set {
		cols["email"] = NormalizeEmail(p.Email.Value)
	}
	if p.Username.Set {
		cols["username"] = strings.TrimSpace(p.Username.Value)
	}
	if p.FirstName.Set {
		cols["first_name"] = nullable(p.FirstName)
	}
	if p.LastName.Set {
		cols["last_name"] = nullable(p.LastName)
	}
	if p.Phone.Set {
		cols["phone"] = nullable(p.Phone)
	}
	return cols
}

// UserPatch is the administrative update of any account. Password is hashed by the caller.
type UserPatch struct {
	ProfilePatch
	Password Optional[string]   `json:"password"`
	Role     Optional[UserRole] `json:"role"`
	IsActive Optional[bool]     `json:"is_active"`
}

func (p UserPatch) Empty() bool {
	return p.ProfilePatch.Empty() && !p.Password.Set && !p.Role.Set && !p.IsActive.Set
}

func (p UserPatch) Validate() error {
	if err := p.ProfilePatch.Validate(); err != nil {
		return err
	}
	if p.Password.Set && (p.Password.Null || len(p.Password.Value) < 6 || len(p.Password.Value) > MaxPasswordBytes) {
		return NewFieldError("password", "password must be between 6 and 72 characters")
	}
	if p.Role.Set && !p.Role.Value.Valid() {
		return NewFieldError("role", "role must be one of ADMIN, EDITOR, USER")
	}
	if p.IsActive.Set && p.IsActive.Null {
		return NewFieldError("is_active", "is_active cannot be null")
	}
	return nil
}

func (p UserPatch) Columns() map[string]interface{} {
	cols := p.ProfilePatch.Columns()
	if p.Role.Set {
		cols["role"] = p.Role.Value
	}
	if p.IsActive.Set {
		cols["is_active"] = p.IsActive.Value
	}
	return cols
}
