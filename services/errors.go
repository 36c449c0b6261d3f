package services

import (
	"errors"

	"musicweb-api/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// storeError converts a repository error into the matching typed error.
func storeError(op, resource string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.ErrorNotFound{Resource: resource}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.ErrorConflict{Message: resource + " already exists"}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return models.ErrorConflict{Message: resource + " references a record that no longer exists"}
	default:
		return models.NewInternalError(op, err)
	}
}

// validID rejects ids that cannot name a stored row; callers answer 404 for them.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func hashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", models.NewFieldError("password", "password must be at most 72 bytes")
	}
	if err != nil {
		return "", models.NewInternalError("hash password", err)
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
