package repo

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound = gorm.ErrRecordNotFound
	ErrNoIDs    = errors.New("no ids provided")
)

// ThrottledError reports how long a caller must wait before the next
// verification code can be issued.
type ThrottledError struct {
	RetryAfterSeconds int
}

func (e *ThrottledError) Error() string {
	return "cannot request a new code yet"
}

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// lockForUpdate applies a row lock where the dialect has one. SQLite's
// single-writer transaction already serializes the check-then-act paths.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
