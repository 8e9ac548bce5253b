package repository

import (
	"strings"

	"github.com/syafrud/Kasir-new-sub000/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paginate applies LIMIT/OFFSET for a normalized Pagination
func paginate(p model.Pagination) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

// likePattern builds a case-insensitive LIKE operand; use with LOWER(column)
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// forUpdate takes a row lock on dialects that support it
func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// withDeleted lets a preload resolve soft-deleted rows referenced by history
func withDeleted(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
