package db

import (
	"gorm.io/gorm"
)

// Paginate is a GORM scope translating a 1-based page and page size into OFFSET/LIMIT.
// A non-positive page size disables the limit.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// CreatedBetween filters rows whose created_at falls inside [from, to).
func CreatedBetween(from, to any) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at >= ? AND created_at < ?", from, to)
	}
}
