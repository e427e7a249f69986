// Package option carries composable query modifiers for the generic store.
package option

import "gorm.io/gorm"

type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type optionFunc func(db *gorm.DB) *gorm.DB

func (f optionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

// WithOrderBy sorts results by the given expression.
func WithOrderBy(expr string) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Order(expr)
	})
}

// WithLimit caps the result size when limit is positive.
func WithLimit(limit int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

// WithWhere appends a raw condition.
func WithWhere(query any, args ...any) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	})
}
