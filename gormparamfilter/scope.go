package gormparamfilter

import (
	"github.com/theplant/paramfilter"
	"gorm.io/gorm"
)

// Scope compiles params and ordering into a gorm scope:
//
//	db.Model(&Task{}).Scopes(gormparamfilter.Scope(params, ordering)).Find(&tasks)
func Scope(params map[string]string, ordering *string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if db == nil {
			return nil
		}
		q, err := New(db)
		if err != nil {
			db.AddError(err)
			return db
		}
		filtered := paramfilter.Apply(q, params, ordering)
		return filtered.(*Queryable).DB()
	}
}
