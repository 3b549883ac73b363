package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate applies a row lock so repositories can serialize writers
// against the same parent row inside a transaction. SQLite has no row
// locks; its writers serialize on the database lock instead, so the
// clause is skipped there.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
