package specification

import "gorm.io/gorm"

// PublishedAndApproved keeps only content visible to learners. Suggestion
// resolution applies this so vector hits against retracted content drop out.
type PublishedAndApproved struct{}

func (s PublishedAndApproved) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("published = ? AND approved = ?", true, true)
}

// ByCategory filters content by category
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// ByLevel filters content by difficulty level
type ByLevel struct {
	Level string
}

func (s ByLevel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("level = ?", s.Level)
}

// TitleSearch matches title or description with ILIKE
type TitleSearch struct {
	Query string
}

func (s TitleSearch) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
}
