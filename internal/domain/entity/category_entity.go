package entity

import "time"

// Category groups specialties, e.g. "Languages" -> "English", "French".
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Specialty belongs to exactly one category.
type Specialty struct {
	ID         string
	CategoryID string
	Name       string
	CreatedAt  time.Time
}
