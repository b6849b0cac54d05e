package entity

import (
	"time"
)

// User is the aggregate root for the member domain.
// Passwords are stored as bcrypt hashes in Password.
type User struct {
	ID          string
	Email       string
	Password    string
	Name        string
	AboutMe     string
	AvatarURL   string
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TagPair links a user to a specialty within a category. The same shape is
// used for both specialties (what the member offers) and interests (what the
// member is looking for).
type TagPair struct {
	CategoryID  string
	SpecialtyID string
}

// Rating is one review left on a user after a finished trade.
// A target user holds at most one rating per trade.
type Rating struct {
	ID        string
	AuthorID  string
	TradeID   string
	Comment   string
	Score     int
	CreatedAt time.Time
}

// RatingView is a rating expanded with the author's public fields.
type RatingView struct {
	Rating
	AuthorName   string
	AuthorAvatar string
}

// TagView is a tag pair expanded with category and specialty names.
type TagView struct {
	TagPair
	CategoryName  string
	SpecialtyName string
}

// Profile is the assembled read model returned by profile queries:
// the user row plus its resolved relations. PhoneNumber and Trades are
// cleared by the service when the viewer is not the owner or a contact.
type Profile struct {
	ID          string
	Email       string
	Name        string
	AboutMe     string
	AvatarURL   string
	PhoneNumber string
	Specialties []TagView
	Interests   []TagView
	Ratings     []RatingView
	TradeIDs    []string
	CreatedAt   time.Time
}
