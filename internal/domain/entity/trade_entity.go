package entity

import "time"

// Trade statuses. A trade opens IN_PROGRESS and can only move to FINISHED.
const (
	TradeInProgress = "IN_PROGRESS"
	TradeFinished   = "FINISHED"
)

// Trade is a two-party transaction. Each member carries a hasRated flag so a
// member can submit at most one rating for the trade.
type Trade struct {
	ID             string
	MemberOne      string
	MemberTwo      string
	MemberOneRated bool
	MemberTwoRated bool
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsMember reports whether userID is one of the trade's two members.
func (t *Trade) IsMember(userID string) bool {
	return t.MemberOne == userID || t.MemberTwo == userID
}

// HasRated reports whether the given member already submitted their rating.
// Returns false for non-members.
func (t *Trade) HasRated(userID string) bool {
	switch userID {
	case t.MemberOne:
		return t.MemberOneRated
	case t.MemberTwo:
		return t.MemberTwoRated
	}
	return false
}
