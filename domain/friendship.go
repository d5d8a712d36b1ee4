package domain

import "time"

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipBlocked  FriendshipStatus = "blocked"
)

func IsFriendshipStatus(s FriendshipStatus) bool {
	switch s {
	case FriendshipPending, FriendshipAccepted, FriendshipBlocked:
		return true
	}
	return false
}

// Friendship is an unordered pair of users. The storage order of the pair is
// the canonical one (CanonicalPair output); the database no longer enforces
// this, so it is an application-level contract checked here.
type Friendship struct {
	User1ID    string
	User2ID    string
	Status     FriendshipStatus
	CreatedAt  time.Time
	AcceptedAt *time.Time
}

// Other returns the side of the pair that is not userID.
func (f Friendship) Other(userID string) string {
	if f.User1ID == userID {
		return f.User2ID
	}
	return f.User1ID
}

func ValidateFriendship(f Friendship) Violations {
	var vs Violations
	if !IsIdentifier(f.User1ID) {
		vs.Add("user1_id", "must be a well-formed identifier")
	}
	if !IsIdentifier(f.User2ID) {
		vs.Add("user2_id", "must be a well-formed identifier")
	}
	if f.User1ID == f.User2ID {
		vs.Add("user2_id", "users cannot be friends with themselves")
	} else if lo, _ := CanonicalPair(f.User1ID, f.User2ID); f.User1ID != lo {
		vs.Add("user1_id", "pair must be stored in canonical order")
	}
	if !IsFriendshipStatus(f.Status) {
		vs.Add("status", "must be one of pending, accepted, blocked")
	}
	if f.Status == FriendshipAccepted && f.AcceptedAt == nil {
		vs.Add("accepted_at", "is required when status is accepted")
	}
	if f.Status != FriendshipAccepted && f.AcceptedAt != nil {
		vs.Add("accepted_at", "must be empty unless status is accepted")
	}
	return vs
}
