package main

import "time"

// MatchStatus is the lifecycle state of a Match.
// Transitions are one-directional: pending -> accepted or pending -> rejected.
// A dislike swipe creates the match directly in rejected (terminal, no pending phase).
type MatchStatus string

const (
	StatusPending  MatchStatus = "pending"
	StatusAccepted MatchStatus = "accepted"
	StatusRejected MatchStatus = "rejected"
)

// SwipeAction is the user's decision on a candidate profile.
type SwipeAction string

const (
	SwipeLike    SwipeAction = "like"
	SwipeDislike SwipeAction = "dislike"
)

// RespondAction resolves a pending match.
type RespondAction string

const (
	RespondAccept RespondAction = "accept"
	RespondReject RespondAction = "reject"
)

// User is a registered account. The credential hash lives inside the
// identity store, never on this struct, so User can be serialized freely.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Bio   string `json:"bio"`
	Photo string `json:"photo"`
}

// Profile is a candidate record exposed for swiping. Profiles are seeded
// once and immutable; nothing creates or deletes them at runtime.
type Profile struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Bio       string   `json:"bio"`
	Photo     string   `json:"photo"`
	Interests []string `json:"interests"`
	Distance  int      `json:"distance"`
}

// clone returns a value copy that shares no slice storage with the original.
func (p Profile) clone() Profile {
	c := p
	c.Interests = append([]string(nil), p.Interests...)
	return c
}

// Match binds an acting user to a candidate profile and records the outcome.
// Profile is a snapshot taken at swipe time, so later catalog changes can
// never retroactively alter a historical match view.
type Match struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	ProfileID string      `json:"profile_id"`
	Status    MatchStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	Profile   Profile     `json:"profile"`
}

// MatchStats aggregates one user's matches by status.
type MatchStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
}
