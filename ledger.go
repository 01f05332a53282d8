package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// MatchNotifier receives ledger events after a successful mutation. The
// ledger calls it outside its lock, so implementations may block briefly
// without stalling other operations.
type MatchNotifier interface {
	MatchRecorded(m Match)
	MatchResolved(m Match)
}

// pairKey enforces at most one match per (acting user, target profile) pair.
type pairKey struct {
	userID    string
	profileID string
}

// MatchLedger owns every Match record. It is the only component that mutates
// them. One mutex guards the collection so the uniqueness and one-directional
// transition rules hold even under interleaved calls.
//
// Records are kept in insertion order; all queries preserve it (oldest first).
type MatchLedger struct {
	mu       sync.Mutex
	catalog  *ProfileCatalog
	byID     map[string]*Match
	byPair   map[pairKey]struct{}
	order    []*Match
	notifier MatchNotifier
}

func NewMatchLedger(catalog *ProfileCatalog) *MatchLedger {
	return &MatchLedger{
		catalog: catalog,
		byID:    make(map[string]*Match),
		byPair:  make(map[pairKey]struct{}),
	}
}

// SetNotifier wires an event sink. Call before the ledger starts serving.
func (l *MatchLedger) SetNotifier(n MatchNotifier) {
	l.notifier = n
}

// CandidateProfiles returns the catalog minus every profile the user has
// already swiped on, regardless of outcome. Catalog order is preserved.
func (l *MatchLedger) CandidateProfiles(userID string) []Profile {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Profile, 0)
	for _, p := range l.catalog.ListAll() {
		if _, swiped := l.byPair[pairKey{userID, p.ID}]; !swiped {
			out = append(out, p)
		}
	}
	return out
}

// RecordSwipe creates the single Match record for this (user, profile) pair.
// A like opens a pending match; a dislike is terminal immediately. The
// profile is snapshotted into the record at this instant.
func (l *MatchLedger) RecordSwipe(userID, profileID string, action SwipeAction) (Match, error) {
	l.mu.Lock()

	profile, ok := l.catalog.Get(profileID)
	if !ok {
		l.mu.Unlock()
		return Match{}, ErrProfileNotFound
	}

	key := pairKey{userID, profileID}
	if _, exists := l.byPair[key]; exists {
		l.mu.Unlock()
		return Match{}, ErrAlreadySwiped
	}

	status := StatusPending
	if action == SwipeDislike {
		status = StatusRejected
	}

	m := &Match{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProfileID: profileID,
		Status:    status,
		CreatedAt: time.Now().UTC(),
		Profile:   profile,
	}
	l.byID[m.ID] = m
	l.byPair[key] = struct{}{}
	l.order = append(l.order, m)

	out := m.snapshot()
	l.mu.Unlock()

	if l.notifier != nil {
		l.notifier.MatchRecorded(out)
	}
	return out, nil
}

// PendingMatches returns the user's pending matches, oldest first.
func (l *MatchLedger) PendingMatches(userID string) []Match {
	return l.matchesByStatus(userID, StatusPending)
}

// AcceptedMatches returns the user's accepted matches, oldest first.
func (l *MatchLedger) AcceptedMatches(userID string) []Match {
	return l.matchesByStatus(userID, StatusAccepted)
}

func (l *MatchLedger) matchesByStatus(userID string, status MatchStatus) []Match {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Match, 0)
	for _, m := range l.order {
		if m.UserID == userID && m.Status == status {
			out = append(out, m.snapshot())
		}
	}
	return out
}

// MatchByID returns a single match record.
func (l *MatchLedger) MatchByID(matchID string) (Match, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.byID[matchID]
	if !ok {
		return Match{}, false
	}
	return m.snapshot(), true
}

// Respond resolves a pending match. This is the only in-place mutation in
// the entity model, and it happens at most once per match: anything other
// than pending reports ErrInvalidTransition.
func (l *MatchLedger) Respond(matchID string, action RespondAction) (Match, error) {
	l.mu.Lock()

	m, ok := l.byID[matchID]
	if !ok {
		l.mu.Unlock()
		return Match{}, ErrMatchNotFound
	}
	if m.Status != StatusPending {
		l.mu.Unlock()
		return Match{}, ErrInvalidTransition
	}

	if action == RespondAccept {
		m.Status = StatusAccepted
	} else {
		m.Status = StatusRejected
	}

	out := m.snapshot()
	l.mu.Unlock()

	if l.notifier != nil {
		l.notifier.MatchResolved(out)
	}
	return out, nil
}

// Stats aggregates the user's matches by status.
func (l *MatchLedger) Stats(userID string) MatchStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	var st MatchStats
	for _, m := range l.order {
		if m.UserID != userID {
			continue
		}
		st.Total++
		switch m.Status {
		case StatusPending:
			st.Pending++
		case StatusAccepted:
			st.Accepted++
		case StatusRejected:
			st.Rejected++
		}
	}
	return st
}

// snapshot returns a value copy safe to hand to callers.
func (m *Match) snapshot() Match {
	out := *m
	out.Profile = m.Profile.clone()
	return out
}
