package duck

// Event is emitted by the simulation and drained by the host after each frame.
// The set of events is closed; use a type switch to handle them.
type Event interface {
	duckEvent()
}

// SessionStarted is emitted when a run begins.
type SessionStarted struct {
	Session int // 1-based run number for this Game
}

// SessionEnded is emitted exactly once when a run ends.
type SessionEnded struct {
	Session  int
	Reason   EndReason
	Score    int
	Survival float64
	Stats    SessionStats
}

// RewardCollected is emitted when a snack is eaten.
type RewardCollected struct {
	Tier    int
	Points  int // points credited, after any multiplier
	Total   int
	Doubled bool
}

// PowerupCollected is emitted when a pickup is taken.
type PowerupCollected struct {
	Type      PowerupType
	Duration  float64
	Refreshed bool
}

// PowerupExpired is emitted when an effect runs out.
type PowerupExpired struct {
	Type PowerupType
}

// HazardDodged is emitted for every hazard that leaves the screen.
type HazardDodged struct {
	Variant HazardVariant
	Total   int
}

// InsanityStarted is emitted when a pressure spike begins.
type InsanityStarted struct {
	Duration float64
}

// InsanityEnded is emitted when a pressure spike runs out.
type InsanityEnded struct{}

// ScoreReset is emitted when a penalty hazard wipes the score.
type ScoreReset struct {
	Previous int
}

func (SessionStarted) duckEvent()   {}
func (SessionEnded) duckEvent()     {}
func (RewardCollected) duckEvent()  {}
func (PowerupCollected) duckEvent() {}
func (PowerupExpired) duckEvent()   {}
func (HazardDodged) duckEvent()     {}
func (InsanityStarted) duckEvent()  {}
func (InsanityEnded) duckEvent()    {}
func (ScoreReset) duckEvent()       {}
