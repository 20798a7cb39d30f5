package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone   Action = iota
	ActionFlap          // Space, W, Up - discrete upward impulse
	ActionThrust        // Shift+Up, K - held glide; terminals only report repeats
	ActionStart         // Enter - leave the menu or retry after game over
	ActionBack          // Esc - return to the menu
	ActionScores        // Tab - toggle the leaderboard
	ActionQuit          // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionThrust:
		return "Thrust"
	case ActionStart:
		return "Start"
	case ActionBack:
		return "Back"
	case ActionScores:
		return "Scores"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
