package telemetry

// AchievementDef describes a one-time milestone.
type AchievementDef struct {
	ID          string
	Name        string
	Description string
}

// Achievements are checked against every finished run.
var Achievements = []AchievementDef{
	{"first_thousand", "First Thousand", "Score 1,000 points in one run"},
	{"high_scorer", "High Scorer", "Score 5,000 points in one run"},
	{"survivor", "Survivor", "Stay airborne for 30 seconds"},
}

// Earned returns the achievements a run qualifies for, in definition order.
func Earned(score int, survival float64) []AchievementDef {
	var out []AchievementDef
	for _, def := range Achievements {
		ok := false
		switch def.ID {
		case "first_thousand":
			ok = score >= 1000
		case "high_scorer":
			ok = score >= 5000
		case "survivor":
			ok = survival >= 30
		}
		if ok {
			out = append(out, def)
		}
	}
	return out
}

// Lookup finds an achievement definition by ID.
func Lookup(id string) (AchievementDef, bool) {
	for _, def := range Achievements {
		if def.ID == id {
			return def, true
		}
	}
	return AchievementDef{}, false
}
