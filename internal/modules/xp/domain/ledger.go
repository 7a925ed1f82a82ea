package domain

// PointsPerLevel is the XP span of one level.
const PointsPerLevel = 100

// Ledger is the persisted experience state. Level and badges are derived.
type Ledger struct {
	TotalXP int `json:"totalXp"`
}

// Level is floor(total/100)+1. Negative totals never occur but map to level 1.
func Level(total int) int {
	if total < 0 {
		return 1
	}
	return total/PointsPerLevel + 1
}

// Progress returns the XP earned inside the current level.
func Progress(total int) int {
	if total < 0 {
		return 0
	}
	return total % PointsPerLevel
}

type Badge struct {
	ID          string
	Name        string
	Description string
	earned      func(totalXP, sessions int) bool
}

var catalog = []Badge{
	{ID: "first-session", Name: "First Session", Description: "Complete a study session", earned: func(_, s int) bool { return s >= 1 }},
	{ID: "dedicated", Name: "Dedicated", Description: "Complete 10 study sessions", earned: func(_, s int) bool { return s >= 10 }},
	{ID: "marathoner", Name: "Marathoner", Description: "Complete 50 study sessions", earned: func(_, s int) bool { return s >= 50 }},
	{ID: "rising-star", Name: "Rising Star", Description: "Earn 100 XP", earned: func(xp, _ int) bool { return xp >= 100 }},
	{ID: "scholar", Name: "Scholar", Description: "Earn 500 XP", earned: func(xp, _ int) bool { return xp >= 500 }},
	{ID: "master", Name: "Master", Description: "Earn 1000 XP", earned: func(xp, _ int) bool { return xp >= 1000 }},
}

// Badges evaluates the catalog. It is recomputed on every read.
func Badges(totalXP, sessions int) []Badge {
	out := make([]Badge, 0, len(catalog))
	for _, b := range catalog {
		if b.earned(totalXP, sessions) {
			out = append(out, b)
		}
	}
	return out
}

// Catalog lists every badge in display order.
func Catalog() []Badge {
	out := make([]Badge, len(catalog))
	copy(out, catalog)
	return out
}
