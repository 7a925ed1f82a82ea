package dto

type AwardInput struct {
	Amount int
}

type AwardOutput struct {
	Awarded bool
	TotalXP int
	Level   int
	// LeveledUp is set when this award crossed a level boundary.
	LeveledUp bool
}

type BadgeOutput struct {
	ID          string
	Name        string
	Description string
	Earned      bool
}

type SnapshotOutput struct {
	TotalXP      int
	Level        int
	LevelXP      int
	SessionCount int
	Badges       []BadgeOutput
}
