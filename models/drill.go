package models

import "time"

// DrillType identifies one entry in the fixed drill catalog.
type DrillType string

const (
	DrillConeWeave     DrillType = "cone_weave"
	DrillFilmStudy     DrillType = "film_study"
	DrillSprintLadder  DrillType = "sprint_ladder"
	DrillWeightSession DrillType = "weight_session"
	DrillScrimmage     DrillType = "scrimmage"
)

// DrillInfo carries the static reward metadata for one drill type.
type DrillInfo struct {
	Type     DrillType     `json:"type"`
	Name     string        `json:"name"`
	Duration time.Duration `json:"-"`
	Seconds  int           `json:"duration_seconds"`
	XP       int64         `json:"xp"`
	Coins    int64         `json:"coins"`
}

// DrillCatalog maps drill types to their fixed duration and rewards.
var DrillCatalog = map[DrillType]DrillInfo{
	DrillConeWeave:     {Type: DrillConeWeave, Name: "Cone Weave", Duration: 5 * time.Minute, Seconds: 300, XP: 20, Coins: 30},
	DrillSprintLadder:  {Type: DrillSprintLadder, Name: "Sprint Ladder", Duration: 10 * time.Minute, Seconds: 600, XP: 45, Coins: 55},
	DrillFilmStudy:     {Type: DrillFilmStudy, Name: "Film Study", Duration: 15 * time.Minute, Seconds: 900, XP: 80, Coins: 60},
	DrillWeightSession: {Type: DrillWeightSession, Name: "Weight Session", Duration: 20 * time.Minute, Seconds: 1200, XP: 100, Coins: 110},
	DrillScrimmage:     {Type: DrillScrimmage, Name: "Full Scrimmage", Duration: 30 * time.Minute, Seconds: 1800, XP: 160, Coins: 200},
}

// DrillSlot is one of the three per-user training slots. Empty means
// DrillType == "" and EndsAt == nil; occupied slots become collectible once
// the wall clock passes EndsAt.
type DrillSlot struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string `gorm:"index;uniqueIndex:idx_user_slot;not null" json:"user_id"`
	SlotIndex int    `gorm:"uniqueIndex:idx_user_slot;not null" json:"slot_index"`

	DrillType DrillType  `json:"drill_type" gorm:"default:''"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`

	Timestamps
}

// Occupied reports whether a drill is currently assigned to the slot.
func (s *DrillSlot) Occupied() bool {
	return s.DrillType != ""
}
