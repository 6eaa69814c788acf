package models

// MissionKey names a trackable daily objective.
type MissionKey string

const (
	MissionPlayMatch       MissionKey = "play_match"
	MissionWinMatch        MissionKey = "win_match"
	MissionEarnCoins       MissionKey = "earn_coins"
	MissionCompleteDrill   MissionKey = "complete_drill"
	MissionUpgradeFacility MissionKey = "upgrade_facility"
)

// MissionDef is one entry in the fixed daily-mission catalog.
type MissionDef struct {
	Key         MissionKey `json:"key"`
	Description string     `json:"description"`
	TargetCount int64      `json:"target_count"`
	RewardCoins int64      `json:"reward_coins"`
	RewardXP    int64      `json:"reward_xp"`
}

// MissionCatalog is seeded for every user each period. Order is the display
// order.
var MissionCatalog = []MissionDef{
	{Key: MissionPlayMatch, Description: "Play 3 matches", TargetCount: 3, RewardCoins: 150, RewardXP: 75},
	{Key: MissionWinMatch, Description: "Win a match", TargetCount: 1, RewardCoins: 200, RewardXP: 100},
	{Key: MissionEarnCoins, Description: "Earn 500 coins", TargetCount: 500, RewardCoins: 100, RewardXP: 50},
	{Key: MissionCompleteDrill, Description: "Complete 2 drills", TargetCount: 2, RewardCoins: 120, RewardXP: 60},
	{Key: MissionUpgradeFacility, Description: "Upgrade a facility", TargetCount: 1, RewardCoins: 250, RewardXP: 120},
}

// DailyMission is one user's progress against one catalog entry for one
// period. Period is the UTC calendar date (YYYY-MM-DD); rows for past periods
// are never mutated, only pruned.
type DailyMission struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"index;uniqueIndex:idx_user_mission_period;not null" json:"user_id"`

	MissionKey MissionKey `gorm:"uniqueIndex:idx_user_mission_period;not null" json:"mission_key"`
	Period     string     `gorm:"uniqueIndex:idx_user_mission_period;not null" json:"period"`

	Description     string `json:"description"`
	TargetCount     int64  `json:"target_count"`
	CurrentProgress int64  `json:"current_progress" gorm:"default:0"`
	RewardCoins     int64  `json:"reward_coins"`
	RewardXP        int64  `json:"reward_xp"`
	Claimed         bool   `json:"is_claimed" gorm:"default:false"`

	Timestamps
}

// Complete reports whether the mission's target has been reached. Progress is
// stored unclamped; completion clamps here.
func (m *DailyMission) Complete() bool {
	return m.CurrentProgress >= m.TargetCount
}
