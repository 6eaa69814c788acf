package models

import "strings"

// MatchRecord is one simulated game, kept for the recent-history feed. The
// authoritative coin/xp/energy deltas live on HQState; this row is display
// data.
type MatchRecord struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"index;not null" json:"user_id"`

	Won           bool   `json:"won"`
	UserScore     int    `json:"user_score"`
	OpponentScore int    `json:"opponent_score"`
	UserOvr       int    `json:"user_ovr"`
	OpponentOvr   int    `json:"opponent_ovr"`
	OpponentName  string `json:"opponent_name"`
	RewardCoins   int64  `json:"reward_coins"`
	RewardXP      int64  `json:"reward_xp"`

	// Newline-joined narrative log.
	Log string `gorm:"type:text" json:"-"`

	Timestamps
}

// MatchLog splits the stored narrative back into ordered lines.
func (m *MatchRecord) MatchLog() []string {
	if m.Log == "" {
		return nil
	}
	return strings.Split(m.Log, "\n")
}
