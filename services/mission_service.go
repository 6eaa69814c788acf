package services

import (
	"errors"
	"log"
	"time"

	"kickoff-hq-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Missions roll over at UTC midnight: the period key is the UTC calendar date,
// so a fresh set is seeded on first access each day.
const missionPeriodLayout = "2006-01-02"

// Stale unclaimed missions are pruned after this many days.
const missionRetentionDays = 7

type MissionService struct {
	DB *gorm.DB

	// Now is swappable in tests.
	Now func() time.Time
}

func NewMissionService(db *gorm.DB) *MissionService {
	return &MissionService{DB: db, Now: time.Now}
}

func (s *MissionService) currentPeriod() string {
	return s.Now().UTC().Format(missionPeriodLayout)
}

// EnsureDailyMissions seeds today's mission set for the user (idempotent) and
// returns it in catalog order.
func (s *MissionService) EnsureDailyMissions(userID string) ([]models.DailyMission, error) {
	period := s.currentPeriod()

	rows := make([]models.DailyMission, 0, len(models.MissionCatalog))
	for _, def := range models.MissionCatalog {
		rows = append(rows, models.DailyMission{
			ID:          uuid.NewString(),
			UserID:      userID,
			MissionKey:  def.Key,
			Period:      period,
			Description: def.Description,
			TargetCount: def.TargetCount,
			RewardCoins: def.RewardCoins,
			RewardXP:    def.RewardXP,
		})
	}
	if err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "mission_key"}, {Name: "period"}},
		DoNothing: true,
	}).Create(&rows).Error; err != nil {
		return nil, err
	}

	var missions []models.DailyMission
	if err := s.DB.Where("user_id = ? AND period = ?", userID, period).
		Order("created_at ASC").
		Find(&missions).Error; err != nil {
		return nil, err
	}
	return missions, nil
}

// UpdateMissionProgress adds amount to the user's current-period mission for
// the given key. Negative amounts are ignored; missing rows are seeded first.
// Progress on claimed missions is still recorded (stored value is unclamped).
func (s *MissionService) UpdateMissionProgress(userID string, key models.MissionKey, amount int64) error {
	if amount <= 0 {
		return nil
	}
	period := s.currentPeriod()

	res := s.DB.Model(&models.DailyMission{}).
		Where("user_id = ? AND mission_key = ? AND period = ?", userID, key, period).
		Update("current_progress", gorm.Expr("current_progress + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// First event of the day can land before the set is seeded.
		if _, err := s.EnsureDailyMissions(userID); err != nil {
			return err
		}
		return s.DB.Model(&models.DailyMission{}).
			Where("user_id = ? AND mission_key = ? AND period = ?", userID, key, period).
			Update("current_progress", gorm.Expr("current_progress + ?", amount)).Error
	}
	return nil
}

// RecordProgress is the fire-and-forget wrapper used by the other services:
// failures are logged and never surfaced, so a mission hiccup cannot fail or
// roll back the action that triggered it.
func (s *MissionService) RecordProgress(userID string, key models.MissionKey, amount int64) {
	if err := s.UpdateMissionProgress(userID, key, amount); err != nil {
		log.Printf("⚠️ mission progress update failed (user=%s key=%s): %v", userID, key, err)
	}
}

// ClaimMissionReward flips Claimed and credits the reward. The flip is a
// conditional UPDATE gated on ownership, completion and claimed=false, so a
// double claim can never double-credit.
func (s *MissionService) ClaimMissionReward(userID, missionID string) (*models.DailyMission, error) {
	var mission models.DailyMission
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.DailyMission{}).
			Where("id = ? AND user_id = ? AND claimed = ? AND current_progress >= target_count",
				missionID, userID, false).
			Update("claimed", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return s.claimFailure(tx, userID, missionID)
		}

		if err := tx.Where("id = ?", missionID).First(&mission).Error; err != nil {
			return err
		}
		return creditRewards(tx, userID, mission.RewardCoins, mission.RewardXP)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("🏅 Mission claimed: %s by %s (+%d coins, +%d xp)",
		mission.MissionKey, userID, mission.RewardCoins, mission.RewardXP)
	return &mission, nil
}

// claimFailure distinguishes why the guarded claim update matched nothing.
func (s *MissionService) claimFailure(tx *gorm.DB, userID, missionID string) error {
	var mission models.DailyMission
	if err := tx.Where("id = ? AND user_id = ?", missionID, userID).First(&mission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMissionNotFound
		}
		return err
	}
	if mission.Claimed {
		return ErrAlreadyClaimed
	}
	if !mission.Complete() {
		return ErrMissionNotDone
	}
	return ErrPersistenceFailed
}

// PruneStaleMissions deletes mission rows older than the retention window.
// Run from the scheduler; claimed state for past periods is not interesting
// once the period is gone.
func (s *MissionService) PruneStaleMissions() error {
	cutoff := s.Now().UTC().AddDate(0, 0, -missionRetentionDays).Format(missionPeriodLayout)
	res := s.DB.Unscoped().
		Where("period < ?", cutoff).
		Delete(&models.DailyMission{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("🧹 Pruned %d stale mission row(s) before period %s", res.RowsAffected, cutoff)
	}
	return nil
}
