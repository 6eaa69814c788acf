package services

import (
	"errors"
	"math"
	"time"

	"kickoff-hq-service/models"

	"gorm.io/gorm"
)

type DrillService struct {
	DB       *gorm.DB
	Missions *MissionService

	// Now is swappable in tests.
	Now func() time.Time
}

func NewDrillService(db *gorm.DB, missions *MissionService) *DrillService {
	return &DrillService{DB: db, Missions: missions, Now: time.Now}
}

// ListSlots returns the user's three slots in index order.
func (s *DrillService) ListSlots(userID string) ([]models.DrillSlot, error) {
	var slots []models.DrillSlot
	if err := s.DB.Where("user_id = ?", userID).Order("slot_index ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrHQNotFound
	}
	return slots, nil
}

// StartDrill occupies an empty slot with a catalog drill. Occupation is a
// conditional UPDATE on drill_type = '' so two racing starts cannot both take
// the slot.
func (s *DrillService) StartDrill(userID string, slotIndex int, drillType models.DrillType) (*models.DrillSlot, error) {
	if slotIndex < 0 || slotIndex >= models.DrillSlotCount {
		return nil, ErrInvalidSlot
	}
	info, ok := models.DrillCatalog[drillType]
	if !ok {
		return nil, ErrInvalidDrillType
	}

	endsAt := s.Now().Add(info.Duration)
	res := s.DB.Model(&models.DrillSlot{}).
		Where("user_id = ? AND slot_index = ? AND drill_type = ''", userID, slotIndex).
		Updates(map[string]interface{}{
			"drill_type": drillType,
			"ends_at":    endsAt,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var slot models.DrillSlot
		if err := s.DB.Where("user_id = ? AND slot_index = ?", userID, slotIndex).First(&slot).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrHQNotFound
			}
			return nil, err
		}
		return nil, ErrSlotOccupied
	}

	var slot models.DrillSlot
	if err := s.DB.Where("user_id = ? AND slot_index = ?", userID, slotIndex).First(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// DrillReward is what one collected drill paid out.
type DrillReward struct {
	Slot  models.DrillSlot `json:"slot"`
	Coins int64            `json:"coins"`
	XP    int64            `json:"xp"`
}

// CollectDrillReward clears an expired slot and credits its reward, scaled by
// the stadium/film-room multipliers. The clear is a compare-and-clear UPDATE
// gated on occupancy and expiry; crediting happens after the clear inside the
// same transaction, so a racing second collect sees an empty slot and credits
// nothing.
func (s *DrillService) CollectDrillReward(userID string, slotIndex int) (*DrillReward, error) {
	if slotIndex < 0 || slotIndex >= models.DrillSlotCount {
		return nil, ErrInvalidSlot
	}

	var slot models.DrillSlot
	if err := s.DB.Where("user_id = ? AND slot_index = ?", userID, slotIndex).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHQNotFound
		}
		return nil, err
	}
	if !slot.Occupied() {
		return nil, ErrSlotEmpty
	}
	now := s.Now()
	if slot.EndsAt == nil || now.Before(*slot.EndsAt) {
		return nil, ErrDrillNotReady
	}
	info, ok := models.DrillCatalog[slot.DrillType]
	if !ok {
		// Catalog entry was removed while the drill ran; clear without reward.
		info = models.DrillInfo{}
	}

	state, err := loadState(s.DB, userID)
	if err != nil {
		return nil, err
	}
	coins := int64(math.Floor(float64(info.Coins) * CoinMultiplier(state.StadiumLevel)))
	xp := int64(math.Floor(float64(info.XP) * XPMultiplier(state.FilmRoomLevel)))

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.DrillSlot{}).
			Where("user_id = ? AND slot_index = ? AND drill_type <> '' AND ends_at <= ?",
				userID, slotIndex, now).
			Updates(map[string]interface{}{
				"drill_type": "",
				"ends_at":    nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race to another collect.
			return ErrSlotEmpty
		}
		return creditRewards(tx, userID, coins, xp)
	})
	if err != nil {
		return nil, err
	}

	s.Missions.RecordProgress(userID, models.MissionCompleteDrill, 1)
	s.Missions.RecordProgress(userID, models.MissionEarnCoins, coins)

	cleared := slot
	cleared.DrillType = ""
	cleared.EndsAt = nil
	return &DrillReward{Slot: cleared, Coins: coins, XP: xp}, nil
}
