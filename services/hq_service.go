package services

import (
	"errors"
	"fmt"
	"log"

	"kickoff-hq-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HQService struct {
	DB       *gorm.DB
	Missions *MissionService
}

func NewHQService(db *gorm.DB, missions *MissionService) *HQService {
	return &HQService{DB: db, Missions: missions}
}

// HQSnapshot is the full per-user game state returned to the client.
type HQSnapshot struct {
	State *models.HQState    `json:"state"`
	Units []models.HQUnit    `json:"units"`
	Decor []string           `json:"decor_slots"`
	Slots []models.DrillSlot `json:"drill_slots"`
}

// GetOrCreate loads the user's HQ, seeding defaults on first access. Creation
// is race-safe: inserts use ON CONFLICT DO NOTHING on the per-user unique
// indexes, then the winner's rows are re-read.
func (s *HQService) GetOrCreate(userID string) (*HQSnapshot, error) {
	var state models.HQState
	err := s.DB.Where("user_id = ?", userID).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.seedDefaults(userID); err != nil {
			return nil, err
		}
		err = s.DB.Where("user_id = ?", userID).First(&state).Error
	}
	if err != nil {
		return nil, err
	}
	return s.snapshot(&state)
}

func (s *HQService) seedDefaults(userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		state := models.HQState{
			ID:                  uuid.NewString(),
			UserID:              userID,
			Coins:               models.StartingCoins,
			Energy:              models.StartingEnergy,
			StadiumLevel:        1,
			FilmRoomLevel:       1,
			WeightRoomLevel:     1,
			PracticeFieldLevel:  1,
			HeadquartersLevel:   1,
			MedicalCenterLevel:  1,
			ScoutingOfficeLevel: 1,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&state).Error; err != nil {
			return err
		}

		units := make([]models.HQUnit, 0, len(models.DefaultRoster))
		for key, count := range models.DefaultRoster {
			units = append(units, models.HQUnit{
				ID:      uuid.NewString(),
				UserID:  userID,
				UnitKey: key,
				Count:   count,
				Level:   1,
				Status:  models.UnitStatusIdle,
			})
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "unit_key"}},
			DoNothing: true,
		}).Create(&units).Error; err != nil {
			return err
		}

		slots := make([]models.DrillSlot, 0, models.DrillSlotCount)
		for i := 0; i < models.DrillSlotCount; i++ {
			slots = append(slots, models.DrillSlot{
				ID:        uuid.NewString(),
				UserID:    userID,
				SlotIndex: i,
			})
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "slot_index"}},
			DoNothing: true,
		}).Create(&slots).Error; err != nil {
			return err
		}

		log.Printf("🏟️ HQ created for user %s (coins=%d, energy=%d)", userID, state.Coins, state.Energy)
		return nil
	})
}

func (s *HQService) snapshot(state *models.HQState) (*HQSnapshot, error) {
	var units []models.HQUnit
	if err := s.DB.Where("user_id = ?", state.UserID).Order("unit_key ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	var decor []models.HQDecor
	if err := s.DB.Where("user_id = ?", state.UserID).Order("created_at ASC").Find(&decor).Error; err != nil {
		return nil, err
	}
	decorIDs := make([]string, 0, len(decor))
	for _, d := range decor {
		decorIDs = append(decorIDs, d.DecorID)
	}
	var slots []models.DrillSlot
	if err := s.DB.Where("user_id = ?", state.UserID).Order("slot_index ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return &HQSnapshot{State: state, Units: units, Decor: decorIDs, Slots: slots}, nil
}

// loadState fetches the user's HQ row, mapping absence to ErrHQNotFound.
func loadState(db *gorm.DB, userID string) (*models.HQState, error) {
	var state models.HQState
	if err := db.Where("user_id = ?", userID).First(&state).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHQNotFound
		}
		return nil, err
	}
	return &state, nil
}

// UpgradeBuilding raises one facility level, spending coins. The level bump
// and the spend are a single conditional UPDATE so two concurrent upgrades
// cannot both pass the affordability check.
func (s *HQService) UpgradeBuilding(userID string, key models.BuildingKey) (*models.HQState, int64, error) {
	column, ok := models.BuildingColumns[key]
	if !ok {
		return nil, 0, ErrInvalidBuilding
	}

	state, err := loadState(s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	level, _ := state.BuildingLevel(key)
	if level >= models.MaxBuildingLevel {
		return nil, 0, ErrMaxLevel
	}
	cost := models.BuildingBaseCosts[key] * int64(level)
	if state.Coins < cost {
		return nil, 0, ErrInsufficientFunds
	}

	res := s.DB.Model(&models.HQState{}).
		Where(fmt.Sprintf("user_id = ? AND coins >= ? AND %s = ?", column), userID, cost, level).
		Updates(map[string]interface{}{
			column:  gorm.Expr(column+" + 1"),
			"coins": gorm.Expr("coins - ?", cost),
		})
	if res.Error != nil {
		return nil, 0, res.Error
	}
	if res.RowsAffected == 0 {
		// Balance or level moved under us; re-check for the precise error.
		return nil, 0, s.recheckUpgrade(userID, key)
	}

	s.Missions.RecordProgress(userID, models.MissionUpgradeFacility, 1)

	updated, err := loadState(s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	return updated, cost, nil
}

func (s *HQService) recheckUpgrade(userID string, key models.BuildingKey) error {
	state, err := loadState(s.DB, userID)
	if err != nil {
		return err
	}
	level, _ := state.BuildingLevel(key)
	if level >= models.MaxBuildingLevel {
		return ErrMaxLevel
	}
	if state.Coins < models.BuildingBaseCosts[key]*int64(level) {
		return ErrInsufficientFunds
	}
	return ErrPersistenceFailed
}

// TrainUnit raises a position group's level, spending coins. Training resolves
// instantly; a unit mid-training (future timed variant) cannot be retrained.
func (s *HQService) TrainUnit(userID string, key models.UnitKey) (*models.HQUnit, int64, error) {
	if _, ok := models.DefaultRoster[key]; !ok {
		return nil, 0, ErrInvalidUnit
	}

	var unit models.HQUnit
	if err := s.DB.Where("user_id = ? AND unit_key = ?", userID, key).First(&unit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrHQNotFound
		}
		return nil, 0, err
	}
	if unit.Status == models.UnitStatusTraining {
		return nil, 0, ErrUnitTraining
	}
	cost := int64(models.UnitTrainBaseCost) * int64(unit.Level)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.HQState{}).
			Where("user_id = ? AND coins >= ?", userID, cost).
			Update("coins", gorm.Expr("coins - ?", cost))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if _, err := loadState(tx, userID); err != nil {
				return err
			}
			return ErrInsufficientFunds
		}
		return s.bumpUnitLevel(tx, userID, key, unit.Level)
	})
	if err != nil {
		return nil, 0, err
	}

	if err := s.DB.Where("user_id = ? AND unit_key = ?", userID, key).First(&unit).Error; err != nil {
		return nil, 0, err
	}
	return &unit, cost, nil
}

// bumpUnitLevel raises the unit one level, guarded on the level the caller
// read and on idle status. A miss means a concurrent train or a status flip
// landed first; returning an error rolls the surrounding transaction (and its
// coin deduction) back.
func (s *HQService) bumpUnitLevel(tx *gorm.DB, userID string, key models.UnitKey, level int) error {
	res := tx.Model(&models.HQUnit{}).
		Where("user_id = ? AND unit_key = ? AND level = ? AND status = ?",
			userID, key, level, models.UnitStatusIdle).
		Update("level", level+1)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var current models.HQUnit
		if err := tx.Where("user_id = ? AND unit_key = ?", userID, key).First(&current).Error; err != nil {
			return err
		}
		if current.Status == models.UnitStatusTraining {
			return ErrUnitTraining
		}
		return ErrPersistenceFailed
	}
	return nil
}

// PurchaseDecor buys one catalog decoration. The unique (user, decor) index
// rejects double-purchase even under races; the spend only commits if the
// insert does.
func (s *HQService) PurchaseDecor(userID, decorID string) ([]string, int64, error) {
	item, ok := models.DecorCatalog[decorID]
	if !ok {
		return nil, 0, ErrInvalidDecor
	}

	if _, err := loadState(s.DB, userID); err != nil {
		return nil, 0, err
	}

	var owned int64
	if err := s.DB.Model(&models.HQDecor{}).
		Where("user_id = ? AND decor_id = ?", userID, decorID).
		Count(&owned).Error; err != nil {
		return nil, 0, err
	}
	if owned > 0 {
		return nil, 0, ErrAlreadyOwned
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.HQState{}).
			Where("user_id = ? AND coins >= ?", userID, item.Cost).
			Update("coins", gorm.Expr("coins - ?", item.Cost))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientFunds
		}
		return tx.Create(&models.HQDecor{
			ID:      uuid.NewString(),
			UserID:  userID,
			DecorID: decorID,
		}).Error
	})
	if err != nil {
		return nil, 0, err
	}

	var decor []models.HQDecor
	if err := s.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&decor).Error; err != nil {
		return nil, 0, err
	}
	ids := make([]string, 0, len(decor))
	for _, d := range decor {
		ids = append(ids, d.DecorID)
	}
	return ids, item.Cost, nil
}

// creditRewards adds coins and xp to the user's balance in one statement.
// Used by the drill and mission services after their own guards pass.
func creditRewards(db *gorm.DB, userID string, coins, xp int64) error {
	res := db.Model(&models.HQState{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"coins": gorm.Expr("coins + ?", coins),
			"xp":    gorm.Expr("xp + ?", xp),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrHQNotFound
	}
	return nil
}
