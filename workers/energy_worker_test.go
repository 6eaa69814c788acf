package workers

import (
	"context"
	"testing"
	"time"

	"kickoff-hq-service/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// One connection, or each pooled conn would get its own :memory: database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.HQState{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedState(t *testing.T, db *gorm.DB, userID string, energy, medicalLevel int) {
	t.Helper()
	state := models.HQState{
		ID:                  uuid.NewString(),
		UserID:              userID,
		Energy:              energy,
		StadiumLevel:        1,
		FilmRoomLevel:       1,
		WeightRoomLevel:     1,
		PracticeFieldLevel:  1,
		HeadquartersLevel:   1,
		MedicalCenterLevel:  medicalLevel,
		ScoutingOfficeLevel: 1,
	}
	if err := db.Create(&state).Error; err != nil {
		t.Fatalf("seed %s: %v", userID, err)
	}
}

func energyOf(t *testing.T, db *gorm.DB, userID string) int {
	t.Helper()
	var state models.HQState
	if err := db.Unscoped().Where("user_id = ?", userID).First(&state).Error; err != nil {
		t.Fatalf("load %s: %v", userID, err)
	}
	return state.Energy
}

func TestRegenTick(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	seedState(t, db, "drained", 0, 1)
	seedState(t, db, "boosted", 50, 3)
	seedState(t, db, "near_cap", 95, 1)
	seedState(t, db, "full", 100, 5)

	topped, err := RegenTick(db)
	if err != nil {
		t.Fatalf("RegenTick() error = %v", err)
	}
	if topped != 3 {
		t.Errorf("rows topped up = %d, want 3", topped)
	}

	want := map[string]int{
		"drained":  EnergyRegenBase,
		"boosted":  50 + EnergyRegenBase + 2*2,
		"near_cap": models.MaxEnergy,
		"full":     models.MaxEnergy,
	}
	for userID, wantEnergy := range want {
		if got := energyOf(t, db, userID); got != wantEnergy {
			t.Errorf("%s energy = %d, want %d", userID, got, wantEnergy)
		}
	}
}

// Repeated ticks never push energy past the cap.
func TestRegenTickCapsAtMax(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	seedState(t, db, "user_1", 85, 5)

	for i := 0; i < 3; i++ {
		if _, err := RegenTick(db); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	if got := energyOf(t, db, "user_1"); got != models.MaxEnergy {
		t.Errorf("energy = %d, want %d", got, models.MaxEnergy)
	}
}

func TestRegenTickSkipsDeletedRows(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	seedState(t, db, "gone", 40, 1)
	if err := db.Where("user_id = ?", "gone").Delete(&models.HQState{}).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	if _, err := RegenTick(db); err != nil {
		t.Fatalf("RegenTick() error = %v", err)
	}
	if got := energyOf(t, db, "gone"); got != 40 {
		t.Errorf("deleted row energy = %d, want untouched 40", got)
	}
}

func TestPollEnergyRegenStopsOnCancel(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		PollEnergyRegen(ctx, db, 10*time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}
