package services

import (
	"testing"
	"time"

	"kickoff-hq-service/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database with the full schema.
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

	if err := db.AutoMigrate(
		&models.HQState{},
		&models.HQUnit{},
		&models.HQDecor{},
		&models.DrillSlot{},
		&models.DailyMission{},
		&models.MatchRecord{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type testEnv struct {
	db       *gorm.DB
	hq       *HQService
	drills   *DrillService
	missions *MissionService
	matches  *MatchService
	now      time.Time
}

// newTestEnv wires every service over one test database with a controllable
// clock and a seeded RNG.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{
		db:  db,
		now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	env.missions = NewMissionService(db)
	env.missions.Now = func() time.Time { return env.now }
	env.hq = NewHQService(db, env.missions)
	env.drills = NewDrillService(db, env.missions)
	env.drills.Now = func() time.Time { return env.now }
	env.matches = NewMatchService(db, env.missions, NewXorShift32(42))
	return env
}

func (e *testEnv) advance(d time.Duration) {
	e.now = e.now.Add(d)
}

// mustCreateHQ seeds a fresh user and returns the snapshot.
func (e *testEnv) mustCreateHQ(t *testing.T, userID string) *HQSnapshot {
	t.Helper()
	snap, err := e.hq.GetOrCreate(userID)
	if err != nil {
		t.Fatalf("GetOrCreate(%q) error = %v", userID, err)
	}
	return snap
}

func (e *testEnv) state(t *testing.T, userID string) *models.HQState {
	t.Helper()
	state, err := loadState(e.db, userID)
	if err != nil {
		t.Fatalf("loadState(%q) error = %v", userID, err)
	}
	return state
}
