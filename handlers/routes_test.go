package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"kickoff-hq-service/handlers"
	"kickoff-hq-service/models"
	"kickoff-hq-service/services"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
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

	missionService := services.NewMissionService(db)
	hqService := services.NewHQService(db, missionService)
	drillService := services.NewDrillService(db, missionService)
	matchService := services.NewMatchService(db, missionService, services.NewXorShift32(1))

	app := fiber.New()
	handlers.SetupHQRoutes(app, hqService)
	handlers.SetupMatchRoutes(app, matchService)
	handlers.SetupDrillRoutes(app, drillService)
	handlers.SetupMissionRoutes(app, missionService)
	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, userID string) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return resp.StatusCode, env
}

func TestGetHQCreatesState(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	status, env := doRequest(t, app, http.MethodGet, "/hq/", "user_1")
	if status != http.StatusOK || !env.Success {
		t.Fatalf("status=%d success=%t error=%q", status, env.Success, env.Error)
	}

	var data struct {
		State models.HQState  `json:"state"`
		Units []models.HQUnit `json:"units"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.State.Coins != models.StartingCoins {
		t.Errorf("coins = %d, want %d", data.State.Coins, models.StartingCoins)
	}
	if len(data.Units) != len(models.DefaultRoster) {
		t.Errorf("units = %d, want %d", len(data.Units), len(models.DefaultRoster))
	}
}

func TestRoutesRequireUserIdentity(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	for _, path := range []string{"/hq/", "/missions/", "/drills/"} {
		status, env := doRequest(t, app, http.MethodGet, path, "")
		if status != http.StatusUnauthorized || env.Success {
			t.Errorf("%s without identity: status=%d success=%t", path, status, env.Success)
		}
	}
}

func TestUpgradeBuildingRoute(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	doRequest(t, app, http.MethodGet, "/hq/", "user_1")

	status, env := doRequest(t, app, http.MethodPost, "/hq/buildings/stadium/upgrade", "user_1")
	if status != http.StatusOK || !env.Success {
		t.Fatalf("status=%d success=%t error=%q", status, env.Success, env.Error)
	}
	var data struct {
		Level int   `json:"level"`
		Coins int64 `json:"coins"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Level != 2 || data.Coins != 2000 {
		t.Errorf("level=%d coins=%d, want 2 / 2000", data.Level, data.Coins)
	}

	status, env = doRequest(t, app, http.MethodPost, "/hq/buildings/moat/upgrade", "user_1")
	if status != http.StatusBadRequest || env.Success {
		t.Errorf("unknown building: status=%d success=%t", status, env.Success)
	}
	if env.Error != services.ErrInvalidBuilding.Error() {
		t.Errorf("error = %q, want %q", env.Error, services.ErrInvalidBuilding.Error())
	}
}

func TestSimulateMatchRoute(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	doRequest(t, app, http.MethodGet, "/hq/", "user_1")

	status, env := doRequest(t, app, http.MethodPost, "/match/simulate", "user_1")
	if status != http.StatusOK || !env.Success {
		t.Fatalf("status=%d success=%t error=%q", status, env.Success, env.Error)
	}
	var result services.MatchResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(result.MatchLog) == 0 {
		t.Errorf("expected a narrative match log")
	}

	// Simulating against a missing HQ is a 404, not a silent create.
	status, env = doRequest(t, app, http.MethodPost, "/match/simulate", "user_2")
	if status != http.StatusNotFound || env.Success {
		t.Errorf("missing HQ: status=%d success=%t", status, env.Success)
	}
}

func TestMissionRoutes(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	doRequest(t, app, http.MethodGet, "/hq/", "user_1")

	status, env := doRequest(t, app, http.MethodGet, "/missions/", "user_1")
	if status != http.StatusOK || !env.Success {
		t.Fatalf("status=%d success=%t error=%q", status, env.Success, env.Error)
	}
	var missions []models.DailyMission
	if err := json.Unmarshal(env.Data, &missions); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(missions) != len(models.MissionCatalog) {
		t.Fatalf("missions = %d, want %d", len(missions), len(models.MissionCatalog))
	}

	// Claiming an unstarted mission is a 400 with a friendly message.
	status, env = doRequest(t, app, http.MethodPost, "/missions/"+missions[0].ID+"/claim", "user_1")
	if status != http.StatusBadRequest || env.Success {
		t.Errorf("premature claim: status=%d success=%t error=%q", status, env.Success, env.Error)
	}
}

func TestDrillRoutes(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)
	doRequest(t, app, http.MethodGet, "/hq/", "user_1")

	status, env := doRequest(t, app, http.MethodGet, "/drills/", "user_1")
	if status != http.StatusOK || !env.Success {
		t.Fatalf("status=%d success=%t error=%q", status, env.Success, env.Error)
	}
	var data struct {
		Slots   []models.DrillSlot `json:"slots"`
		Catalog []models.DrillInfo `json:"catalog"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(data.Slots) != models.DrillSlotCount {
		t.Errorf("slots = %d, want %d", len(data.Slots), models.DrillSlotCount)
	}
	if len(data.Catalog) != len(models.DrillCatalog) {
		t.Errorf("catalog = %d, want %d", len(data.Catalog), len(models.DrillCatalog))
	}

	// Collecting an empty slot is a conflict.
	status, env = doRequest(t, app, http.MethodPost, "/drills/0/collect", "user_1")
	if status != http.StatusConflict || env.Success {
		t.Errorf("empty collect: status=%d success=%t error=%q", status, env.Success, env.Error)
	}
}
