package models

import (
	"time"

	"gorm.io/gorm"
)

// Fixed economy constants. Changing these changes live game balance.
const (
	StartingCoins    = 2500
	StartingEnergy   = 100
	MaxEnergy        = 100
	MaxBuildingLevel = 5
	MatchEnergyCost  = 10
	DrillSlotCount   = 3
)

// BuildingKey identifies one upgradable facility on the HQ lot.
type BuildingKey string

const (
	BuildingStadium        BuildingKey = "stadium"
	BuildingFilmRoom       BuildingKey = "film_room"
	BuildingWeightRoom     BuildingKey = "weight_room"
	BuildingPracticeField  BuildingKey = "practice_field"
	BuildingHeadquarters   BuildingKey = "headquarters"
	BuildingMedicalCenter  BuildingKey = "medical_center"
	BuildingScoutingOffice BuildingKey = "scouting_office"
)

// BuildingColumns maps a building key to its hq_states column. Doubles as the
// whitelist for dynamic update expressions — never interpolate a key that is
// not in this map.
var BuildingColumns = map[BuildingKey]string{
	BuildingStadium:        "stadium_level",
	BuildingFilmRoom:       "film_room_level",
	BuildingWeightRoom:     "weight_room_level",
	BuildingPracticeField:  "practice_field_level",
	BuildingHeadquarters:   "headquarters_level",
	BuildingMedicalCenter:  "medical_center_level",
	BuildingScoutingOffice: "scouting_office_level",
}

// BuildingBaseCosts: upgrade to the next level costs base * current level.
// Stadium L1→L2 is therefore 500 coins.
var BuildingBaseCosts = map[BuildingKey]int64{
	BuildingStadium:        500,
	BuildingFilmRoom:       400,
	BuildingWeightRoom:     400,
	BuildingPracticeField:  450,
	BuildingHeadquarters:   600,
	BuildingMedicalCenter:  550,
	BuildingScoutingOffice: 500,
}

// HQState is the per-user game-state record (one row per user, created lazily,
// never deleted).
type HQState struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`

	Coins  int64 `json:"coins" gorm:"default:0"`
	XP     int64 `json:"xp" gorm:"default:0"`
	Energy int   `json:"energy" gorm:"default:0"`

	StadiumLevel        int `json:"stadium_level" gorm:"default:1"`
	FilmRoomLevel       int `json:"film_room_level" gorm:"default:1"`
	WeightRoomLevel     int `json:"weight_room_level" gorm:"default:1"`
	PracticeFieldLevel  int `json:"practice_field_level" gorm:"default:1"`
	HeadquartersLevel   int `json:"headquarters_level" gorm:"default:1"`
	MedicalCenterLevel  int `json:"medical_center_level" gorm:"default:1"`
	ScoutingOfficeLevel int `json:"scouting_office_level" gorm:"default:1"`

	Timestamps
}

// BuildingLevel returns the stored level for a known building key.
func (s *HQState) BuildingLevel(key BuildingKey) (int, bool) {
	switch key {
	case BuildingStadium:
		return s.StadiumLevel, true
	case BuildingFilmRoom:
		return s.FilmRoomLevel, true
	case BuildingWeightRoom:
		return s.WeightRoomLevel, true
	case BuildingPracticeField:
		return s.PracticeFieldLevel, true
	case BuildingHeadquarters:
		return s.HeadquartersLevel, true
	case BuildingMedicalCenter:
		return s.MedicalCenterLevel, true
	case BuildingScoutingOffice:
		return s.ScoutingOfficeLevel, true
	}
	return 0, false
}

// UnitKey identifies a position group on the roster.
type UnitKey string

const (
	UnitQB UnitKey = "qb"
	UnitRB UnitKey = "rb"
	UnitWR UnitKey = "wr"
	UnitTE UnitKey = "te"
	UnitOL UnitKey = "ol"
	UnitDL UnitKey = "dl"
	UnitLB UnitKey = "lb"
	UnitDB UnitKey = "db"
	UnitK  UnitKey = "k"
	UnitP  UnitKey = "p"
)

// UnitStatus is a tagged variant: idle, or training until TrainsUntil.
// Training currently resolves instantly, so rows stay idle; the column exists
// so timed training can ship without a migration.
type UnitStatus string

const (
	UnitStatusIdle     UnitStatus = "idle"
	UnitStatusTraining UnitStatus = "training"
)

// DefaultRoster seeds a new HQ with one squad per position group, all level 1.
var DefaultRoster = map[UnitKey]int{
	UnitQB: 2, UnitRB: 3, UnitWR: 5, UnitTE: 3, UnitOL: 8,
	UnitDL: 6, UnitLB: 6, UnitDB: 8, UnitK: 1, UnitP: 1,
}

// UnitTrainBaseCost: training to the next level costs base * current level.
const UnitTrainBaseCost = 150

// HQUnit is one position group on a user's roster.
type HQUnit struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"index;uniqueIndex:idx_user_unit;not null" json:"user_id"`

	UnitKey     UnitKey    `gorm:"uniqueIndex:idx_user_unit;not null" json:"unit_key"`
	Count       int        `json:"count" gorm:"default:1"`
	Level       int        `json:"level" gorm:"default:1"`
	Status      UnitStatus `json:"status" gorm:"default:'idle'"`
	TrainsUntil *time.Time `json:"trains_until,omitempty"`

	Timestamps
}

// HQDecor is one owned decoration. The unique (user_id, decor_id) index is the
// already-owned guard.
type HQDecor struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID  string `gorm:"index;uniqueIndex:idx_user_decor;not null" json:"user_id"`
	DecorID string `gorm:"uniqueIndex:idx_user_decor;not null" json:"decor_id"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
