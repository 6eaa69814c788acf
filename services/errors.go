package services

import "errors"

// Sentinel errors for every game-action failure class. Messages are short and
// display-safe; handlers forward them verbatim in the response envelope.
var (
	ErrHQNotFound       = errors.New("no HQ found for this user")
	ErrInvalidBuilding  = errors.New("unknown building")
	ErrInvalidUnit      = errors.New("unknown unit")
	ErrInvalidDrillType = errors.New("unknown drill type")
	ErrInvalidDecor     = errors.New("unknown decoration")
	ErrInvalidSlot      = errors.New("invalid drill slot")

	ErrInsufficientFunds = errors.New("not enough coins")
	ErrNotEnoughEnergy   = errors.New("not enough energy")

	ErrMaxLevel      = errors.New("already at max level")
	ErrUnitTraining  = errors.New("unit is already training")
	ErrAlreadyOwned  = errors.New("decoration already owned")
	ErrSlotOccupied  = errors.New("drill slot is already occupied")
	ErrSlotEmpty     = errors.New("drill slot is empty")
	ErrDrillNotReady = errors.New("drill is not finished yet")

	ErrMissionNotFound   = errors.New("mission not found")
	ErrMissionNotDone    = errors.New("mission is not complete yet")
	ErrAlreadyClaimed    = errors.New("mission reward already claimed")
	ErrPersistenceFailed = errors.New("failed to save game state")
)
