package services

import "kickoff-hq-service/models"

// Pure reward-economy math. No I/O; callers guarantee levels >= 1.

// Position-group weights for the team rating. The /30 normalizer below is
// tuned against these; change them together.
const (
	weightQB            = 30
	weightSkill         = 20 // rb/wr/te average
	weightOL            = 20
	weightDL            = 20
	weightLB            = 20
	weightDB            = 20
	weightK             = 15
	weightP             = 10
	weightPracticeField = 5
	weightWeightRoom    = 3
	weightStadium       = 2

	ovrDivisor = 30
)

// UnitPower is the contribution of one position group at a given level.
func UnitPower(level, weight int) float64 {
	return float64(level * weight)
}

// XPMultiplier scales XP rewards by film-room level: 1.0 at level 1, +5% per
// level after that.
func XPMultiplier(filmRoomLevel int) float64 {
	return 1 + float64(filmRoomLevel-1)*0.05
}

// CoinMultiplier scales coin rewards by stadium level: 1.0 at level 1, +10%
// per level after that.
func CoinMultiplier(stadiumLevel int) float64 {
	return 1 + float64(stadiumLevel-1)*0.10
}

// TeamRating holds the offense/defense/special-teams powers and the single
// normalized OVR derived from them.
type TeamRating struct {
	Offense float64
	Defense float64
	Special float64
	Ovr     int
}

// ComputeTeamRating derives the match powers from the roster and facility
// levels. Missing roster entries count as level 1.
func ComputeTeamRating(state *models.HQState, units map[models.UnitKey]*models.HQUnit) TeamRating {
	level := func(key models.UnitKey) int {
		if u, ok := units[key]; ok && u.Level >= 1 {
			return u.Level
		}
		return 1
	}

	skillAvg := float64(level(models.UnitRB)+level(models.UnitWR)+level(models.UnitTE)) / 3.0

	offense := UnitPower(level(models.UnitQB), weightQB) +
		skillAvg*weightSkill +
		UnitPower(level(models.UnitOL), weightOL) +
		UnitPower(state.PracticeFieldLevel, weightPracticeField)

	defense := UnitPower(level(models.UnitDL), weightDL) +
		UnitPower(level(models.UnitLB), weightLB) +
		UnitPower(level(models.UnitDB), weightDB) +
		UnitPower(state.WeightRoomLevel, weightWeightRoom)

	special := UnitPower(level(models.UnitK), weightK) +
		UnitPower(level(models.UnitP), weightP) +
		UnitPower(state.StadiumLevel, weightStadium)

	return TeamRating{
		Offense: offense,
		Defense: defense,
		Special: special,
		Ovr:     int((offense + defense + special) / ovrDivisor),
	}
}
