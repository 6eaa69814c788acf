package services

import (
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"kickoff-hq-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	quarters = 4

	// A scoring opportunity is a touchdown (7) 30% of the time, otherwise a
	// field goal (3).
	touchdownOdds = 0.3

	winCoinBase  = 100
	lossCoinBase = 25
	winXPBase    = 50
	lossXPBase   = 10
)

// Opponent squads are flavor only; the rating is what matters.
var opponentNames = []string{
	"Riverside Raptors",
	"Ironwood Grizzlies",
	"Bayview Breakers",
	"Hilltop Chargers",
	"Dusty Flats Drifters",
	"North End Norsemen",
}

type MatchService struct {
	DB       *gorm.DB
	Missions *MissionService
	Rand     Rand
}

func NewMatchService(db *gorm.DB, missions *MissionService, rnd Rand) *MatchService {
	if rnd == nil {
		rnd = NewRand()
	}
	return &MatchService{DB: db, Missions: missions, Rand: rnd}
}

// MatchResult is the ephemeral outcome of one simulation. Only the coin, xp
// and energy deltas are persisted onto the HQ state.
type MatchResult struct {
	Won           bool     `json:"won"`
	UserScore     int      `json:"user_score"`
	OpponentScore int      `json:"opponent_score"`
	UserOvr       int      `json:"user_ovr"`
	OpponentOvr   int      `json:"opponent_ovr"`
	OpponentName  string   `json:"opponent_name"`
	RewardCoins   int64    `json:"reward_coins"`
	RewardXP      int64    `json:"reward_xp"`
	MatchLog      []string `json:"match_log"`
}

// SimulateMatch plays one synthetic game for the user: derive the team rating,
// roll an opponent, play four quarters (plus overtime on a tie), then commit
// the coin/xp gain and the energy spend as one conditional UPDATE. Mission
// counters are best-effort afterwards.
func (s *MatchService) SimulateMatch(userID string) (*MatchResult, error) {
	state, err := loadState(s.DB, userID)
	if err != nil {
		return nil, err
	}
	if state.Energy < models.MatchEnergyCost {
		return nil, ErrNotEnoughEnergy
	}

	var unitRows []models.HQUnit
	if err := s.DB.Where("user_id = ?", userID).Find(&unitRows).Error; err != nil {
		return nil, err
	}
	units := make(map[models.UnitKey]*models.HQUnit, len(unitRows))
	for i := range unitRows {
		units[unitRows[i].UnitKey] = &unitRows[i]
	}

	result := s.play(state, units)

	// Energy gate re-checked at write time: the spend and the reward commit
	// together or not at all.
	res := s.DB.Model(&models.HQState{}).
		Where("user_id = ? AND energy >= ?", userID, models.MatchEnergyCost).
		Updates(map[string]interface{}{
			"coins":  gorm.Expr("coins + ?", result.RewardCoins),
			"xp":     gorm.Expr("xp + ?", result.RewardXP),
			"energy": gorm.Expr("energy - ?", models.MatchEnergyCost),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		state, err := loadState(s.DB, userID)
		if err != nil {
			return nil, err
		}
		if state.Energy < models.MatchEnergyCost {
			return nil, ErrNotEnoughEnergy
		}
		return nil, ErrPersistenceFailed
	}

	record := models.MatchRecord{
		ID:            uuid.NewString(),
		UserID:        userID,
		Won:           result.Won,
		UserScore:     result.UserScore,
		OpponentScore: result.OpponentScore,
		UserOvr:       result.UserOvr,
		OpponentOvr:   result.OpponentOvr,
		OpponentName:  result.OpponentName,
		RewardCoins:   result.RewardCoins,
		RewardXP:      result.RewardXP,
		Log:           strings.Join(result.MatchLog, "\n"),
	}
	if err := s.DB.Create(&record).Error; err != nil {
		// History is display data; the committed rewards stand.
		log.Printf("⚠️ failed to save match record for %s: %v", userID, err)
	}

	s.Missions.RecordProgress(userID, models.MissionPlayMatch, 1)
	s.Missions.RecordProgress(userID, models.MissionEarnCoins, result.RewardCoins)
	if result.Won {
		s.Missions.RecordProgress(userID, models.MissionWinMatch, 1)
	}

	return result, nil
}

func (s *MatchService) play(state *models.HQState, units map[models.UnitKey]*models.HQUnit) *MatchResult {
	rating := ComputeTeamRating(state, units)

	variance := rating.Ovr / 10
	if variance < 5 {
		variance = 5
	}
	opponentOvr := rating.Ovr + s.Rand.Intn(2*variance+1) - variance
	if opponentOvr < 1 {
		opponentOvr = 1
	}
	opponentName := opponentNames[s.Rand.Intn(len(opponentNames))]

	oppOffense := float64(opponentOvr) * 0.4
	oppDefense := float64(opponentOvr) * 0.4
	oppSpecial := float64(opponentOvr) * 0.2

	matchLog := []string{fmt.Sprintf("🏈 Kickoff! Your squad (OVR %d) takes on the %s (OVR %d).",
		rating.Ovr, opponentName, opponentOvr)}

	userScore, opponentScore := 0, 0
	for q := 1; q <= quarters; q++ {
		if s.Rand.Float64()*rating.Offense > s.Rand.Float64()*oppDefense {
			points := s.scoringPlay()
			userScore += points
			matchLog = append(matchLog, fmt.Sprintf("Q%d: Your offense %s — %d points!",
				q, playCall(points), points))
		}
		if s.Rand.Float64()*oppOffense > s.Rand.Float64()*rating.Defense {
			points := s.scoringPlay()
			opponentScore += points
			matchLog = append(matchLog, fmt.Sprintf("Q%d: The %s answer back %s — %d points.",
				q, opponentName, playCall(points), points))
		}
	}

	if userScore == opponentScore {
		if s.Rand.Float64()*rating.Special >= s.Rand.Float64()*oppSpecial {
			userScore += 3
			matchLog = append(matchLog, "OT: Your kicker drills it through the uprights! +3")
		} else {
			opponentScore += 3
			matchLog = append(matchLog, fmt.Sprintf("OT: The %s sneak a field goal through. +3", opponentName))
		}
	}

	won := userScore > opponentScore
	var coins, xp int64
	if won {
		coins = int64(winCoinBase + userScore*2)
		xp = int64(winXPBase + userScore)
		matchLog = append(matchLog, fmt.Sprintf("Final: %d–%d. Victory!", userScore, opponentScore))
	} else {
		coins = int64(lossCoinBase + userScore)
		xp = int64(lossXPBase + userScore/2)
		matchLog = append(matchLog, fmt.Sprintf("Final: %d–%d. Tough loss.", userScore, opponentScore))
	}
	coins = int64(math.Floor(float64(coins) * CoinMultiplier(state.StadiumLevel)))
	xp = int64(math.Floor(float64(xp) * XPMultiplier(state.FilmRoomLevel)))

	return &MatchResult{
		Won:           won,
		UserScore:     userScore,
		OpponentScore: opponentScore,
		UserOvr:       rating.Ovr,
		OpponentOvr:   opponentOvr,
		OpponentName:  opponentName,
		RewardCoins:   coins,
		RewardXP:      xp,
		MatchLog:      matchLog,
	}
}

// scoringPlay converts one scoring opportunity into points: 7 with probability
// 0.3, otherwise 3.
func (s *MatchService) scoringPlay() int {
	if s.Rand.Float64() >= 1-touchdownOdds {
		return 7
	}
	return 3
}

func playCall(points int) string {
	if points == 7 {
		return "punches in a touchdown"
	}
	return "settles for a field goal"
}

// RecentMatches returns the user's match history for the last N days, newest
// first.
func (s *MatchService) RecentMatches(userID string, days int) ([]models.MatchRecord, error) {
	var records []models.MatchRecord
	since := time.Now().AddDate(0, 0, -days)
	err := s.DB.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}
