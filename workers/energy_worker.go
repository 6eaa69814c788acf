package workers

import (
	"context"
	"log"
	"time"

	"kickoff-hq-service/models"

	"gorm.io/gorm"
)

// Energy regenerates passively on a fixed tick; the medical center speeds it
// up (+2 per level above 1). Capped at MaxEnergy.
const EnergyRegenBase = 10

// RegenTick tops up every HQ below the energy cap once. One bulk UPDATE;
// per-user fairness is not a concern since the rate is identical for everyone
// at a given medical-center level.
func RegenTick(db *gorm.DB) (int64, error) {
	res := db.Exec(
		`UPDATE hq_states
		 SET energy = CASE
		   WHEN energy + ? + (medical_center_level - 1) * 2 >= ? THEN ?
		   ELSE energy + ? + (medical_center_level - 1) * 2
		 END
		 WHERE energy < ? AND deleted_at IS NULL`,
		EnergyRegenBase, models.MaxEnergy, models.MaxEnergy,
		EnergyRegenBase, models.MaxEnergy,
	)
	return res.RowsAffected, res.Error
}

// PollEnergyRegen runs RegenTick once per interval until the context is done.
func PollEnergyRegen(ctx context.Context, db *gorm.DB, interval time.Duration) {
	log.Println("Starting energy regeneration worker...")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Energy regeneration worker stopped.")
			return
		case <-ticker.C:
			topped, err := RegenTick(db)
			if err != nil {
				log.Printf("❌ Energy regen tick failed: %v", err)
				continue
			}
			if topped > 0 {
				log.Printf("⚡ Regenerated energy for %d HQ(s)", topped)
			}
		}
	}
}
