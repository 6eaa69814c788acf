// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartRolloverScheduler prunes stale daily-mission rows periodically. Seeding
// for the new period happens lazily on first access, so rollover itself needs
// no job.
func (s *MissionService) StartRolloverScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			if err := s.PruneStaleMissions(); err != nil {
				log.Printf("[Scheduler] mission prune failed: %v", err)
			}
		}),
	)
}
