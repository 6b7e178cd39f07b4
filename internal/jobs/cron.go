package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ledgerline/contracts/internal/services"
)

// StartStatusSweep schedules the periodic status refresh for signed and
// submitted contracts. Statuses only change as calendar days pass, so a
// daily run is enough; the schedule is a standard 5-field cron spec.
func StartStatusSweep(svc *services.ContractService, schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx := context.Background()
		changed, err := svc.RefreshStatuses(ctx, time.Now())
		if err != nil {
			log.Printf("[sweep] status refresh failed: %v", err)
			return
		}
		log.Printf("[sweep] refreshed status on %d contracts", changed)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
