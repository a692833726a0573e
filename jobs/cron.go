package jobs

import (
	"context"
	"time"

	"resortbook/services/logger"

	"github.com/robfig/cron/v3"
)

const auditTimeout = time.Minute

// Auditor is the inventory check run on a schedule.
type Auditor interface {
	Run(ctx context.Context) (int, error)
}

// InitCronJobs registers the inventory audit and starts the scheduler.
func InitCronJobs(c *cron.Cron, auditor Auditor, schedule string, log logger.Logger) error {
	_, err := c.AddFunc(schedule, func() {
		RunAudit(auditor, log)
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Info("Cron jobs initialized successfully (inventory audit: %s)", schedule)
	return nil
}

// RunAudit executes one audit pass with its own timeout.
func RunAudit(auditor Auditor, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	log.Debug("Running inventory audit at %v", time.Now())
	n, err := auditor.Run(ctx)
	if err != nil {
		log.Error("Inventory audit failed: %v", err)
		return
	}
	if n > 0 {
		log.Warn("Inventory audit found %d over-booked accommodations", n)
	}
}
