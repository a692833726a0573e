package services

import (
	"context"

	"resortbook/constants"
	"resortbook/services/logger"
	"resortbook/services/notification"
)

// InventoryAuditor reports accommodations that were over-booked. It never
// corrects the counters.
type InventoryAuditor struct {
	accommodations *AccommodationService
	notifier       notification.Service
	logger         logger.Logger
}

func NewInventoryAuditor(accommodations *AccommodationService, notifier notification.Service, log logger.Logger) *InventoryAuditor {
	if log == nil {
		log = logger.Nop{}
	}
	return &InventoryAuditor{accommodations: accommodations, notifier: notifier, logger: log}
}

// Run returns how many over-booked accommodations were found.
func (a *InventoryAuditor) Run(ctx context.Context) (int, error) {
	overbooked, err := a.accommodations.Overbooked(ctx)
	if err != nil {
		return 0, err
	}

	for _, acc := range overbooked {
		a.logger.Warn("Accommodation %d (%s) is over-booked: available_units=%d", acc.ID, acc.Name, acc.AvailableUnits)
		err := notification.Publish(a.notifier, constants.EventInventoryOverbooked, map[string]interface{}{
			"accommodation_id": acc.ID,
			"name":             acc.Name,
			"available_units":  acc.AvailableUnits,
		})
		if err != nil {
			a.logger.Warn("failed to publish %s: %v", constants.EventInventoryOverbooked, err)
		}
	}
	return len(overbooked), nil
}
