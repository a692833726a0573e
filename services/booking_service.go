package services

import (
	"context"

	"resortbook/builders"
	"resortbook/commands"
	"resortbook/constants"
	"resortbook/dto"
	apperrors "resortbook/errors"
	"resortbook/models"
	"resortbook/policy"
	"resortbook/services/logger"
	"resortbook/services/notification"
	"resortbook/types"

	"gorm.io/gorm"
)

// BookingService owns the booking lifecycle and keeps available_units in
// step with it. Every booking write and its inventory change share one
// transaction.
type BookingService struct {
	db        *gorm.DB
	logger    logger.Logger
	notifier  notification.Service
	available *AvailabilityCache
	tx        txRunner
}

type BookingServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Notifier notification.Service
	Cache    *AvailabilityCache
	Retries  int
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	log := opts.Logger
	if log == nil {
		log = logger.Nop{}
	}
	return &BookingService{
		db:        opts.DB,
		logger:    log,
		notifier:  opts.Notifier,
		available: opts.Cache,
		tx:        newTxRunner(opts.DB, opts.Retries, log),
	}
}

// Create books units of an accommodation for the actor. The gate only
// requires one unit left, so a large quantity can drive the counter negative.
func (s *BookingService) Create(ctx context.Context, actor types.Principal, req dto.CreateBookingRequest) (*models.Booking, error) {
	var booking *models.Booking
	err := s.tx.run(ctx, "create booking", func(tx *gorm.DB) error {
		acc, err := lockAccommodation(tx, req.AccommodationID)
		if err != nil {
			return err
		}
		if !acc.IsAvailable() {
			return apperrors.Unprocessable("This accommodation is currently unavailable")
		}

		b, err := builders.NewBookingBuilder().
			WithUser(actor.UserID).
			ForAccommodation(acc).
			WithQuantity(req.Quantity).
			WithPaymentMethod(req.PaymentMethod).
			Build()
		if err != nil {
			return apperrors.Validation(err.Error(), err)
		}

		if err := commands.Run(
			commands.NewCreateBookingCommand(b, tx),
			commands.NewAdjustUnitsCommand(acc.ID, -b.Quantity, tx),
		); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return nil, dbError(err, "Accommodation not found")
	}

	s.logger.Info("Booking %d created by user %d for accommodation %d (qty %d)",
		booking.ID, actor.UserID, booking.AccommodationID, booking.Quantity)

	created, err := s.load(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	s.InventoryChanged(ctx)
	s.publish(constants.EventBookingCreated, created)
	return created, nil
}

func (s *BookingService) Get(ctx context.Context, actor types.Principal, id uint) (*models.Booking, error) {
	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanAccessBooking(actor, booking, "view"); err != nil {
		return nil, err
	}
	return booking, nil
}

// List returns every booking for admins and the actor's own otherwise,
// newest first.
func (s *BookingService) List(ctx context.Context, actor types.Principal, filter dto.BookingFilter) ([]models.Booking, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.Validation("The selected status is invalid.", nil)
	}

	q := s.db.WithContext(ctx).Preload("Accommodation")
	if policy.IsAdmin(actor) {
		q = q.Preload("User")
	} else {
		q = q.Where("user_id = ?", actor.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	bookings := make([]models.Booking, 0)
	if err := q.Order("created_at desc, id desc").Find(&bookings).Error; err != nil {
		return nil, dbError(err, "")
	}
	return bookings, nil
}

// Update changes quantity or payment method. Status moves only through UpdateStatus.
func (s *BookingService) Update(ctx context.Context, actor types.Principal, id uint, req dto.UpdateBookingRequest) (*models.Booking, error) {
	inventoryMoved := false
	err := s.tx.run(ctx, "update booking", func(tx *gorm.DB) error {
		inventoryMoved = false
		booking, err := lockBooking(tx, id)
		if err != nil {
			return err
		}
		if err := policy.CanAccessBooking(actor, booking, "update"); err != nil {
			return err
		}
		if !policy.IsAdmin(actor) && booking.Status != models.BookingPending {
			return apperrors.Unprocessable("Only pending bookings can be updated")
		}
		if req.Status != nil {
			return apperrors.Unprocessable("The status field cannot be changed here, use PATCH /api/bookings/{id}/status")
		}

		fields := map[string]interface{}{}
		cmds := []commands.Command{}

		if req.PaymentMethod != nil {
			if !req.PaymentMethod.Valid() {
				return apperrors.Validation("The selected payment_method is invalid.", nil)
			}
			fields["payment_method"] = *req.PaymentMethod
		}

		if req.Quantity != nil && *req.Quantity != booking.Quantity {
			if *req.Quantity < 1 {
				return apperrors.Validation("The quantity field must be at least 1.", nil)
			}
			if booking.Status.HoldsUnits() {
				delta := booking.Quantity - *req.Quantity
				if delta < 0 {
					acc, err := lockAccommodation(tx, booking.AccommodationID)
					if err != nil {
						return err
					}
					if !acc.IsAvailable() {
						return apperrors.Unprocessable("This accommodation is currently unavailable")
					}
				}
				cmds = append(cmds, commands.NewAdjustUnitsCommand(booking.AccommodationID, delta, tx))
				inventoryMoved = true
			}
			fields["quantity"] = *req.Quantity
		}

		cmds = append(cmds, commands.NewUpdateBookingCommand(booking.ID, fields, tx))
		return commands.Run(cmds...)
	})
	if err != nil {
		return nil, dbError(err, "Booking not found")
	}

	updated, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if inventoryMoved {
		s.InventoryChanged(ctx)
	}
	s.publish(constants.EventBookingUpdated, updated)
	return updated, nil
}

// UpdateStatus is the single entry point for status changes. The units
// effect comes from the transition table on models.BookingStatus.
func (s *BookingService) UpdateStatus(ctx context.Context, actor types.Principal, id uint, status models.BookingStatus) (*models.Booking, error) {
	if err := policy.CanTransitionBooking(actor); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperrors.Validation("The selected status is invalid, must be one of pending, confirmed, completed, cancelled.", nil)
	}

	var from models.BookingStatus
	var delta int
	err := s.tx.run(ctx, "update booking status", func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, id)
		if err != nil {
			return err
		}
		from = booking.Status
		delta = booking.Status.UnitsDelta(status, booking.Quantity)

		return commands.Run(
			commands.NewAdjustUnitsCommand(booking.AccommodationID, delta, tx),
			commands.NewUpdateBookingCommand(booking.ID, map[string]interface{}{"status": status}, tx),
		)
	})
	if err != nil {
		return nil, dbError(err, "Booking not found")
	}

	s.logger.Info("Booking %d moved %s -> %s by user %d (units %+d)", id, from, status, actor.UserID, delta)

	updated, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if delta != 0 {
		s.InventoryChanged(ctx)
	}
	s.publish(constants.EventBookingStatusChanged, map[string]interface{}{
		"booking": updated,
		"from":    from,
		"to":      status,
	})
	return updated, nil
}

// Delete removes a booking and gives back its units if it still held them.
func (s *BookingService) Delete(ctx context.Context, actor types.Principal, id uint) error {
	released := false
	err := s.tx.run(ctx, "delete booking", func(tx *gorm.DB) error {
		released = false
		booking, err := lockBooking(tx, id)
		if err != nil {
			return err
		}
		if err := policy.CanAccessBooking(actor, booking, "delete"); err != nil {
			return err
		}
		if !policy.IsAdmin(actor) && booking.Status != models.BookingPending {
			return apperrors.Unprocessable("Only pending bookings can be cancelled")
		}

		cmds := []commands.Command{}
		if booking.Status.HoldsUnits() {
			cmds = append(cmds, commands.NewAdjustUnitsCommand(booking.AccommodationID, booking.Quantity, tx))
			released = true
		}
		cmds = append(cmds, commands.NewDeleteBookingCommand(booking.ID, tx))
		return commands.Run(cmds...)
	})
	if err != nil {
		return dbError(err, "Booking not found")
	}

	s.logger.Info("Booking %d deleted by user %d", id, actor.UserID)
	if released {
		s.InventoryChanged(ctx)
	}
	s.publish(constants.EventBookingDeleted, map[string]uint{"id": id})
	return nil
}

// InventoryChanged drops cached availability after a committed change.
func (s *BookingService) InventoryChanged(ctx context.Context) {
	if err := s.available.Invalidate(ctx); err != nil {
		s.logger.Warn("available cache invalidation failed: %v", err)
	}
}

func (s *BookingService) load(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Accommodation").
		First(&booking, id).Error
	if err != nil {
		return nil, dbError(err, "Booking not found")
	}
	return &booking, nil
}

func (s *BookingService) publish(event string, data interface{}) {
	if err := notification.Publish(s.notifier, event, data); err != nil {
		s.logger.Warn("failed to publish %s: %v", event, err)
	}
}
