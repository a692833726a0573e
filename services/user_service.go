package services

import (
	"context"
	"strings"

	"resortbook/commands"
	"resortbook/constants"
	"resortbook/dto"
	"resortbook/models"
	"resortbook/policy"
	"resortbook/services/logger"
	"resortbook/services/notification"
	"resortbook/types"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserService struct {
	db        *gorm.DB
	logger    logger.Logger
	notifier  notification.Service
	available *AvailabilityCache
	tx        txRunner
	hashCost  int
}

type UserServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Notifier notification.Service
	Cache    *AvailabilityCache
	Retries  int
	HashCost int
}

func NewUserService(opts UserServiceOptions) *UserService {
	log := opts.Logger
	if log == nil {
		log = logger.Nop{}
	}
	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserService{
		db:        opts.DB,
		logger:    log,
		notifier:  opts.Notifier,
		available: opts.Cache,
		tx:        newTxRunner(opts.DB, opts.Retries, log),
		hashCost:  cost,
	}
}

func (s *UserService) List(ctx context.Context, actor types.Principal) ([]models.User, error) {
	if err := policy.CanListUsers(actor); err != nil {
		return nil, err
	}
	users := make([]models.User, 0)
	if err := s.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return nil, dbError(err, "")
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, actor types.Principal, id uint) (*models.User, error) {
	if err := policy.CanManageUser(actor, id); err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

func (s *UserService) find(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, dbError(err, "User not found")
	}
	return &user, nil
}

// Update changes profile fields. The role is never touched here.
func (s *UserService) Update(ctx context.Context, actor types.Principal, id uint, req dto.UpdateUserRequest) (*models.User, error) {
	if err := policy.CanManageUser(actor, id); err != nil {
		return nil, err
	}
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.ContactNumber != nil {
		fields["contact_number"] = *req.ContactNumber
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if err := emailFree(ctx, s.db, email, id); err != nil {
			return nil, err
		}
		fields["email"] = email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.hashCost)
		if err != nil {
			return nil, dbError(err, "")
		}
		fields["password"] = string(hash)
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, dbError(err, "User not found")
		}
	}
	return s.find(ctx, id)
}

// Delete removes the user and their bookings. Bookings that still held
// units give them back in the same transaction.
func (s *UserService) Delete(ctx context.Context, actor types.Principal, id uint) error {
	if err := policy.CanManageUser(actor, id); err != nil {
		return err
	}

	released := 0
	err := s.tx.run(ctx, "delete user", func(tx *gorm.DB) error {
		released = 0
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error; err != nil {
			return err
		}

		var holding []models.Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND status IN ?", id, []models.BookingStatus{models.BookingPending, models.BookingConfirmed}).
			Order("accommodation_id asc").
			Find(&holding).Error
		if err != nil {
			return err
		}

		cmds := make([]commands.Command, 0, len(holding))
		for _, b := range holding {
			cmds = append(cmds, commands.NewAdjustUnitsCommand(b.AccommodationID, b.Quantity, tx))
		}
		if err := commands.Run(cmds...); err != nil {
			return err
		}
		released = len(holding)

		if err := tx.Where("user_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return dbError(err, "User not found")
	}

	s.logger.Info("User %d deleted by user %d, %d bookings released", id, actor.UserID, released)
	if released > 0 {
		if err := s.available.Invalidate(ctx); err != nil {
			s.logger.Warn("available cache invalidation failed: %v", err)
		}
		if err := notification.Publish(s.notifier, constants.EventBookingDeleted, map[string]interface{}{"user_id": id, "released": released}); err != nil {
			s.logger.Warn("failed to publish %s: %v", constants.EventBookingDeleted, err)
		}
	}
	return nil
}
