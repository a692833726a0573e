package services

import (
	"context"
	"fmt"
	"io"

	"resortbook/commands"
	"resortbook/dto"
	apperrors "resortbook/errors"
	"resortbook/models"
	"resortbook/policy"
	"resortbook/services/logger"
	"resortbook/types"

	"gorm.io/gorm"
)

type AccommodationService struct {
	db        *gorm.DB
	logger    logger.Logger
	images    ImageStore
	available *AvailabilityCache
	tx        txRunner
}

type AccommodationServiceOptions struct {
	DB      *gorm.DB
	Logger  logger.Logger
	Images  ImageStore
	Cache   *AvailabilityCache
	Retries int
}

func NewAccommodationService(opts AccommodationServiceOptions) *AccommodationService {
	log := opts.Logger
	if log == nil {
		log = logger.Nop{}
	}
	return &AccommodationService{
		db:        opts.DB,
		logger:    log,
		images:    opts.Images,
		available: opts.Cache,
		tx:        newTxRunner(opts.DB, opts.Retries, log),
	}
}

func (s *AccommodationService) List(ctx context.Context, actor types.Principal, filter dto.AccommodationFilter) (*dto.AccommodationList, error) {
	if err := policy.CanManageAccommodations(actor); err != nil {
		return nil, err
	}

	var accs []models.Accommodation
	if err := s.db.WithContext(ctx).Order("name asc, id asc").Find(&accs).Error; err != nil {
		return nil, dbError(err, "")
	}

	items, suggestion := searchByName(accs, filter.Q)
	return &dto.AccommodationList{Items: items, Suggestion: suggestion}, nil
}

func (s *AccommodationService) Get(ctx context.Context, actor types.Principal, id uint) (*models.Accommodation, error) {
	if err := policy.CanManageAccommodations(actor); err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

func (s *AccommodationService) find(ctx context.Context, id uint) (*models.Accommodation, error) {
	var acc models.Accommodation
	if err := s.db.WithContext(ctx).First(&acc, id).Error; err != nil {
		return nil, dbError(err, "Accommodation not found")
	}
	return &acc, nil
}

// Create stores a new accommodation. image may be nil.
func (s *AccommodationService) Create(ctx context.Context, actor types.Principal, req dto.AccommodationRequest, image io.Reader) (*models.Accommodation, error) {
	if err := policy.CanManageAccommodations(actor); err != nil {
		return nil, err
	}

	acc := req.ToModel()
	if err := acc.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	uploaded, err := s.upload(ctx, image)
	if err != nil {
		return nil, err
	}
	if uploaded != nil {
		acc.ImagePath = &uploaded.PublicID
		acc.ImageURL = &uploaded.URL
	}

	if err := s.db.WithContext(ctx).Create(acc).Error; err != nil {
		s.discard(ctx, uploaded)
		return nil, dbError(err, "")
	}

	s.logger.Info("Accommodation %d (%s) created by user %d", acc.ID, acc.Name, actor.UserID)
	s.InvalidateAvailable(ctx)
	return acc, nil
}

// Update replaces the accommodation's fields. A new image is uploaded before
// the row changes and the previous one is destroyed only after commit.
func (s *AccommodationService) Update(ctx context.Context, actor types.Principal, id uint, req dto.AccommodationRequest, image io.Reader) (*models.Accommodation, error) {
	if err := policy.CanManageAccommodations(actor); err != nil {
		return nil, err
	}

	uploaded, err := s.upload(ctx, image)
	if err != nil {
		return nil, err
	}

	var acc *models.Accommodation
	var previous *string
	err = s.tx.run(ctx, "update accommodation", func(tx *gorm.DB) error {
		current, err := lockAccommodation(tx, id)
		if err != nil {
			return err
		}
		previous = current.ImagePath

		req.Apply(current)
		if err := current.Validate(); err != nil {
			return apperrors.Validation(err.Error(), nil)
		}
		if uploaded != nil {
			current.ImagePath = &uploaded.PublicID
			current.ImageURL = &uploaded.URL
		}
		if err := tx.Save(current).Error; err != nil {
			return err
		}
		acc = current
		return nil
	})
	if err != nil {
		s.discard(ctx, uploaded)
		return nil, dbError(err, "Accommodation not found")
	}

	if uploaded != nil && previous != nil {
		s.destroyImage(ctx, *previous)
	}
	s.InvalidateAvailable(ctx)
	return acc, nil
}

// Destroy deletes an accommodation that no booking references.
func (s *AccommodationService) Destroy(ctx context.Context, actor types.Principal, id uint) error {
	if err := policy.CanManageAccommodations(actor); err != nil {
		return err
	}

	var imagePath *string
	err := s.tx.run(ctx, "delete accommodation", func(tx *gorm.DB) error {
		acc, err := lockAccommodation(tx, id)
		if err != nil {
			return err
		}

		var bookings int64
		if err := tx.Model(&models.Booking{}).Where("accommodation_id = ?", id).Count(&bookings).Error; err != nil {
			return err
		}
		if bookings > 0 {
			return apperrors.Unprocessable("Cannot delete accommodation with existing bookings")
		}

		if err := tx.Delete(&models.Accommodation{}, id).Error; err != nil {
			return err
		}
		imagePath = acc.ImagePath
		return nil
	})
	if err != nil {
		return dbError(err, "Accommodation not found")
	}

	if imagePath != nil {
		s.destroyImage(ctx, *imagePath)
	}
	s.logger.Info("Accommodation %d deleted by user %d", id, actor.UserID)
	s.InvalidateAvailable(ctx)
	return nil
}

func (s *AccommodationService) ToggleActive(ctx context.Context, actor types.Principal, id uint) (*models.Accommodation, error) {
	if err := policy.CanManageAccommodations(actor); err != nil {
		return nil, err
	}

	var acc models.Accommodation
	err := s.tx.run(ctx, "toggle accommodation", func(tx *gorm.DB) error {
		if err := commands.NewToggleActiveCommand(id, tx).Execute(); err != nil {
			return err
		}
		return tx.First(&acc, id).Error
	})
	if err != nil {
		return nil, dbError(err, "Accommodation not found")
	}

	s.InvalidateAvailable(ctx)
	return &acc, nil
}

// Available lists bookable accommodations. Results may be served from the
// cache for up to its TTL.
func (s *AccommodationService) Available(ctx context.Context, filter dto.AvailableFilter) ([]models.Accommodation, error) {
	variant := fmt.Sprintf("type=%s:duration=%d:persons=%d", filter.Type, filter.Duration, filter.Persons)

	var accs []models.Accommodation
	key, hit, err := s.available.Load(ctx, variant, &accs)
	if err != nil {
		s.logger.Warn("available cache read failed: %v", err)
	}
	if hit {
		return accs, nil
	}

	q := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("available_units > ?", 0)
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Duration != 0 {
		q = q.Where("duration_hours = ?", filter.Duration)
	}
	if filter.Persons != 0 {
		q = q.Where("capacity_min <= ? AND capacity_max >= ?", filter.Persons, filter.Persons)
	}

	accs = make([]models.Accommodation, 0)
	if err := q.Order("price asc, id asc").Find(&accs).Error; err != nil {
		return nil, dbError(err, "")
	}

	if err := s.available.Store(ctx, key, accs); err != nil {
		s.logger.Warn("available cache write failed: %v", err)
	}
	return accs, nil
}

// Overbooked returns accommodations whose counter went below zero.
func (s *AccommodationService) Overbooked(ctx context.Context) ([]models.Accommodation, error) {
	var accs []models.Accommodation
	if err := s.db.WithContext(ctx).Where("available_units < ?", 0).Order("id asc").Find(&accs).Error; err != nil {
		return nil, dbError(err, "")
	}
	return accs, nil
}

func (s *AccommodationService) InvalidateAvailable(ctx context.Context) {
	if err := s.available.Invalidate(ctx); err != nil {
		s.logger.Warn("available cache invalidation failed: %v", err)
	}
}

func (s *AccommodationService) upload(ctx context.Context, image io.Reader) (*StoredImage, error) {
	if image == nil {
		return nil, nil
	}
	if s.images == nil {
		return nil, apperrors.Unprocessable("Image uploads are not configured")
	}
	stored, err := s.images.Upload(ctx, image)
	if err != nil {
		return nil, apperrors.Internal("Image upload failed", err)
	}
	return &stored, nil
}

// discard removes a blob that never got attached to a row.
func (s *AccommodationService) discard(ctx context.Context, uploaded *StoredImage) {
	if uploaded != nil {
		s.destroyImage(ctx, uploaded.PublicID)
	}
}

func (s *AccommodationService) destroyImage(ctx context.Context, publicID string) {
	if s.images == nil || publicID == "" {
		return
	}
	if err := s.images.Destroy(context.WithoutCancel(ctx), publicID); err != nil {
		s.logger.Warn("failed to destroy image %s: %v", publicID, err)
	}
}
