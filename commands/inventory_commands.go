package commands

import (
	"resortbook/models"

	"gorm.io/gorm"
)

// Command is a single write executed against the handle it was built with,
// usually a transaction.
type Command interface {
	Execute() error
}

// AdjustUnitsCommand moves available_units by delta in one atomic update.
// Positive delta releases units, negative delta takes them.
type AdjustUnitsCommand struct {
	accommodationID uint
	delta           int
	db              *gorm.DB
}

func NewAdjustUnitsCommand(accommodationID uint, delta int, db *gorm.DB) *AdjustUnitsCommand {
	return &AdjustUnitsCommand{
		accommodationID: accommodationID,
		delta:           delta,
		db:              db,
	}
}

func (c *AdjustUnitsCommand) Execute() error {
	if c.delta == 0 {
		return nil
	}
	res := c.db.Model(&models.Accommodation{}).
		Where("id = ?", c.accommodationID).
		Update("available_units", gorm.Expr("available_units + ?", c.delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleActiveCommand flips is_active without reading it first.
type ToggleActiveCommand struct {
	accommodationID uint
	db              *gorm.DB
}

func NewToggleActiveCommand(accommodationID uint, db *gorm.DB) *ToggleActiveCommand {
	return &ToggleActiveCommand{
		accommodationID: accommodationID,
		db:              db,
	}
}

func (c *ToggleActiveCommand) Execute() error {
	res := c.db.Model(&models.Accommodation{}).
		Where("id = ?", c.accommodationID).
		Update("is_active", gorm.Expr("NOT is_active"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type CreateBookingCommand struct {
	booking *models.Booking
	db      *gorm.DB
}

func NewCreateBookingCommand(booking *models.Booking, db *gorm.DB) *CreateBookingCommand {
	return &CreateBookingCommand{
		booking: booking,
		db:      db,
	}
}

func (c *CreateBookingCommand) Execute() error {
	return c.db.Omit("User", "Accommodation").Create(c.booking).Error
}

// UpdateBookingCommand writes only the given columns.
type UpdateBookingCommand struct {
	bookingID uint
	fields    map[string]interface{}
	db        *gorm.DB
}

func NewUpdateBookingCommand(bookingID uint, fields map[string]interface{}, db *gorm.DB) *UpdateBookingCommand {
	return &UpdateBookingCommand{
		bookingID: bookingID,
		fields:    fields,
		db:        db,
	}
}

func (c *UpdateBookingCommand) Execute() error {
	if len(c.fields) == 0 {
		return nil
	}
	return c.db.Model(&models.Booking{}).Where("id = ?", c.bookingID).Updates(c.fields).Error
}

type DeleteBookingCommand struct {
	bookingID uint
	db        *gorm.DB
}

func NewDeleteBookingCommand(bookingID uint, db *gorm.DB) *DeleteBookingCommand {
	return &DeleteBookingCommand{
		bookingID: bookingID,
		db:        db,
	}
}

func (c *DeleteBookingCommand) Execute() error {
	return c.db.Delete(&models.Booking{}, c.bookingID).Error
}

// Run executes commands in order and stops at the first failure.
func Run(cmds ...Command) error {
	for _, cmd := range cmds {
		if err := cmd.Execute(); err != nil {
			return err
		}
	}
	return nil
}
