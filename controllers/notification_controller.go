package controllers

import (
	"resortbook/response"
	"resortbook/services/logger"
	"resortbook/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// NotificationController upgrades admin connections to the event stream.
type NotificationController struct {
	melody *melody.Melody
	logger logger.Logger
}

type NotificationControllerOptions struct {
	Logger logger.Logger
}

func NewNotificationController(opts NotificationControllerOptions, m *melody.Melody) *NotificationController {
	log := opts.Logger
	if log == nil {
		log = logger.Nop{}
	}
	ctl := &NotificationController{melody: m, logger: log}

	m.HandleConnect(func(s *melody.Session) {
		userID, _ := s.Get("user_id")
		ctl.logger.Debug("websocket connected: user %v", userID)
	})
	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get("user_id")
		ctl.logger.Debug("websocket disconnected: user %v", userID)
	})
	m.HandleError(func(s *melody.Session, err error) {
		ctl.logger.Warn("websocket error: %v", err)
	})
	return ctl
}

// Connect godoc
// @Summary Admin booking event stream (websocket)
// @Tags admin
// @Security BearerAuth
// @Router /ws [get]
func (ctl *NotificationController) Connect(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	keys := map[string]interface{}{
		notification.SessionRoleKey: actor.Role,
		"user_id":                   actor.UserID,
	}
	if err := ctl.melody.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		ctl.logger.Warn("websocket upgrade failed: %v", err)
		if !c.Writer.Written() {
			response.Error(c, err)
		}
	}
}
