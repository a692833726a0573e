package constants

import "time"

// Booking event names broadcast to admin websocket sessions.
const (
	EventBookingCreated       = "booking.created"
	EventBookingUpdated       = "booking.updated"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingDeleted       = "booking.deleted"
	EventInventoryOverbooked  = "inventory.overbooked"
)

// Cache keys
const (
	CacheKeyAvailableVersion = "accommodations:available:version"
	CacheKeyAvailablePrefix  = "accommodations:available"
	CacheKeyRevokedToken     = "revoked_tokens"
)

const AvailableCacheTTL = 30 * time.Second

// Context keys set by the auth middleware.
const (
	ContextPrincipal = "principal"
	ContextClaims    = "claims"
	ContextRequestID = "requestId"
)
