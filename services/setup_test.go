package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"resortbook/models"
	"resortbook/types"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database. A single connection makes
// concurrent transactions queue up instead of failing with SQLITE_BUSY.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) types.Principal {
	t.Helper()
	user := &models.User{
		FirstName: "Test",
		LastName:  string(role),
		Email:     email,
		Role:      role,
		Password:  "x",
	}
	require.NoError(t, db.Create(user).Error)
	return types.NewPrincipal(user)
}

type accOption func(*models.Accommodation)

func inactive() accOption { return func(a *models.Accommodation) { a.IsActive = false } }

func withUnits(n int) accOption { return func(a *models.Accommodation) { a.AvailableUnits = n } }

func seedAccommodation(t *testing.T, db *gorm.DB, name string, opts ...accOption) *models.Accommodation {
	t.Helper()
	acc := &models.Accommodation{
		Name:           name,
		Type:           models.AccommodationCottage,
		Description:    "test",
		CapacityMin:    2,
		CapacityMax:    6,
		DurationHours:  models.DurationDayUse,
		Price:          500,
		AvailableUnits: 5,
		IsActive:       true,
	}
	for _, opt := range opts {
		opt(acc)
	}
	require.NoError(t, db.Create(acc).Error)
	return acc
}

func unitsOf(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var acc models.Accommodation
	require.NoError(t, db.First(&acc, id).Error)
	return acc.AvailableUnits
}

func countBookings(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&n).Error)
	return n
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingNotifier) SendMessage(message []byte) error {
	var ev struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal(message, &ev); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev.Event)
	return nil
}

func (r *recordingNotifier) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fakeImageStore struct {
	mu        sync.Mutex
	next      int
	uploaded  []string
	destroyed []string
}

func (f *fakeImageStore) Upload(ctx context.Context, file io.Reader) (StoredImage, error) {
	if _, err := io.Copy(io.Discard, file); err != nil {
		return StoredImage{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	id := fmt.Sprintf("accommodations/img-%d", f.next)
	f.uploaded = append(f.uploaded, id)
	return StoredImage{PublicID: id, URL: "https://cdn.example/" + id + ".jpg"}, nil
}

func (f *fakeImageStore) Destroy(ctx context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

func imageFile() io.Reader {
	return bytes.NewReader([]byte("\x89PNG fake image"))
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ints map[string]int64
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}, ints: map[string]int64{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	m.mu.Lock()
	raw, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, target)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *memoryCache) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ints[key]++
	return m.ints[key], nil
}

func (m *memoryCache) GetInt(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ints[key], nil
}

type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (m *memoryRevocations) Revoke(ctx context.Context, jti string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.revoked == nil {
		m.revoked = map[string]time.Time{}
	}
	m.revoked[jti] = until
	return nil
}

func (m *memoryRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok, nil
}

const testHashCost = bcrypt.MinCost

func seedPrincipal(userID uint, role models.Role) types.Principal {
	return types.Principal{UserID: userID, Role: role}
}
