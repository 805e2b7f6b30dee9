package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"git.solsynth.dev/hypernet/showcase/pkg/internal/database"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/media"
	"git.solsynth.dev/hypernet/showcase/pkg/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDatabase(t *testing.T) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "showcase.db") + "?_foreign_keys=1&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)

	conn, err := db.DB()
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, database.RunMigration(db))
	database.C = db
}

// setupConcurrentDatabase opens a pool of connections so transactions run on
// separate sessions. Writers queue on the immediate lock.
func setupConcurrentDatabase(t *testing.T) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "showcase.db") +
		"?_foreign_keys=1&_busy_timeout=10000&_txlock=immediate&_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)

	conn, err := db.DB()
	require.NoError(t, err)
	conn.SetMaxOpenConns(8)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, database.RunMigration(db))
	database.C = db
}

type fakeStore struct {
	mu      sync.Mutex
	deleted []string
	failing map[string]bool
	hang    bool
}

func useFakeStore(t *testing.T) *fakeStore {
	t.Helper()
	store := &fakeStore{failing: make(map[string]bool)}
	media.M = store
	t.Cleanup(func() { media.M = nil })
	return store
}

func (v *fakeStore) Delete(ctx context.Context, key string) error {
	if v.hang {
		<-ctx.Done()
		return ctx.Err()
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.failing[key] {
		return fmt.Errorf("bucket refused to delete %s", key)
	}
	v.deleted = append(v.deleted, key)
	return nil
}

func (v *fakeStore) Deleted() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.deleted...)
}

func newOwner(t *testing.T, name string) models.Owner {
	t.Helper()
	owner, err := GetOrCreateOwner(context.Background(), models.Account{
		ID:   uuid.NewString(),
		Name: name,
	})
	require.NoError(t, err)
	return owner
}

func countSkills(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, database.C.Model(&models.Skill{}).Count(&count).Error)
	return count
}

func skillExists(t *testing.T, id uint) bool {
	t.Helper()
	var count int64
	require.NoError(t, database.C.Model(&models.Skill{}).Where("id = ?", id).Count(&count).Error)
	return count > 0
}
