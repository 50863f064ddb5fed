package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskmaster/internal/models"
	"taskmaster/internal/repository"
	"taskmaster/pkg/logger"
)

// countingRepo counts FindByID calls that reach the store.
type countingRepo struct {
	*repository.MemoryTaskRepository
	finds int
}

func (r *countingRepo) FindByID(ctx context.Context, userID, taskID string) (*models.Task, error) {
	r.finds++
	return r.MemoryTaskRepository.FindByID(ctx, userID, taskID)
}

func newCache(t *testing.T) (*TaskCache, *countingRepo, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	base := &countingRepo{MemoryTaskRepository: repository.NewMemoryTaskRepository()}
	return NewTaskCache(base, client, time.Minute), base, mr
}

func TestFindByIDMissThenHit(t *testing.T) {
	ctx := context.Background()
	c, base, mr := newCache(t)

	task := &models.Task{UserID: "u-1", Title: "Write code", Status: models.StatusPending}
	require.NoError(t, c.Create(ctx, task))

	first, err := c.FindByID(ctx, "u-1", task.ID)
	require.NoError(t, err)
	second, err := c.FindByID(ctx, "u-1", task.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, base.finds)
	assert.Equal(t, first.Title, second.Title)
	assert.True(t, mr.Exists(taskKey("u-1", task.ID)))
	ttl := mr.TTL(taskKey("u-1", task.ID))
	assert.True(t, ttl > 0 && ttl <= time.Minute, "unexpected TTL %v", ttl)
}

func TestFindByIDOtherUserNeverHitsCache(t *testing.T) {
	ctx := context.Background()
	c, _, _ := newCache(t)

	task := &models.Task{UserID: "u-1", Title: "Secret", Status: models.StatusPending}
	require.NoError(t, c.Create(ctx, task))
	_, err := c.FindByID(ctx, "u-1", task.ID)
	require.NoError(t, err)

	_, err = c.FindByID(ctx, "u-2", task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateRefreshesEntry(t *testing.T) {
	ctx := context.Background()
	c, base, _ := newCache(t)

	task := &models.Task{UserID: "u-1", Title: "Buy milk", Status: models.StatusPending}
	require.NoError(t, c.Create(ctx, task))
	_, err := c.FindByID(ctx, "u-1", task.ID)
	require.NoError(t, err)

	task.Status = models.StatusCompleted
	require.NoError(t, c.Update(ctx, task))

	got, err := c.FindByID(ctx, "u-1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, 1, base.finds)
}

func TestDeleteEvicts(t *testing.T) {
	ctx := context.Background()
	c, _, mr := newCache(t)

	task := &models.Task{UserID: "u-1", Title: "Temp", Status: models.StatusPending}
	require.NoError(t, c.Create(ctx, task))
	_, err := c.FindByID(ctx, "u-1", task.ID)
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, "u-1", task.ID))
	assert.False(t, mr.Exists(taskKey("u-1", task.ID)))

	_, err = c.FindByID(ctx, "u-1", task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCorruptEntryFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	c, base, mr := newCache(t)

	task := &models.Task{UserID: "u-1", Title: "Real", Status: models.StatusPending}
	require.NoError(t, c.Create(ctx, task))
	require.NoError(t, mr.Set(taskKey("u-1", task.ID), "{not json"))

	got, err := c.FindByID(ctx, "u-1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Real", got.Title)
	assert.Equal(t, 1, base.finds)
}

func TestRedisDownFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	c, base, mr := newCache(t)

	task := &models.Task{UserID: "u-1", Title: "Still works", Status: models.StatusPending}
	require.NoError(t, c.Create(ctx, task))
	mr.Close()

	got, err := c.FindByID(ctx, "u-1", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Still works", got.Title)
	assert.Equal(t, 1, base.finds)
}

func TestNilClientPassesThrough(t *testing.T) {
	ctx := context.Background()
	base := &countingRepo{MemoryTaskRepository: repository.NewMemoryTaskRepository()}
	c := NewTaskCache(base, nil, time.Minute)

	task := &models.Task{UserID: "u-1", Title: "No redis", Status: models.StatusPending}
	require.NoError(t, c.Create(ctx, task))
	for i := 0; i < 2; i++ {
		_, err := c.FindByID(ctx, "u-1", task.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, base.finds)
	assert.NoError(t, c.Delete(ctx, "u-1", task.ID))
}

func TestRedisFailureIsLoggedAsError(t *testing.T) {
	saved := []*zap.Logger{logger.ErrorLogger, logger.AuditLogger, logger.RequestLogger, logger.SecurityLogger, logger.SystemLogger}
	t.Cleanup(func() {
		logger.ErrorLogger, logger.AuditLogger, logger.RequestLogger, logger.SecurityLogger, logger.SystemLogger = saved[0], saved[1], saved[2], saved[3], saved[4]
	})
	dir := t.TempDir()
	require.NoError(t, logger.InitLoggers(dir))

	ctx := context.Background()
	c, _, mr := newCache(t)
	task := &models.Task{UserID: "u-1", Title: "Logged", Status: models.StatusPending}
	require.NoError(t, c.Create(ctx, task))
	mr.Close()

	_, err := c.FindByID(ctx, "u-1", task.ID)
	require.NoError(t, err)
	logger.SyncLoggers()

	data, err := os.ReadFile(filepath.Join(dir, "errors.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Task cache read failed")
	assert.Contains(t, string(data), "Task cache write failed")
}
