// Package cache adds a Redis read-through layer in front of the task store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"taskmaster/internal/models"
	"taskmaster/internal/repository"
	"taskmaster/pkg/logger"
)

// TaskCache wraps a TaskRepository and caches single-task reads. Keys embed
// the owner id, so a cached entry can never be served to another user.
// Listings are not cached because every filter/search combination differs.
type TaskCache struct {
	base  repository.TaskRepository
	redis *redis.Client
	ttl   time.Duration
}

func NewTaskCache(base repository.TaskRepository, client *redis.Client, ttl time.Duration) *TaskCache {
	if base == nil {
		panic("cache.NewTaskCache: base repository is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &TaskCache{base: base, redis: client, ttl: ttl}
}

func taskKey(userID, taskID string) string {
	return fmt.Sprintf("task:%s:%s", userID, taskID)
}

func (c *TaskCache) Create(ctx context.Context, task *models.Task) error {
	return c.base.Create(ctx, task)
}

func (c *TaskCache) List(ctx context.Context, userID string, filter models.TaskFilter) ([]models.Task, error) {
	return c.base.List(ctx, userID, filter)
}

func (c *TaskCache) FindByID(ctx context.Context, userID, taskID string) (*models.Task, error) {
	if task, ok := c.load(ctx, userID, taskID); ok {
		return task, nil
	}

	task, err := c.base.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, task)
	return task, nil
}

func (c *TaskCache) Update(ctx context.Context, task *models.Task) error {
	if err := c.base.Update(ctx, task); err != nil {
		return err
	}
	c.evict(ctx, task.UserID, task.ID)
	c.store(ctx, task)
	return nil
}

func (c *TaskCache) Delete(ctx context.Context, userID, taskID string) error {
	if err := c.base.Delete(ctx, userID, taskID); err != nil {
		return err
	}
	c.evict(ctx, userID, taskID)
	return nil
}

func (c *TaskCache) load(ctx context.Context, userID, taskID string) (*models.Task, bool) {
	if c.redis == nil {
		return nil, false
	}
	key := taskKey(userID, taskID)
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Redis errors fall back to the store without failing the request.
			logger.ErrorLogger.Error("Task cache read failed", zap.String("key", key), zap.Error(err))
			_ = c.redis.Del(ctx, key).Err()
		}
		return nil, false
	}

	var task models.Task
	if err := json.Unmarshal(data, &task); err != nil || task.UserID != userID {
		_ = c.redis.Del(ctx, key).Err()
		return nil, false
	}
	return &task, true
}

func (c *TaskCache) store(ctx context.Context, task *models.Task) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(task)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, taskKey(task.UserID, task.ID), data, c.ttl).Err(); err != nil {
		logger.ErrorLogger.Error("Task cache write failed", zap.String("task_id", task.ID), zap.Error(err))
	}
}

func (c *TaskCache) evict(ctx context.Context, userID, taskID string) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(ctx, taskKey(userID, taskID)).Err()
}
