package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskmaster/internal/models"
)

// MemoryUserRepository is the STORE=memory credential store. Emails are unique
// exactly like the Postgres constraint.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]models.User
	byEmail map[string]string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return ErrDuplicateEmail
	}
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	user := r.byID[id]
	return &user, nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	user.Password = passwordHash
	user.UpdatedAt = time.Now().UTC()
	r.byID[id] = user
	return nil
}

type memoryTask struct {
	task models.Task
	seq  uint64
}

// MemoryTaskRepository is the STORE=memory task store.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	seq   uint64
	tasks map[string]memoryTask
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[string]memoryTask)}
}

func (r *MemoryTaskRepository) Create(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.CreatedAt = now
	task.UpdatedAt = now

	r.seq++
	r.tasks[task.ID] = memoryTask{task: *task, seq: r.seq}
	return nil
}

func (r *MemoryTaskRepository) List(_ context.Context, userID string, filter models.TaskFilter) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	matched := []memoryTask{}
	for _, mt := range r.tasks {
		t := mt.task
		if t.UserID != userID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		matched = append(matched, mt)
	}

	// newest first; seq breaks ties between equal timestamps
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.task.CreatedAt.Equal(b.task.CreatedAt) {
			return a.task.CreatedAt.After(b.task.CreatedAt)
		}
		return a.seq > b.seq
	})

	tasks := make([]models.Task, 0, len(matched))
	for _, mt := range matched {
		tasks = append(tasks, mt.task)
	}
	return tasks, nil
}

func (r *MemoryTaskRepository) FindByID(_ context.Context, userID, taskID string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mt, ok := r.tasks[taskID]
	if !ok || mt.task.UserID != userID {
		return nil, ErrNotFound
	}
	task := mt.task
	return &task, nil
}

func (r *MemoryTaskRepository) Update(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mt, ok := r.tasks[task.ID]
	if !ok || mt.task.UserID != task.UserID {
		return ErrNotFound
	}
	task.CreatedAt = mt.task.CreatedAt
	task.UpdatedAt = time.Now().UTC()
	mt.task = *task
	r.tasks[task.ID] = mt
	return nil
}

func (r *MemoryTaskRepository) Delete(_ context.Context, userID, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mt, ok := r.tasks[taskID]
	if !ok || mt.task.UserID != userID {
		return ErrNotFound
	}
	delete(r.tasks, taskID)
	return nil
}
