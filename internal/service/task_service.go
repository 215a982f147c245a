package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"tasklist-be/internal/apperrors"
	"tasklist-be/internal/cache"
	"tasklist-be/internal/entities"
	"tasklist-be/internal/models"
	"tasklist-be/internal/repository"
)

// TaskService defines task operations for an authenticated owner
type TaskService interface {
	List(ctx context.Context, userID int64) ([]*models.TaskResponse, error)
	Add(ctx context.Context, userID int64, req *models.CreateTaskRequest) (*models.TaskResponse, error)
	Update(ctx context.Context, userID, taskID int64, req *models.UpdateTaskRequest) (*models.TaskResponse, error)
	Remove(ctx context.Context, userID, taskID int64) error
}

type taskService struct {
	repo     repository.TaskRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewTaskService creates a new task service. cacheClient may be nil.
func NewTaskService(repo repository.TaskRepository, cacheClient cache.Cache, cacheTTL time.Duration) TaskService {
	svc := &taskService{
		repo:     repo,
		cacheTTL: cacheTTL,
	}
	// Only set cache if provided (allows graceful degradation)
	if cacheClient != nil && cacheTTL > 0 {
		svc.cache = cacheClient
	}
	return svc
}

// List returns the owner's tasks, newest first
func (s *taskService) List(ctx context.Context, userID int64) ([]*models.TaskResponse, error) {
	key, cacheable := s.listKey(ctx, userID)
	if cacheable {
		var cached []*models.TaskResponse
		err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("Warning: task cache read failed for user %d: %v", userID, err)
		}
	}

	tasks, err := s.repo.ForOwner(userID).List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	responses := make([]*models.TaskResponse, len(tasks))
	for i, task := range tasks {
		responses[i] = toTaskResponse(task)
	}

	// key was fixed before the store read; a write since then has moved
	// readers to a newer generation.
	if cacheable {
		if err := s.cache.SetJSON(ctx, key, responses, s.cacheTTL); err != nil {
			log.Printf("Warning: task cache write failed for user %d: %v", userID, err)
		}
	}

	return responses, nil
}

// listKey returns the cache key for the owner's current list generation.
func (s *taskService) listKey(ctx context.Context, userID int64) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	gen, err := s.cache.Generation(ctx, cache.TaskListGenerationKey(userID))
	if err != nil {
		log.Printf("Warning: task cache read failed for user %d: %v", userID, err)
		return "", false
	}
	return cache.TaskListKey(userID, gen), true
}

// Add creates a task owned by userID
func (s *taskService) Add(ctx context.Context, userID int64, req *models.CreateTaskRequest) (*models.TaskResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.Validation("title required")
	}

	task, err := s.repo.ForOwner(userID).Create(ctx, req.Title)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	s.invalidate(ctx, userID)

	return toTaskResponse(task), nil
}

// Update sets the completed flag on one of the owner's tasks
func (s *taskService) Update(ctx context.Context, userID, taskID int64, req *models.UpdateTaskRequest) (*models.TaskResponse, error) {
	if req.Completed == nil {
		return nil, apperrors.Validation("completed boolean required")
	}

	task, err := s.repo.ForOwner(userID).SetCompleted(ctx, taskID, *req.Completed)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("task not found")
		}
		return nil, apperrors.Internal(err)
	}
	s.invalidate(ctx, userID)

	return toTaskResponse(task), nil
}

// Remove deletes one of the owner's tasks; missing ids are ignored
func (s *taskService) Remove(ctx context.Context, userID, taskID int64) error {
	if err := s.repo.ForOwner(userID).Delete(ctx, taskID); err != nil {
		return apperrors.Internal(err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *taskService) invalidate(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx, cache.TaskListGenerationKey(userID)); err != nil {
		log.Printf("Warning: task cache invalidation failed for user %d: %v", userID, err)
	}
}

func toTaskResponse(task *entities.Task) *models.TaskResponse {
	return &models.TaskResponse{
		ID:        task.ID,
		UserID:    task.UserID,
		Title:     task.Title,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt,
	}
}
