package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/task-tracker-api/internal/constants"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/permissions"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrTaskPermissionDenied   = errors.New("you do not have permission to perform this action")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")

	ErrTitleRequired       = newValidationError("title", "This field may not be blank.")
	ErrTitleTooLong        = newValidationError("title", fmt.Sprintf("Ensure this field has no more than %d characters.", constants.MaxTitleLength))
	ErrAssigneeRequired    = newValidationError("assignee_id", "This field is required.")
	ErrAssigneeNotFound    = newValidationError("assignee_id", "User does not exist")
	ErrSuggestionTextBlank = newValidationError("text", "This field may not be blank.")
)

// TaskSuggester drafts tasks from free text.
type TaskSuggester interface {
	SuggestTasks(ctx context.Context, text string) ([]SuggestedTask, error)
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo  repository.TaskRepository
	userRepo  repository.UserRepository
	suggester TaskSuggester
}

// NewTaskService creates a new TaskService. suggester may be nil.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, suggester TaskSuggester) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		suggester: suggester,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
}

// UpdateTaskInput represents a partial update; nil fields are left untouched
type UpdateTaskInput struct {
	Title       *string
	Description *string
}

// AssignTaskInput represents input for assigning a task
type AssignTaskInput struct {
	AssigneeID *uint64
}

// ListTasks returns every task newest-first; tasks are visible to any authenticated user
func (s *TaskService) ListTasks(params *utils.PaginationParams) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(params)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task with its creator, assignee and comment thread
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindDetailByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask creates a new task owned by the actor
func (s *TaskService) CreateTask(actor permissions.Actor, input CreateTaskInput) (*models.Task, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		CreatorID:   actor.ID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetTask(task.ID)
}

// UpdateTask changes title and/or description; creator, assignee and completion are untouched
func (s *TaskService) UpdateTask(actor permissions.Actor, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	if _, err := s.authorizedTask(actor, taskID, permissions.CreatorOrAdmin); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{}, 2)
	if input.Title != nil {
		title, err := validateTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		fields["title"] = title
	}
	if input.Description != nil {
		fields["description"] = strings.TrimSpace(*input.Description)
	}

	if len(fields) > 0 {
		if err := s.taskRepo.UpdateFields(taskID, fields); err != nil {
			return nil, fmt.Errorf("failed to update task: %w", err)
		}
	}

	return s.GetTask(taskID)
}

// AuthorizeChange loads a task and checks that the actor may update or assign
// it, without changing anything.
func (s *TaskService) AuthorizeChange(actor permissions.Actor, taskID uint64) error {
	_, err := s.authorizedTask(actor, taskID, permissions.CreatorOrAdmin)
	return err
}

// DeleteTask deletes a task and its comments
func (s *TaskService) DeleteTask(actor permissions.Actor, taskID uint64) error {
	if _, err := s.authorizedTask(actor, taskID, permissions.CreatorOrAdmin); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// CompleteTask marks a task complete. Completing a completed task succeeds.
func (s *TaskService) CompleteTask(actor permissions.Actor, taskID uint64) (*models.Task, error) {
	if _, err := s.authorizedTask(actor, taskID, permissions.CreatorOrAssigneeOrAdmin); err != nil {
		return nil, err
	}

	if err := s.taskRepo.UpdateFields(taskID, map[string]interface{}{"is_completed": true}); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return s.GetTask(taskID)
}

// AssignTask replaces the assignee of a task. Permission is checked before the
// assignee is validated because the task must be loaded first.
func (s *TaskService) AssignTask(actor permissions.Actor, taskID uint64, input AssignTaskInput) (*models.Task, error) {
	if _, err := s.authorizedTask(actor, taskID, permissions.CreatorOrAdmin); err != nil {
		return nil, err
	}

	if input.AssigneeID == nil {
		return nil, ErrAssigneeRequired
	}

	assignee, err := s.userRepo.FindByID(*input.AssigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to find assignee: %w", err)
	}

	if err := s.taskRepo.UpdateFields(taskID, map[string]interface{}{"assignee_id": assignee.ID}); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	return s.GetTask(taskID)
}

// SuggestTasks drafts tasks from free text. Nothing is persisted.
func (s *TaskService) SuggestTasks(ctx context.Context, text string) ([]SuggestedTask, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrSuggestionTextBlank
	}
	if s.suggester == nil {
		return nil, ErrAIServiceNotConfigured
	}

	suggestions, err := s.suggester.SuggestTasks(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(suggestions) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(suggestions) > constants.MaxAIGeneratedTasks {
		return nil, fmt.Errorf("AI generated too many tasks (max %d)", constants.MaxAIGeneratedTasks)
	}

	valid := make([]SuggestedTask, 0, len(suggestions))
	for _, suggestion := range suggestions {
		title, err := validateTitle(suggestion.Title)
		if err != nil {
			continue
		}
		suggestion.Title = title
		suggestion.Description = strings.TrimSpace(suggestion.Description)
		valid = append(valid, suggestion)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}

	return valid, nil
}

// authorizedTask loads a task and evaluates allow against it. A missing task
// wins over a permission failure.
func (s *TaskService) authorizedTask(actor permissions.Actor, taskID uint64, allow permissions.Predicate) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !allow(actor, task) {
		return nil, ErrTaskPermissionDenied
	}

	return task, nil
}

func validateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > constants.MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}
