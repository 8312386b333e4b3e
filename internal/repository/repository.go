package repository

import (
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// FindDetailByID finds a task with creator, assignee and its comment thread
	FindDetailByID(id uint64) (*models.Task, error)

	// List retrieves all tasks newest-first
	List(params *utils.PaginationParams) ([]models.Task, error)

	// UpdateFields applies a single column update to a task
	UpdateFields(id uint64, fields map[string]interface{}) error

	// Delete removes a task together with its comments
	Delete(id uint64) error
}

// CommentFilter holds filtering options for listing comments
type CommentFilter struct {
	TaskID *uint64
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(comment *models.Comment) error

	// FindByID finds a comment by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Comment, error)

	// List retrieves comments oldest-first
	List(filter CommentFilter, params *utils.PaginationParams) ([]models.Comment, error)

	// Delete removes a comment
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Delete removes a user and applies the ownership cascades
	Delete(id uint64) error
}
