package repository

import (
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	// Apply preloading if specified
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// FindDetailByID finds a task with everything its detail representation shows
func (r *GormTaskRepository) FindDetailByID(id uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Preload("Creator").
		Preload("Assignee").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Preload("Comments.Author").
		First(&task, id).Error
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves all tasks newest-first
func (r *GormTaskRepository) List(params *utils.PaginationParams) ([]models.Task, error) {
	var tasks []models.Task

	err := r.db.
		Preload("Creator").
		Preload("Assignee").
		Order("tasks.created_at DESC, tasks.id DESC").
		Scopes(database.Paginate(params)).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// UpdateFields applies the given columns in one UPDATE statement
func (r *GormTaskRepository) UpdateFields(id uint64, fields map[string]interface{}) error {
	return r.db.Model(&models.Task{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes a task and its comments in a transaction
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}
