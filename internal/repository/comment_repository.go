package repository

import (
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/utils"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// FindByID finds a comment by ID with optional preloading
func (r *GormCommentRepository) FindByID(id uint64, preload ...string) (*models.Comment, error) {
	var comment models.Comment
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// List retrieves comments oldest-first, optionally for a single task
func (r *GormCommentRepository) List(filter CommentFilter, params *utils.PaginationParams) ([]models.Comment, error) {
	var comments []models.Comment

	query := r.db.Model(&models.Comment{})
	if filter.TaskID != nil {
		query = query.Where("comments.task_id = ?", *filter.TaskID)
	}

	err := query.
		Preload("Author").
		Order("comments.created_at ASC, comments.id ASC").
		Scopes(database.Paginate(params)).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return comments, nil
}

// Delete removes a comment
func (r *GormCommentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
