package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/permissions"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound         = errors.New("comment not found")
	ErrCommentPermissionDenied = errors.New("only the author can delete this comment")

	ErrCommentTaskRequired = newValidationError("task", "This field is required.")
	ErrCommentTaskNotFound = newValidationError("task", "Task does not exist")
	ErrCommentTextRequired = newValidationError("text", "This field may not be blank.")
)

// CommentService handles comment business logic. Comments cannot be edited.
type CommentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, taskRepo repository.TaskRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
	}
}

// CreateCommentInput represents input for creating a comment
type CreateCommentInput struct {
	TaskID *uint64
	Text   string
}

// CreateComment adds a comment authored by the actor to an existing task
func (s *CommentService) CreateComment(actor permissions.Actor, input CreateCommentInput) (*models.Comment, error) {
	if input.TaskID == nil {
		return nil, ErrCommentTaskRequired
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrCommentTextRequired
	}

	if _, err := s.taskRepo.FindByID(*input.TaskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	comment := &models.Comment{
		TaskID:   *input.TaskID,
		AuthorID: actor.ID,
		Text:     text,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return s.GetComment(comment.ID)
}

// ListComments returns comments oldest-first, optionally only those on taskID
func (s *CommentService) ListComments(taskID *uint64, params *utils.PaginationParams) ([]models.Comment, error) {
	comments, err := s.commentRepo.List(repository.CommentFilter{TaskID: taskID}, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// GetComment returns a comment with its author
func (s *CommentService) GetComment(commentID uint64) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID, "Author")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}
	return comment, nil
}

// DeleteComment deletes a comment if the actor wrote it or is staff
func (s *CommentService) DeleteComment(actor permissions.Actor, commentID uint64) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("failed to find comment: %w", err)
	}

	if !permissions.AuthorOrAdmin(actor, comment) {
		return ErrCommentPermissionDenied
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
