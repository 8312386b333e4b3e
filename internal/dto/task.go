package dto

import (
	"time"

	"github.com/yukikurage/task-tracker-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	Task      uint64    `json:"task"`
	Author    UserDTO   `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskDTO represents a task in detail responses
type TaskDTO struct {
	ID          uint64       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Creator     UserDTO      `json:"creator"`
	Assignee    *UserDTO     `json:"assignee"`
	IsCompleted bool         `json:"is_completed"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Comments    []CommentDTO `json:"comments"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Creator     UserDTO   `json:"creator"`
	Assignee    *UserDTO  `json:"assignee"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

func toAssigneeDTO(task models.Task) *UserDTO {
	if task.Assignee == nil {
		return nil
	}
	assignee := ToUserDTO(*task.Assignee)
	return &assignee
}

// ToCommentDTO converts a Comment model (with Author preloaded) to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	return CommentDTO{
		ID:        comment.ID,
		Task:      comment.TaskID,
		Author:    ToUserDTO(comment.Author),
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}

// ToCommentDTOs converts a slice of comments, never returning nil
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	items := make([]CommentDTO, len(comments))
	for i, comment := range comments {
		items[i] = ToCommentDTO(comment)
	}
	return items
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Creator:     ToUserDTO(task.Creator),
		Assignee:    toAssigneeDTO(task),
		IsCompleted: task.IsCompleted,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Comments:    ToCommentDTOs(task.Comments),
	}
}

// ToTaskListItemDTO converts a Task model to TaskListItemDTO
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	return TaskListItemDTO{
		ID:          task.ID,
		Title:       task.Title,
		Creator:     ToUserDTO(task.Creator),
		Assignee:    toAssigneeDTO(task),
		IsCompleted: task.IsCompleted,
		CreatedAt:   task.CreatedAt,
	}
}

// ToTaskListItemDTOs converts a slice of tasks, never returning nil
func ToTaskListItemDTOs(tasks []models.Task) []TaskListItemDTO {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}
	return items
}
