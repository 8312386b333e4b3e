package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/services"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns every task, newest first
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(utils.GetPaginationParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListItemDTOs(tasks))
}

// GetTask returns a task with its comment thread
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.NotFound(c, "")
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task owned by the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}

	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(actor, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask partially updates title and description
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	taskID, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.NotFound(c, "")
		return
	}

	// Creator, assignee and completion are not accepted here.
	type UpdateTaskRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}

	var req UpdateTaskRequest
	if bindErr := decodeOptionalJSON(c, &req); bindErr != nil {
		// A missing task or a permission failure outranks a bad body.
		if err := h.taskService.AuthorizeChange(actor, taskID); err != nil {
			respondServiceError(c, err)
			return
		}
		respondBindError(c, bindErr)
		return
	}

	task, err := h.taskService.UpdateTask(actor, taskID, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task and its comments
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	taskID, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.NotFound(c, "")
		return
	}

	if err := h.taskService.DeleteTask(actor, taskID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CompleteTask marks a task as completed
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	taskID, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.NotFound(c, "")
		return
	}

	task, err := h.taskService.CompleteTask(actor, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// AssignTask sets the assignee of a task
func (h *TaskHandler) AssignTask(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	taskID, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.NotFound(c, "")
		return
	}

	type AssignTaskRequest struct {
		AssigneeID *uint64 `json:"assignee_id"`
	}

	var req AssignTaskRequest
	if bindErr := decodeOptionalJSON(c, &req); bindErr != nil {
		if err := h.taskService.AuthorizeChange(actor, taskID); err != nil {
			respondServiceError(c, err)
			return
		}
		respondBindError(c, bindErr)
		return
	}

	task, err := h.taskService.AssignTask(actor, taskID, services.AssignTaskInput{
		AssigneeID: req.AssigneeID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// SuggestTasks drafts tasks from free text using AI
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	type SuggestTasksRequest struct {
		Text string `json:"text"`
	}

	var req SuggestTasksRequest
	if !bindJSON(c, &req) {
		return
	}

	suggestions, err := h.taskService.SuggestTasks(c.Request.Context(), req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": suggestions,
	})
}
