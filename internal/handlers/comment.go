package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/services"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// ListComments returns comments oldest first, filtered by ?task= when given
func (h *CommentHandler) ListComments(c *gin.Context) {
	var taskID *uint64
	if raw := c.Query("task"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.FieldError(c, "task", "A valid integer is required.")
			return
		}
		taskID = &id
	}

	comments, err := h.commentService.ListComments(taskID, utils.GetPaginationParams(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTOs(comments))
}

// GetComment returns a single comment
func (h *CommentHandler) GetComment(c *gin.Context) {
	commentID, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.NotFound(c, "")
		return
	}

	comment, err := h.commentService.GetComment(commentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

// CreateComment adds a comment by the current user to a task
func (h *CommentHandler) CreateComment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateCommentRequest struct {
		Task *uint64 `json:"task"`
		Text string  `json:"text"`
	}

	var req CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.CreateComment(actor, services.CreateCommentInput{
		TaskID: req.Task,
		Text:   req.Text,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// DeleteComment deletes a comment written by the current user
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	commentID, ok := middleware.GetResourceID(c)
	if !ok {
		apierrors.NotFound(c, "")
		return
	}

	if err := h.commentService.DeleteComment(actor, commentID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
