package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/services"
)

// Validation errors report the json name of a field rather than the Go one.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// respondServiceError maps service errors onto API error responses.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		apierrors.FieldError(c, validationErr.Field, validationErr.Message)
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrCommentNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "")
	case errors.Is(err, services.ErrTaskPermissionDenied),
		errors.Is(err, services.ErrCommentPermissionDenied):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, "")
	case errors.Is(err, services.ErrInvalidToken):
		apierrors.Unauthorized(c, "Token is invalid or expired")
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("Request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		apierrors.InternalError(c, "")
	}
}

// bindJSON binds the request body into req, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

// decodeOptionalJSON binds a body that may be empty and returns the bind
// error for the caller to report once the target resource is authorized.
func decodeOptionalJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string][]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			field := fieldErr.Field()
			details[field] = append(details[field], bindingMessage(fieldErr))
		}
		apierrors.BadRequestWithDetails(c, "Invalid request body", details)
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		apierrors.FieldError(c, typeErr.Field, "Incorrect type. Expected "+typeErr.Type.String()+".")
		return
	}

	apierrors.BadRequest(c, "Invalid request body")
}

func bindingMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return "Ensure this field has no more than " + fieldErr.Param() + " characters."
	default:
		return "Invalid value."
	}
}
