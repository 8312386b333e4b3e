package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/database"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/permissions"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db             *gorm.DB
	taskService    *TaskService
	commentService *CommentService
	authService    *AuthService
	tokens         *auth.TokenService
}

func setupServiceTestEnv(t *testing.T, suggester TaskSuggester) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.MigrateDatabase(db))

	tokens, err := auth.NewTokenService("test-secret", 5*time.Minute, time.Hour)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	return serviceTestEnv{
		db:             db,
		taskService:    NewTaskService(taskRepo, userRepo, suggester),
		commentService: NewCommentService(commentRepo, taskRepo),
		authService:    NewAuthService(userRepo, tokens),
		tokens:         tokens,
	}
}

func (env serviceTestEnv) createUser(t *testing.T, username string, staff bool) permissions.Actor {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "hashedpassword", IsStaff: staff}
	require.NoError(t, env.db.Create(user).Error)
	return permissions.ActorFromUser(*user)
}

func (env serviceTestEnv) createTask(t *testing.T, actor permissions.Actor, title string) *models.Task {
	t.Helper()
	task, err := env.taskService.CreateTask(actor, CreateTaskInput{Title: title})
	require.NoError(t, err)
	return task
}

func strPtr(s string) *string {
	return &s
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}
