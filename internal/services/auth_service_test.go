package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker-api/internal/models"
)

func TestRegister(t *testing.T) {
	env := setupServiceTestEnv(t, nil)

	user, err := env.authService.Register(RegisterInput{Username: "alice", Email: "alice@example.com", Password: "pass123"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, user.IsStaff)
	assert.NotEqual(t, "pass123", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)

	_, err = env.authService.Register(RegisterInput{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_Validation(t *testing.T) {
	env := setupServiceTestEnv(t, nil)

	tests := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{"blank username", RegisterInput{Username: "  ", Password: "x"}, ErrUsernameRequired},
		{"bad characters", RegisterInput{Username: "al ice", Password: "x"}, ErrUsernameInvalid},
		{"empty password", RegisterInput{Username: "alice", Password: ""}, ErrPasswordRequired},
		{"whitespace password", RegisterInput{Username: "alice", Password: "   "}, ErrPasswordRequired},
		{"password over bcrypt limit", RegisterInput{Username: "alice", Password: strings.Repeat("p", 80)}, ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.authService.Register(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := env.authService.Register(RegisterInput{Username: "alice", Password: strings.Repeat("p", 72)})
	assert.NoError(t, err)
}

func TestObtainToken(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	user, err := env.authService.Register(RegisterInput{Username: "alice", Password: "pass123"})
	require.NoError(t, err)

	pair, err := env.authService.ObtainToken(LoginInput{Username: "alice", Password: "pass123"})
	require.NoError(t, err)

	userID, err := env.tokens.Verify(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	_, err = env.authService.ObtainToken(LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.authService.ObtainToken(LoginInput{Username: "nobody", Password: "pass123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	_, err := env.authService.Register(RegisterInput{Username: "alice", Password: "pass123"})
	require.NoError(t, err)
	pair, err := env.authService.ObtainToken(LoginInput{Username: "alice", Password: "pass123"})
	require.NoError(t, err)

	access, err := env.authService.RefreshToken(pair.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	_, err = env.authService.RefreshToken(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDeleteUser_Cascades(t *testing.T) {
	env := setupServiceTestEnv(t, nil)
	alice := env.createUser(t, "alice", false)
	bob := env.createUser(t, "bob", false)

	created := env.createTask(t, alice, "alice's")
	assigned := env.createTask(t, bob, "bob's")
	_, err := env.taskService.AssignTask(bob, assigned.ID, AssignTaskInput{AssigneeID: &alice.ID})
	require.NoError(t, err)
	_, err = env.commentService.CreateComment(alice, CreateCommentInput{TaskID: &assigned.ID, Text: "mine"})
	require.NoError(t, err)

	require.NoError(t, env.authService.DeleteUser(alice.ID))

	_, err = env.taskService.GetTask(created.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	survivor, err := env.taskService.GetTask(assigned.ID)
	require.NoError(t, err)
	assert.Nil(t, survivor.AssigneeID)
	assert.Empty(t, survivor.Comments)

	var users int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)

	assert.ErrorIs(t, env.authService.DeleteUser(alice.ID), ErrUserNotFound)
}
