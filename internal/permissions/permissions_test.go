package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/task-tracker-api/internal/models"
)

func uintPtr(v uint64) *uint64 {
	return &v
}

func TestCreatorOrAdmin(t *testing.T) {
	task := &models.Task{ID: 1, CreatorID: 10, AssigneeID: uintPtr(20)}

	assert.True(t, CreatorOrAdmin(Actor{ID: 10}, task))
	assert.False(t, CreatorOrAdmin(Actor{ID: 20}, task), "assignee may not edit")
	assert.False(t, CreatorOrAdmin(Actor{ID: 30}, task))
	assert.True(t, CreatorOrAdmin(Actor{ID: 30, IsStaff: true}, task))
}

func TestCreatorOrAssigneeOrAdmin(t *testing.T) {
	assigned := &models.Task{ID: 1, CreatorID: 10, AssigneeID: uintPtr(20)}
	unassigned := &models.Task{ID: 2, CreatorID: 10}

	assert.True(t, CreatorOrAssigneeOrAdmin(Actor{ID: 10}, assigned))
	assert.True(t, CreatorOrAssigneeOrAdmin(Actor{ID: 20}, assigned))
	assert.False(t, CreatorOrAssigneeOrAdmin(Actor{ID: 30}, assigned))
	assert.False(t, CreatorOrAssigneeOrAdmin(Actor{ID: 20}, unassigned))
	assert.True(t, CreatorOrAssigneeOrAdmin(Actor{ID: 30, IsStaff: true}, unassigned))
}

func TestAuthorOrAdmin(t *testing.T) {
	comment := &models.Comment{ID: 1, TaskID: 1, AuthorID: 10}

	assert.True(t, AuthorOrAdmin(Actor{ID: 10}, comment))
	assert.False(t, AuthorOrAdmin(Actor{ID: 11}, comment))
	assert.True(t, AuthorOrAdmin(Actor{ID: 11, IsStaff: true}, comment))
}

func TestActorFromUser(t *testing.T) {
	actor := ActorFromUser(models.User{ID: 7, IsStaff: true})
	assert.Equal(t, Actor{ID: 7, IsStaff: true}, actor)
}
