// Package permissions holds the object-level authorization rules.
//
// Every predicate is a pure function of the acting identity and the target
// resource. Staff identities are allowed before any ownership is inspected.
package permissions

import "github.com/yukikurage/task-tracker-api/internal/models"

// Actor is the identity making a request.
type Actor struct {
	ID      uint64
	IsStaff bool
}

// ActorFromUser builds an Actor from a persisted user.
func ActorFromUser(user models.User) Actor {
	return Actor{ID: user.ID, IsStaff: user.IsStaff}
}

// Predicate decides whether an actor may act on a task.
type Predicate func(actor Actor, task *models.Task) bool

// CreatorOrAdmin governs update, delete and assign of a task.
func CreatorOrAdmin(actor Actor, task *models.Task) bool {
	if actor.IsStaff {
		return true
	}
	return task.CreatorID == actor.ID
}

// CreatorOrAssigneeOrAdmin governs completing a task.
func CreatorOrAssigneeOrAdmin(actor Actor, task *models.Task) bool {
	if actor.IsStaff {
		return true
	}
	return task.CreatorID == actor.ID || task.IsAssignedTo(actor.ID)
}

// AuthorOrAdmin governs deleting a comment.
func AuthorOrAdmin(actor Actor, comment *models.Comment) bool {
	if actor.IsStaff {
		return true
	}
	return comment.AuthorID == actor.ID
}
