package repository

import (
	"github.com/yukikurage/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user in a transaction. Tasks the user created go with their
// comments, tasks assigned to the user lose their assignee, and comments the
// user wrote anywhere are removed.
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		var createdTaskIDs []uint64
		if err := tx.Model(&models.Task{}).Where("creator_id = ?", id).Pluck("id", &createdTaskIDs).Error; err != nil {
			return err
		}
		if len(createdTaskIDs) > 0 {
			if err := tx.Where("task_id IN ?", createdTaskIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", createdTaskIDs).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Task{}).Where("assignee_id = ?", id).UpdateColumn("assignee_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}
