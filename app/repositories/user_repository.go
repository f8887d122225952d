package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ecomm-labs/storefront-api/app/models"
	"github.com/ecomm-labs/storefront-api/pkg/errs"
	"github.com/ecomm-labs/storefront-api/pkg/metrics"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("users: create: %w", err)
	}
	return nil
}

// Find looks up a user by primary key.
func (r *UserRepository) Find(id uint) (models.User, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, errs.NotFound("User not found")
		}
		return models.User{}, fmt.Errorf("users: find %d: %w", id, err)
	}
	return user, nil
}

// All returns every user in primary-key order.
func (r *UserRepository) All() ([]models.User, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var users []models.User
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("users: list: %w", err)
	}
	return users, nil
}

// UserUpdate carries the fields of a partial update. Nil means "leave the
// current value untouched".
type UserUpdate struct {
	Name    *string
	Email   *string
	Address *string
}

// Update applies a partial update and returns the updated row.
// Fails with NotFound before any write when id does not exist.
func (r *UserRepository) Update(id uint, patch UserUpdate) (models.User, error) {
	defer metrics.ObserveDBQuery("update", time.Now())

	var user models.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("User not found")
			}
			return fmt.Errorf("users: find %d: %w", id, err)
		}

		if patch.Name != nil {
			user.Name = *patch.Name
		}
		if patch.Email != nil {
			user.Email = *patch.Email
		}
		if patch.Address != nil {
			user.Address = *patch.Address
		}

		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("users: update %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Delete removes a user together with their orders and those orders'
// association rows, all in one transaction, so no orphans remain.
func (r *UserRepository) Delete(id uint) error {
	defer metrics.ObserveDBQuery("delete", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("User not found")
			}
			return fmt.Errorf("users: find %d: %w", id, err)
		}

		var orderIDs []uint
		if err := tx.Model(&models.Order{}).
			Where("user_id = ?", id).
			Pluck("id", &orderIDs).Error; err != nil {
			return fmt.Errorf("users: collect orders of %d: %w", id, err)
		}

		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).
				Delete(&models.OrderProduct{}).Error; err != nil {
				return fmt.Errorf("users: delete order links of %d: %w", id, err)
			}
			if err := tx.Where("user_id = ?", id).
				Delete(&models.Order{}).Error; err != nil {
				return fmt.Errorf("users: delete orders of %d: %w", id, err)
			}
		}

		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("users: delete %d: %w", id, err)
		}
		return nil
	})
}

// Orders returns every order owned by the user, oldest id first.
// Fails with NotFound when the user does not exist (an empty order list for
// an existing user is not an error).
func (r *UserRepository) Orders(userID uint) ([]models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var count int64
	if err := r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("users: exists %d: %w", userID, err)
	}
	if count == 0 {
		return nil, errs.NotFound("User not found")
	}

	var orders []models.Order
	if err := r.db.Where("user_id = ?", userID).
		Order("id").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("users: orders of %d: %w", userID, err)
	}
	return orders, nil
}
