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

// OrderRepository handles database operations for Order and the
// order_products association.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists a new order after verifying the referenced user exists.
// The payload is assumed schema-valid by the caller; the referential check
// here is deliberately separate so a dangling user_id surfaces as
// "Invalid customer id" rather than a generic validation failure.
func (r *OrderRepository) Create(order *models.Order) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("id = ?", order.UserID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("orders: check user %d: %w", order.UserID, err)
		}
		if count == 0 {
			return errs.InvalidReference("Invalid customer id")
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("orders: create: %w", err)
		}
		return nil
	})
}

// Find looks up an order by primary key.
func (r *OrderRepository) Find(id uint) (models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var order models.Order
	if err := r.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, errs.NotFound("Order not found")
		}
		return models.Order{}, fmt.Errorf("orders: find %d: %w", id, err)
	}
	return order, nil
}

// All returns every order in primary-key order.
func (r *OrderRepository) All() ([]models.Order, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var orders []models.Order
	if err := r.db.Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("orders: list: %w", err)
	}
	return orders, nil
}

// OrderUpdate carries the fields of a partial update. The owning user is
// fixed at creation time and cannot be changed here.
type OrderUpdate struct {
	OrderDate *models.Date
}

// Update applies a partial update and returns the updated row.
func (r *OrderRepository) Update(id uint, patch OrderUpdate) (models.Order, error) {
	defer metrics.ObserveDBQuery("update", time.Now())

	var order models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("Order not found")
			}
			return fmt.Errorf("orders: find %d: %w", id, err)
		}

		if patch.OrderDate != nil {
			order.OrderDate = *patch.OrderDate
		}

		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("orders: update %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// Delete removes an order and its association rows in one transaction.
func (r *OrderRepository) Delete(id uint) error {
	defer metrics.ObserveDBQuery("delete", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("Order not found")
			}
			return fmt.Errorf("orders: find %d: %w", id, err)
		}

		if err := tx.Where("order_id = ?", id).
			Delete(&models.OrderProduct{}).Error; err != nil {
			return fmt.Errorf("orders: delete links of %d: %w", id, err)
		}

		if err := tx.Delete(&order).Error; err != nil {
			return fmt.Errorf("orders: delete %d: %w", id, err)
		}
		return nil
	})
}

// AttachProduct adds product productID to order orderID.
//
// The outcome is three-way: a missing order or product is an invalid
// reference, an already-attached pair is a conflict, anything else inserts
// the pair. Membership is decided by a direct count on order_products; the
// order's product collection is never loaded.
func (r *OrderRepository) AttachProduct(orderID, productID uint) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.checkPairExists(tx, orderID, productID); err != nil {
			return err
		}

		attached, err := r.isAttached(tx, orderID, productID)
		if err != nil {
			return err
		}
		if attached {
			return errs.Conflict("Item is already included in this order.")
		}

		link := models.OrderProduct{OrderID: orderID, ProductID: productID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("orders: attach %d->%d: %w", orderID, productID, err)
		}
		return nil
	})
}

// DetachProduct removes product productID from order orderID. A pair that is
// not attached is a conflict ("not in this order"), mirroring AttachProduct.
func (r *OrderRepository) DetachProduct(orderID, productID uint) error {
	defer metrics.ObserveDBQuery("delete", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.checkPairExists(tx, orderID, productID); err != nil {
			return err
		}

		attached, err := r.isAttached(tx, orderID, productID)
		if err != nil {
			return err
		}
		if !attached {
			return errs.Conflict("Product not found in this order.")
		}

		if err := tx.Where("order_id = ? AND product_id = ?", orderID, productID).
			Delete(&models.OrderProduct{}).Error; err != nil {
			return fmt.Errorf("orders: detach %d->%d: %w", orderID, productID, err)
		}
		return nil
	})
}

// Products returns the products attached to the order, lowest product id
// first. Fails with NotFound when the order does not exist.
func (r *OrderRepository) Products(orderID uint) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var count int64
	if err := r.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("orders: exists %d: %w", orderID, err)
	}
	if count == 0 {
		return nil, errs.NotFound("Order not found")
	}

	var products []models.Product
	if err := r.db.Model(&models.Product{}).
		Joins("JOIN order_products ON order_products.product_id = products.id").
		Where("order_products.order_id = ?", orderID).
		Order("products.id").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("orders: products of %d: %w", orderID, err)
	}
	return products, nil
}

// checkPairExists verifies both endpoints of an association mutation.
// Either side missing collapses into a single invalid-reference error, as the
// relationship endpoints do not distinguish which id was bad.
func (r *OrderRepository) checkPairExists(tx *gorm.DB, orderID, productID uint) error {
	var count int64
	if err := tx.Model(&models.Order{}).
		Where("id = ?", orderID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("orders: exists %d: %w", orderID, err)
	}
	if count == 0 {
		return errs.InvalidReference("Invalid order id or product id.")
	}

	if err := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("orders: product exists %d: %w", productID, err)
	}
	if count == 0 {
		return errs.InvalidReference("Invalid order id or product id.")
	}
	return nil
}

func (r *OrderRepository) isAttached(tx *gorm.DB, orderID, productID uint) (bool, error) {
	var count int64
	if err := tx.Model(&models.OrderProduct{}).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("orders: membership %d->%d: %w", orderID, productID, err)
	}
	return count > 0, nil
}
