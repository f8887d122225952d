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

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create persists a new product record.
func (r *ProductRepository) Create(product *models.Product) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("products: create: %w", err)
	}
	return nil
}

// Find looks up a product by primary key.
func (r *ProductRepository) Find(id uint) (models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, errs.NotFound("Product not found")
		}
		return models.Product{}, fmt.Errorf("products: find %d: %w", id, err)
	}
	return product, nil
}

// All returns every product in primary-key order.
func (r *ProductRepository) All() ([]models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var products []models.Product
	if err := r.db.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("products: list: %w", err)
	}
	return products, nil
}

// ProductUpdate carries the fields of a partial update. Nil means "leave the
// current value untouched".
type ProductUpdate struct {
	ProductName *string
	Price       *float64
}

// Update applies a partial update and returns the updated row.
// Fails with NotFound before any write when id does not exist.
func (r *ProductRepository) Update(id uint, patch ProductUpdate) (models.Product, error) {
	defer metrics.ObserveDBQuery("update", time.Now())

	var product models.Product
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("Product not found")
			}
			return fmt.Errorf("products: find %d: %w", id, err)
		}

		if patch.ProductName != nil {
			product.ProductName = *patch.ProductName
		}
		if patch.Price != nil {
			product.Price = *patch.Price
		}

		if err := tx.Save(&product).Error; err != nil {
			return fmt.Errorf("products: update %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Delete removes a product and any association rows that reference it in one
// transaction, so orders never point at a vanished product.
func (r *ProductRepository) Delete(id uint) error {
	defer metrics.ObserveDBQuery("delete", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("Product not found")
			}
			return fmt.Errorf("products: find %d: %w", id, err)
		}

		if err := tx.Where("product_id = ?", id).
			Delete(&models.OrderProduct{}).Error; err != nil {
			return fmt.Errorf("products: delete links of %d: %w", id, err)
		}

		if err := tx.Delete(&product).Error; err != nil {
			return fmt.Errorf("products: delete %d: %w", id, err)
		}
		return nil
	})
}
