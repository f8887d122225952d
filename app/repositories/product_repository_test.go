package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomm-labs/storefront-api/app/models"
	"github.com/ecomm-labs/storefront-api/app/repositories"
	"github.com/ecomm-labs/storefront-api/pkg/errs"
	"github.com/ecomm-labs/storefront-api/pkg/testkit"
)

func TestProductCreateAndFind(t *testing.T) {
	db := testkit.DB(t)
	repo := repositories.NewProductRepository(db)

	product := models.Product{ProductName: "USB-C Dock", Price: 149}
	require.NoError(t, repo.Create(&product))
	require.NotZero(t, product.ID)

	got, err := repo.Find(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "USB-C Dock", got.ProductName)
	assert.InDelta(t, 149, got.Price, 0.001)
}

func TestProductFindMissing(t *testing.T) {
	db := testkit.DB(t)
	repo := repositories.NewProductRepository(db)

	_, err := repo.Find(7)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
	assert.Equal(t, "Product not found", err.Error())
}

func TestProductPartialUpdate(t *testing.T) {
	db := testkit.DB(t)
	repo := repositories.NewProductRepository(db)

	product := models.Product{ProductName: "Monitor", Price: 279.50}
	require.NoError(t, repo.Create(&product))

	price := 249.00
	got, err := repo.Update(product.ID, repositories.ProductUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Monitor", got.ProductName)
	assert.InDelta(t, 249, got.Price, 0.001)
}

func TestProductDeleteCleansLinks(t *testing.T) {
	db := testkit.DB(t)
	products := repositories.NewProductRepository(db)
	orders := repositories.NewOrderRepository(db)

	user := models.User{Name: "Ada"}
	require.NoError(t, db.Create(&user).Error)

	product := models.Product{ProductName: "Keyboard", Price: 89.99}
	require.NoError(t, products.Create(&product))

	date, err := models.ParseDate("2026-08-10")
	require.NoError(t, err)
	order := models.Order{OrderDate: date, UserID: user.ID}
	require.NoError(t, orders.Create(&order))
	require.NoError(t, orders.AttachProduct(order.ID, product.ID))

	require.NoError(t, products.Delete(product.ID))

	var linkCount int64
	require.NoError(t, db.Model(&models.OrderProduct{}).Where("product_id = ?", product.ID).Count(&linkCount).Error)
	assert.Zero(t, linkCount)

	// The order itself is untouched.
	_, err = orders.Find(order.ID)
	require.NoError(t, err)
}
