package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ecomm-labs/storefront-api/app/models"
	"github.com/ecomm-labs/storefront-api/app/repositories"
	"github.com/ecomm-labs/storefront-api/pkg/errs"
	"github.com/ecomm-labs/storefront-api/pkg/testkit"
)

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{Name: "Ada"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestOrderCreateChecksUser(t *testing.T) {
	db := testkit.DB(t)
	repo := repositories.NewOrderRepository(db)

	date, err := models.ParseDate("2026-08-15")
	require.NoError(t, err)

	err = repo.Create(&models.Order{OrderDate: date, UserID: 999})
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindInvalidReference))
	assert.Equal(t, "Invalid customer id", err.Error())

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)

	user := seedUser(t, db)
	order := models.Order{OrderDate: date, UserID: user.ID}
	require.NoError(t, repo.Create(&order))
	require.NotZero(t, order.ID)
}

func TestOrderUpdateDate(t *testing.T) {
	db := testkit.DB(t)
	repo := repositories.NewOrderRepository(db)
	user := seedUser(t, db)

	date, err := models.ParseDate("2026-08-15")
	require.NoError(t, err)
	order := models.Order{OrderDate: date, UserID: user.ID}
	require.NoError(t, repo.Create(&order))

	next, err := models.ParseDate("2026-09-01")
	require.NoError(t, err)
	got, err := repo.Update(order.ID, repositories.OrderUpdate{OrderDate: &next})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", got.OrderDate.String())
	assert.Equal(t, user.ID, got.UserID)
}

func TestOrderAttachDetachProduct(t *testing.T) {
	db := testkit.DB(t)
	repo := repositories.NewOrderRepository(db)
	user := seedUser(t, db)

	date, err := models.ParseDate("2026-08-15")
	require.NoError(t, err)
	order := models.Order{OrderDate: date, UserID: user.ID}
	require.NoError(t, repo.Create(&order))

	product := models.Product{ProductName: "Webcam", Price: 59}
	require.NoError(t, db.Create(&product).Error)

	// Unknown endpoints fail before any membership check.
	err = repo.AttachProduct(order.ID+50, product.ID)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindInvalidReference))
	assert.Equal(t, "Invalid order id or product id.", err.Error())

	err = repo.AttachProduct(order.ID, product.ID+50)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindInvalidReference))

	require.NoError(t, repo.AttachProduct(order.ID, product.ID))

	// Attaching the same pair again is a conflict and never duplicates the row.
	err = repo.AttachProduct(order.ID, product.ID)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindConflict))
	assert.Equal(t, "Item is already included in this order.", err.Error())

	var pairCount int64
	require.NoError(t, db.Model(&models.OrderProduct{}).
		Where("order_id = ? AND product_id = ?", order.ID, product.ID).
		Count(&pairCount).Error)
	assert.EqualValues(t, 1, pairCount)

	require.NoError(t, repo.DetachProduct(order.ID, product.ID))

	list, err := repo.Products(order.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Detaching a pair that is no longer attached is also a conflict.
	err = repo.DetachProduct(order.ID, product.ID)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindConflict))
	assert.Equal(t, "Product not found in this order.", err.Error())
}

func TestOrderProductsListing(t *testing.T) {
	db := testkit.DB(t)
	repo := repositories.NewOrderRepository(db)
	user := seedUser(t, db)

	date, err := models.ParseDate("2026-08-15")
	require.NoError(t, err)
	order := models.Order{OrderDate: date, UserID: user.ID}
	require.NoError(t, repo.Create(&order))

	list, err := repo.Products(order.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	first := models.Product{ProductName: "Keyboard", Price: 89.99}
	second := models.Product{ProductName: "Dock", Price: 149}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	// Attach in reverse id order; listing still comes back by product id.
	require.NoError(t, repo.AttachProduct(order.ID, second.ID))
	require.NoError(t, repo.AttachProduct(order.ID, first.ID))

	list, err = repo.Products(order.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Keyboard", list[0].ProductName)
	assert.Equal(t, "Dock", list[1].ProductName)

	_, err = repo.Products(order.ID + 99)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}

func TestOrderDeleteCleansLinks(t *testing.T) {
	db := testkit.DB(t)
	repo := repositories.NewOrderRepository(db)
	user := seedUser(t, db)

	date, err := models.ParseDate("2026-08-15")
	require.NoError(t, err)
	order := models.Order{OrderDate: date, UserID: user.ID}
	require.NoError(t, repo.Create(&order))

	product := models.Product{ProductName: "Webcam", Price: 59}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, repo.AttachProduct(order.ID, product.ID))

	require.NoError(t, repo.Delete(order.ID))

	var linkCount int64
	require.NoError(t, db.Model(&models.OrderProduct{}).Where("order_id = ?", order.ID).Count(&linkCount).Error)
	assert.Zero(t, linkCount)

	_, err = repo.Find(order.ID)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}
