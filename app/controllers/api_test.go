package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ecomm-labs/storefront-api/app/models"
	"github.com/ecomm-labs/storefront-api/app/routes"
	"github.com/ecomm-labs/storefront-api/pkg/router"
	"github.com/ecomm-labs/storefront-api/pkg/testkit"
)

func newAPI(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	db := testkit.DB(t)
	r := router.New()
	routes.Register(r, db)
	return r.Handler(), db
}

func TestHome(t *testing.T) {
	h, _ := newAPI(t)

	rec := testkit.Request(t, h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Home", rec.Body.String())
}

func TestCreateUser(t *testing.T) {
	h, _ := newAPI(t)

	rec := testkit.Request(t, h, http.MethodPost, "/users", map[string]interface{}{
		"name":    "Ada Lovelace",
		"email":   "ada@example.com",
		"address": "12 Analytical Way",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := testkit.Decode(t, rec)
	assert.Equal(t, "New User added successfully!", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Ada Lovelace", data["name"])
	assert.NotZero(t, data["id"])
}

func TestCreateUserValidation(t *testing.T) {
	h, _ := newAPI(t)

	rec := testkit.Request(t, h, http.MethodPost, "/users", map[string]interface{}{
		"email": "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := testkit.Decode(t, rec)
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
}

func TestShowUserNotFound(t *testing.T) {
	h, _ := newAPI(t)

	rec := testkit.Request(t, h, http.MethodGet, "/users/42", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", testkit.Decode(t, rec)["message"])
}

func TestUpdateUserPartial(t *testing.T) {
	h, db := newAPI(t)

	user := models.User{Name: "Grace", Email: "grace@example.com", Address: "7 Compiler Court"}
	require.NoError(t, db.Create(&user).Error)

	rec := testkit.Request(t, h, http.MethodPut, fmt.Sprintf("/users/%d", user.ID), map[string]interface{}{
		"address": "1 Navy Yard",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := testkit.Decode(t, rec)
	assert.Equal(t, "User updated successfully!", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "1 Navy Yard", data["address"])
	assert.Equal(t, "Grace", data["name"])
}

func TestUpdateUserEmptyName(t *testing.T) {
	h, db := newAPI(t)

	user := models.User{Name: "Grace", Email: "grace@example.com"}
	require.NoError(t, db.Create(&user).Error)

	// An explicit empty string is applied, not rejected.
	rec := testkit.Request(t, h, http.MethodPut, fmt.Sprintf("/users/%d", user.ID), map[string]interface{}{
		"name": "",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data := testkit.Decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "", data["name"])
	assert.Equal(t, "grace@example.com", data["email"])
}

func TestUpdateUserMissingBeatsValidation(t *testing.T) {
	h, _ := newAPI(t)

	// Unknown id wins over the malformed payload: 404, not 400.
	rec := testkit.Request(t, h, http.MethodPut, "/users/42", map[string]interface{}{
		"email": "not-an-email",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", testkit.Decode(t, rec)["message"])
}

func TestDeleteUser(t *testing.T) {
	h, db := newAPI(t)

	user := models.User{Name: "Ada"}
	require.NoError(t, db.Create(&user).Error)

	rec := testkit.Request(t, h, http.MethodDelete, fmt.Sprintf("/users/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully!", testkit.Decode(t, rec)["message"])

	rec = testkit.Request(t, h, http.MethodDelete, fmt.Sprintf("/users/%d", user.ID), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProduct(t *testing.T) {
	h, _ := newAPI(t)

	rec := testkit.Request(t, h, http.MethodPost, "/products", map[string]interface{}{
		"product_name": "USB-C Dock",
		"price":        149.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "New Product added!", testkit.Decode(t, rec)["message"])
}

func TestCreateProductZeroPrice(t *testing.T) {
	h, _ := newAPI(t)

	// Price present but zero is a valid payload; only a missing key fails.
	rec := testkit.Request(t, h, http.MethodPost, "/products", map[string]interface{}{
		"product_name": "Free Sample",
		"price":        0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := testkit.Decode(t, rec)
	assert.Equal(t, "New Product added!", body["message"])
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 0, data["price"])

	rec = testkit.Request(t, h, http.MethodPost, "/products", map[string]interface{}{
		"product_name": "No Price",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := testkit.Decode(t, rec)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "price")
}

func TestCreateProductValidation(t *testing.T) {
	h, _ := newAPI(t)

	rec := testkit.Request(t, h, http.MethodPost, "/products", map[string]interface{}{
		"product_name": "Freebie",
		"price":        -5,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs := testkit.Decode(t, rec)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "price")
}

func TestListProducts(t *testing.T) {
	h, db := newAPI(t)

	require.NoError(t, db.Create(&models.Product{ProductName: "Keyboard", Price: 89.99}).Error)
	require.NoError(t, db.Create(&models.Product{ProductName: "Dock", Price: 149}).Error)

	rec := testkit.Request(t, h, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := testkit.Decode(t, rec)["data"].([]interface{})
	require.Len(t, data, 2)
}

func TestCreateOrder(t *testing.T) {
	h, db := newAPI(t)

	user := models.User{Name: "Ada"}
	require.NoError(t, db.Create(&user).Error)

	rec := testkit.Request(t, h, http.MethodPost, "/orders", map[string]interface{}{
		"order_date": "2026-08-15",
		"user_id":    user.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := testkit.Decode(t, rec)
	assert.Equal(t, "New Order Placed!", body["message"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "2026-08-15", data["order_date"])
}

func TestCreateOrderUnknownUser(t *testing.T) {
	h, _ := newAPI(t)

	rec := testkit.Request(t, h, http.MethodPost, "/orders", map[string]interface{}{
		"order_date": "2026-08-15",
		"user_id":    999,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid customer id", testkit.Decode(t, rec)["message"])
}

func TestCreateOrderBadDate(t *testing.T) {
	h, db := newAPI(t)

	user := models.User{Name: "Ada"}
	require.NoError(t, db.Create(&user).Error)

	rec := testkit.Request(t, h, http.MethodPost, "/orders", map[string]interface{}{
		"order_date": "15/08/2026",
		"user_id":    user.ID,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderItemLifecycle(t *testing.T) {
	h, db := newAPI(t)

	user := models.User{Name: "Ada"}
	require.NoError(t, db.Create(&user).Error)
	product := models.Product{ProductName: "Webcam", Price: 59}
	require.NoError(t, db.Create(&product).Error)
	date, err := models.ParseDate("2026-08-15")
	require.NoError(t, err)
	order := models.Order{OrderDate: date, UserID: user.ID}
	require.NoError(t, db.Create(&order).Error)

	attach := fmt.Sprintf("/orders/%d/add_product/%d", order.ID, product.ID)
	detach := fmt.Sprintf("/orders/%d/remove_product/%d", order.ID, product.ID)

	rec := testkit.Request(t, h, http.MethodPut, attach, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Successfully added item to order.", testkit.Decode(t, rec)["message"])

	rec = testkit.Request(t, h, http.MethodPut, attach, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Item is already included in this order.", testkit.Decode(t, rec)["message"])

	rec = testkit.Request(t, h, http.MethodGet, fmt.Sprintf("/orders/%d/products", order.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := testkit.Decode(t, rec)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "Webcam", data[0].(map[string]interface{})["product_name"])

	rec = testkit.Request(t, h, http.MethodDelete, detach, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product removed from order.", testkit.Decode(t, rec)["message"])

	rec = testkit.Request(t, h, http.MethodDelete, detach, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Product not found in this order.", testkit.Decode(t, rec)["message"])
}

func TestAttachUnknownPair(t *testing.T) {
	h, _ := newAPI(t)

	rec := testkit.Request(t, h, http.MethodPut, "/orders/5/add_product/9", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid order id or product id.", testkit.Decode(t, rec)["message"])
}

func TestOrdersByUser(t *testing.T) {
	h, db := newAPI(t)

	user := models.User{Name: "Ada"}
	require.NoError(t, db.Create(&user).Error)
	date, err := models.ParseDate("2026-08-15")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Order{OrderDate: date, UserID: user.ID}).Error)

	rec := testkit.Request(t, h, http.MethodGet, fmt.Sprintf("/orders/user/%d", user.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := testkit.Decode(t, rec)["data"].([]interface{})
	require.Len(t, data, 1)

	rec = testkit.Request(t, h, http.MethodGet, "/orders/user/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", testkit.Decode(t, rec)["message"])
}
