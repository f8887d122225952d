package controllers

import (
	"net/http"

	"github.com/ecomm-labs/storefront-api/app/models"
	"github.com/ecomm-labs/storefront-api/app/repositories"
	"github.com/ecomm-labs/storefront-api/pkg/bind"
	"github.com/ecomm-labs/storefront-api/pkg/errs"
	"github.com/ecomm-labs/storefront-api/pkg/logger"
	"github.com/ecomm-labs/storefront-api/pkg/response"
)

type OrderController struct {
	orders *repositories.OrderRepository
}

func NewOrderController(orders *repositories.OrderRepository) *OrderController {
	return &OrderController{orders: orders}
}

type createOrderInput struct {
	OrderDate string `json:"order_date" validate:"required,date"`
	UserID    uint   `json:"user_id"    validate:"required,integer,gt=0"`
}

// Create handles POST /orders. Validation is two-phase: the payload shape is
// checked first (400 with field errors), then the repository verifies the
// referenced user exists (400 "Invalid customer id").
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var in createOrderInput
	if verrs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if verrs != nil {
		response.ValidationError(w, verrs)
		return
	}

	orderDate, err := models.ParseDate(in.OrderDate)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "The order_date is not a valid date.")
		return
	}

	order := models.Order{OrderDate: orderDate, UserID: in.UserID}
	if err := c.orders.Create(&order); err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}

	logger.WithCtx(r.Context()).Info("order placed", "order_id", order.ID, "user_id", order.UserID)
	response.Created(w, "New Order Placed!", order)
}

// AttachProduct handles PUT /orders/{order_id}/add_product/{product_id}.
//
// Unlike the entity endpoints, a missing order or product here is a 400
// ("Invalid order id or product id."): the relationship endpoints report
// every failure as a bad request, reserving 404 for direct entity lookups.
func (c *OrderController) AttachProduct(w http.ResponseWriter, r *http.Request) {
	orderID, productID, ok := pairIDs(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid order id or product id.")
		return
	}

	if err := c.orders.AttachProduct(orderID, productID); err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}

	logger.WithCtx(r.Context()).Info("product attached", "order_id", orderID, "product_id", productID)
	response.Message(w, "Successfully added item to order.")
}

// DetachProduct handles DELETE /orders/{order_id}/remove_product/{product_id}.
func (c *OrderController) DetachProduct(w http.ResponseWriter, r *http.Request) {
	orderID, productID, ok := pairIDs(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid order id or product id.")
		return
	}

	if err := c.orders.DetachProduct(orderID, productID); err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}

	logger.WithCtx(r.Context()).Info("product detached", "order_id", orderID, "product_id", productID)
	response.Message(w, "Product removed from order.")
}

// Products handles GET /orders/{order_id}/products.
func (c *OrderController) Products(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "order_id")
	if !ok {
		response.NotFound(w)
		return
	}

	products, err := c.orders.Products(orderID)
	if err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}
	response.Success(w, products)
}

func pairIDs(r *http.Request) (orderID, productID uint, ok bool) {
	orderID, ok = pathID(r, "order_id")
	if !ok {
		return 0, 0, false
	}
	productID, ok = pathID(r, "product_id")
	if !ok {
		return 0, 0, false
	}
	return orderID, productID, true
}
