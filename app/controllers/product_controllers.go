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

type ProductController struct {
	products *repositories.ProductRepository
}

func NewProductController(products *repositories.ProductRepository) *ProductController {
	return &ProductController{products: products}
}

// Price is a pointer so "required" means the key was present: an explicit
// zero price is a valid payload, a missing price is not.
type createProductInput struct {
	ProductName string   `json:"product_name" validate:"required,max=255"`
	Price       *float64 `json:"price"        validate:"required,numeric,gte=0"`
}

type updateProductInput struct {
	ProductName *string  `json:"product_name" validate:"nullable,max=255"`
	Price       *float64 `json:"price"        validate:"nullable,numeric,gte=0"`
}

// Create handles POST /products.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in createProductInput
	if verrs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if verrs != nil {
		response.ValidationError(w, verrs)
		return
	}

	product := models.Product{ProductName: in.ProductName, Price: *in.Price}
	if err := c.products.Create(&product); err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}

	logger.WithCtx(r.Context()).Info("product created", "product_id", product.ID)
	response.Created(w, "New Product added!", product)
}

// Index handles GET /products.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.All()
	if err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}
	response.Success(w, products)
}

// Show handles GET /products/{id}.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	product, err := c.products.Find(id)
	if err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}
	response.Success(w, product)
}

// Update handles PUT /products/{id}. Existence is checked before body
// validation, same as users.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	if _, err := c.products.Find(id); err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}

	var in updateProductInput
	if verrs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if verrs != nil {
		response.ValidationError(w, verrs)
		return
	}

	product, err := c.products.Update(id, repositories.ProductUpdate{
		ProductName: in.ProductName,
		Price:       in.Price,
	})
	if err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}

	response.SuccessMessage(w, "Product updated successfully!", product)
}

// Destroy handles DELETE /products/{id}.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	if err := c.products.Delete(id); err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}

	logger.WithCtx(r.Context()).Info("product deleted", "product_id", id)
	response.Message(w, "Product deleted successfully!")
}
