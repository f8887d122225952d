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

type UserController struct {
	users *repositories.UserRepository
}

func NewUserController(users *repositories.UserRepository) *UserController {
	return &UserController{users: users}
}

type createUserInput struct {
	Name    string `json:"name"    validate:"required,max=255"`
	Email   string `json:"email"   validate:"nullable,email,max=255"`
	Address string `json:"address" validate:"nullable,max=255"`
}

type updateUserInput struct {
	Name    *string `json:"name"    validate:"nullable,max=255"`
	Email   *string `json:"email"   validate:"nullable,email,max=255"`
	Address *string `json:"address" validate:"nullable,max=255"`
}

func (in createUserInput) toModel() models.User {
	return models.User{
		Name:    in.Name,
		Email:   in.Email,
		Address: in.Address,
	}
}

// Create handles POST /users.
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var in createUserInput
	if verrs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if verrs != nil {
		response.ValidationError(w, verrs)
		return
	}

	user := in.toModel()
	if err := c.users.Create(&user); err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}

	logger.WithCtx(r.Context()).Info("user created", "user_id", user.ID)
	response.Created(w, "New User added successfully!", user)
}

// Index handles GET /users.
func (c *UserController) Index(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.All()
	if err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}
	response.Success(w, users)
}

// Show handles GET /users/{id}.
func (c *UserController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	user, err := c.users.Find(id)
	if err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}
	response.Success(w, user)
}

// Update handles PUT /users/{id}. The existence check runs before body
// validation so an unknown id is a 404 even with a malformed payload.
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	if _, err := c.users.Find(id); err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}

	var in updateUserInput
	if verrs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if verrs != nil {
		response.ValidationError(w, verrs)
		return
	}

	user, err := c.users.Update(id, repositories.UserUpdate{
		Name:    in.Name,
		Email:   in.Email,
		Address: in.Address,
	})
	if err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}

	response.SuccessMessage(w, "User updated successfully!", user)
}

// Destroy handles DELETE /users/{id}.
func (c *UserController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	if err := c.users.Delete(id); err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}

	logger.WithCtx(r.Context()).Info("user deleted", "user_id", id)
	response.Message(w, "User deleted successfully!")
}

// Orders handles GET /orders/user/{user_id}.
func (c *UserController) Orders(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "user_id")
	if !ok {
		response.NotFound(w)
		return
	}

	orders, err := c.users.Orders(userID)
	if err != nil {
		response.Error(w, errs.Status(err), errs.Message(err))
		return
	}
	response.Success(w, orders)
}
