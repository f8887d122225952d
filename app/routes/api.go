// Package routes declares the HTTP route table for the storefront API.
package routes

import (
	"gorm.io/gorm"

	"github.com/ecomm-labs/storefront-api/app/controllers"
	"github.com/ecomm-labs/storefront-api/app/repositories"
	"github.com/ecomm-labs/storefront-api/pkg/metrics"
	"github.com/ecomm-labs/storefront-api/pkg/router"
)

// Register wires every controller onto the router. Route names feed the
// route:list command and URL reversal.
func Register(r *router.Router, db *gorm.DB) {
	users := controllers.NewUserController(repositories.NewUserRepository(db))
	products := controllers.NewProductController(repositories.NewProductRepository(db))
	orders := controllers.NewOrderController(repositories.NewOrderRepository(db))
	health := controllers.NewHealthController(db)

	r.Get("/", "home", health.Home)
	r.Get("/healthz", "health.check", health.Check)
	r.HandleFunc("/metrics", metrics.Handler())

	r.Post("/users", "users.create", users.Create)
	r.Get("/users", "users.index", users.Index)
	r.Get("/users/{id}", "users.show", users.Show)
	r.Put("/users/{id}", "users.update", users.Update)
	r.Delete("/users/{id}", "users.destroy", users.Destroy)

	r.Post("/products", "products.create", products.Create)
	r.Get("/products", "products.index", products.Index)
	r.Get("/products/{id}", "products.show", products.Show)
	r.Put("/products/{id}", "products.update", products.Update)
	r.Delete("/products/{id}", "products.destroy", products.Destroy)

	r.Post("/orders", "orders.create", orders.Create)
	r.Put("/orders/{order_id}/add_product/{product_id}", "orders.attach", orders.AttachProduct)
	r.Delete("/orders/{order_id}/remove_product/{product_id}", "orders.detach", orders.DetachProduct)
	r.Get("/orders/user/{user_id}", "orders.by_user", users.Orders)
	r.Get("/orders/{order_id}/products", "orders.products", orders.Products)
}
