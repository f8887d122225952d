package migrations

import (
	"gorm.io/gorm"

	"github.com/ecomm-labs/storefront-api/app/models"
	"github.com/ecomm-labs/storefront-api/pkg/migration"
)

func init() {
	migration.Register("0001_create_users_table", createUsersTable{})
	migration.Register("0002_create_products_table", createProductsTable{})
	migration.Register("0003_create_orders_table", createOrdersTable{})
	migration.Register("0004_create_order_products_table", createOrderProductsTable{})
}

type createUsersTable struct{}

func (createUsersTable) Up(db *gorm.DB) error {
	return db.Migrator().CreateTable(&models.User{})
}

func (createUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.User{})
}

type createProductsTable struct{}

func (createProductsTable) Up(db *gorm.DB) error {
	return db.Migrator().CreateTable(&models.Product{})
}

func (createProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Product{})
}

type createOrdersTable struct{}

func (createOrdersTable) Up(db *gorm.DB) error {
	return db.Migrator().CreateTable(&models.Order{})
}

func (createOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Order{})
}

type createOrderProductsTable struct{}

func (createOrderProductsTable) Up(db *gorm.DB) error {
	if db.Migrator().HasTable(&models.OrderProduct{}) {
		return nil
	}
	return db.Migrator().CreateTable(&models.OrderProduct{})
}

func (createOrderProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.OrderProduct{})
}
