package seeders

import (
	"gorm.io/gorm"

	"github.com/ecomm-labs/storefront-api/app/models"
)

func init() {
	Register("demo_catalog", seedDemoCatalog)
}

func seedDemoCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{ProductName: "Mechanical Keyboard", Price: 89.99},
		{ProductName: "USB-C Dock", Price: 149.00},
		{ProductName: "27in Monitor", Price: 279.50},
		{ProductName: "Webcam", Price: 59.00},
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}

	users := []models.User{
		{Name: "Ada Lovelace", Email: "ada@example.com", Address: "12 Analytical Way"},
		{Name: "Grace Hopper", Email: "grace@example.com", Address: "7 Compiler Court"},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	orderDate, err := models.ParseDate("2026-08-01")
	if err != nil {
		return err
	}
	order := models.Order{OrderDate: orderDate, UserID: users[0].ID}
	if err := db.Create(&order).Error; err != nil {
		return err
	}

	links := []models.OrderProduct{
		{OrderID: order.ID, ProductID: products[0].ID},
		{OrderID: order.ID, ProductID: products[2].ID},
	}
	return db.Create(&links).Error
}
