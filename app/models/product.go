package models

// Product is a catalogue item.
type Product struct {
	ID          uint    `gorm:"primaryKey"        json:"id"`
	ProductName string  `gorm:"size:255;not null" json:"product_name"`
	Price       float64 `gorm:"not null"          json:"price"`

	Orders []Order `gorm:"many2many:order_products" json:"-"`
}

func (Product) TableName() string { return "products" }
