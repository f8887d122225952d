package models

// Order belongs to exactly one user and carries any number of products
// through the order_products join table.
type Order struct {
	ID        uint `gorm:"primaryKey"     json:"id"`
	OrderDate Date `gorm:"not null"       json:"order_date"`
	UserID    uint `gorm:"not null;index" json:"user_id"`

	Products []Product `gorm:"many2many:order_products" json:"-"`
}

func (Order) TableName() string { return "orders" }

// OrderProduct is the explicit join model for the Order↔Product association.
// The composite primary key makes each (order_id, product_id) pair unique at
// the schema level; the repository still checks membership first so a
// duplicate attach surfaces as a conflict rather than a driver error.
type OrderProduct struct {
	OrderID   uint `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	ProductID uint `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
}

func (OrderProduct) TableName() string { return "order_products" }
