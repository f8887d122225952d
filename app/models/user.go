package models

// User is a customer account. Email and address are optional; users are
// identified only by their numeric id (duplicate emails are allowed).
type User struct {
	ID      uint   `gorm:"primaryKey"        json:"id"`
	Name    string `gorm:"size:255;not null" json:"name"`
	Email   string `gorm:"size:255"          json:"email"`
	Address string `gorm:"size:255"          json:"address"`

	// One-to-many: a user owns zero or more orders.
	Orders []Order `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string { return "users" }
