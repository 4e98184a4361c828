package models

import "gorm.io/gorm"

// CartItem is one (shoe, quantity, size) line within a cart.
type CartItem struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID     string `json:"-" gorm:"type:varchar(36);index"`
	ShoeID     string `json:"shoe_id" gorm:"type:varchar(36)" validate:"required"`
	Shoe       *Shoe  `json:"shoe,omitempty" gorm:"foreignKey:ShoeID"`
	Quantity   int    `json:"quantity" validate:"required,gte=1"`
	Size       string `json:"size" validate:"required"`
	gorm.Model `json:"-"`
}

// Cart holds a user's current selections. Each user owns exactly one cart.
type Cart struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID    string     `json:"owner_id" gorm:"uniqueIndex;type:varchar(36)"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID"`
	gorm.Model `json:"-"`
}

// TotalPrice computes the cart total from the resolved shoe prices.
// It is derived at read time and never persisted; the checkout flow
// recomputes it server-side so a stale or tampered client value is
// never trusted.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c.Items {
		if item.Shoe != nil {
			total += item.Shoe.Price * float64(item.Quantity)
		}
	}
	return total
}
