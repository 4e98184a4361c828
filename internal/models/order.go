package models

import "gorm.io/gorm"

// Payment methods accepted at checkout.
var ValidPaymentMethods = map[string]bool{
	"Credit Card": true,
	"PayPal":      true,
	"Stripe":      true,
}

// Payment statuses reported by the payment collaborator.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Order statuses over the fulfillment lifecycle.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatuses is the set of accepted fulfillment statuses.
var ValidOrderStatuses = map[string]bool{
	OrderStatusPending:    true,
	OrderStatusProcessing: true,
	OrderStatusShipped:    true,
	OrderStatusDelivered:  true,
	OrderStatusCancelled:  true,
}

// OrderItem is an immutable snapshot of one purchased line. Price and
// name are copied at order time so later catalog edits cannot alter
// historical orders.
type OrderItem struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID    string  `json:"-" gorm:"type:varchar(36);index"`
	ShoeID     string  `json:"shoe_id" gorm:"type:varchar(36)"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"` // price at the time of order
	Size       string  `json:"size"`
	Name       string  `json:"name"` // name at the time of order
	gorm.Model `json:"-"`
}

// ShippingAddress is embedded into the order record.
type ShippingAddress struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// PaymentDetails records the outcome of the external payment
// authorization for an order.
type PaymentDetails struct {
	PaymentID     string `json:"payment_id"`
	PaymentMethod string `json:"payment_method" validate:"required"`
	PaymentStatus string `json:"payment_status" gorm:"default:pending"`
}

// Order is the immutable historical record of a successful checkout.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID         string          `json:"owner_id" gorm:"type:varchar(36);index"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	TotalPrice      float64         `json:"total_price"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentDetails  PaymentDetails  `json:"payment_details" gorm:"embedded;embeddedPrefix:payment_"`
	OrderStatus     string          `json:"order_status" gorm:"type:varchar(20);default:pending"`
	gorm.Model      `json:"-"`
}
