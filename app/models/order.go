package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
)

// OrderItem is one line of an order, persisted in its own collection and
// referenced from Order.OrderItems.
type OrderItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Size      string             `bson:"size,omitempty" json:"size,omitempty"`
	Color     string             `bson:"color,omitempty" json:"color,omitempty"`
	Product   primitive.ObjectID `bson:"product" json:"product"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Order is a placed order referencing its line items and the buyer.
type Order struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OrderItems      []primitive.ObjectID `bson:"orderItems" json:"orderItems"`
	ShippingAddress string               `bson:"shippingAddress" json:"shippingAddress"`
	City            string               `bson:"city" json:"city"`
	Zip             string               `bson:"zip,omitempty" json:"zip,omitempty"`
	Phone           string               `bson:"phone" json:"phone"`
	TotalPrice      float64              `bson:"totalPrice" json:"totalPrice"`
	Status          string               `bson:"status" json:"status"`
	User            primitive.ObjectID   `bson:"user" json:"user"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedOrderItem resolves the product reference, including its category.
type PopulatedOrderItem struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Size     string             `bson:"size,omitempty" json:"size,omitempty"`
	Color    string             `bson:"color,omitempty" json:"color,omitempty"`
	Product  *PopulatedProduct  `bson:"product,omitempty" json:"product,omitempty"`
}

// PopulatedOrder is an order with user and line items resolved for reads.
type PopulatedOrder struct {
	ID              primitive.ObjectID   `bson:"_id" json:"id"`
	OrderItems      []PopulatedOrderItem `bson:"orderItems" json:"orderItems"`
	ShippingAddress string               `bson:"shippingAddress" json:"shippingAddress"`
	City            string               `bson:"city" json:"city"`
	Zip             string               `bson:"zip,omitempty" json:"zip,omitempty"`
	Phone           string               `bson:"phone" json:"phone"`
	TotalPrice      float64              `bson:"totalPrice" json:"totalPrice"`
	Status          string               `bson:"status" json:"status"`
	User            *UserRef             `bson:"user,omitempty" json:"user,omitempty"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt" json:"updatedAt"`
}
