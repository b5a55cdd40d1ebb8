package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart is one product a user intends to buy, with its chosen variant.
type Cart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
	Size       string             `bson:"size,omitempty" json:"size,omitempty"`
	Color      string             `bson:"color,omitempty" json:"color,omitempty"`
	Product    primitive.ObjectID `bson:"product" json:"product"`
	User       primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PopulatedCart resolves the product reference for cart reads.
type PopulatedCart struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
	Size       string             `bson:"size,omitempty" json:"size,omitempty"`
	Color      string             `bson:"color,omitempty" json:"color,omitempty"`
	Product    *PopulatedProduct  `bson:"product,omitempty" json:"product,omitempty"`
	User       primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
